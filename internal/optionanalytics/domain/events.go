package domain

import "time"

const (
	SurfaceCalculatedEventType = "SurfaceCalculated"
	OptionPricedEventType      = "OptionPriced"
	ImpliedVolSolvedEventType  = "ImpliedVolSolved"
)

// SurfaceCalculatedEvent 曲面计算完成事件
type SurfaceCalculatedEvent struct {
	CalculationID string    `json:"calculation_id"`
	BaseSpotPrice float64   `json:"base_spot_price"`
	StrikePrice   float64   `json:"strike_price"`
	TimeToExpiry  float64   `json:"time_to_expiry"`
	Volatility    float64   `json:"volatility"`
	RiskFreeRate  float64   `json:"risk_free_rate"`
	GridSize      int       `json:"grid_size"`
	NodeCount     int       `json:"node_count"`
	OccurredOn    time.Time `json:"occurred_on"`
}

// OptionPricedEvent 单笔期权定价完成事件
type OptionPricedEvent struct {
	SpotPrice    float64   `json:"spot_price"`
	StrikePrice  float64   `json:"strike_price"`
	TimeToExpiry float64   `json:"time_to_expiry"`
	Volatility   float64   `json:"volatility"`
	RiskFreeRate float64   `json:"risk_free_rate"`
	CallPrice    float64   `json:"call_price"`
	PutPrice     float64   `json:"put_price"`
	OccurredOn   time.Time `json:"occurred_on"`
}

// ImpliedVolSolvedEvent 隐含波动率反解完成事件
type ImpliedVolSolvedEvent struct {
	Side          OptionSide `json:"side"`
	ObservedPrice float64    `json:"observed_price"`
	Sigma         float64    `json:"sigma"`
	Converged     bool       `json:"converged"`
	Iterations    int        `json:"iterations"`
	OccurredOn    time.Time  `json:"occurred_on"`
}
