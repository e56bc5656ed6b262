package application

// RunCalculationCommand 运行一次盈亏/敏感度曲面计算
type RunCalculationCommand struct {
	SpotPrice    float64
	StrikePrice  float64
	TimeToExpiry float64
	Volatility   float64
	RiskFreeRate float64
	CallPurchase float64
	PutPurchase  float64
	PriceRange   float64
	VolRange     float64
	GridSize     int
}

// PriceOptionQuery 单笔定价查询
type PriceOptionQuery struct {
	SpotPrice    float64
	StrikePrice  float64
	TimeToExpiry float64
	Volatility   float64
	RiskFreeRate float64
}

// ImpliedVolQuery 隐含波动率反解查询
type ImpliedVolQuery struct {
	ObservedPrice float64
	SpotPrice     float64
	StrikePrice   float64
	TimeToExpiry  float64
	RiskFreeRate  float64
	Side          string
}

// PortfolioPosition 组合中的一笔持仓
type PortfolioPosition struct {
	SpotPrice    float64 `json:"spot_price"`
	StrikePrice  float64 `json:"strike_price"`
	TimeToExpiry float64 `json:"time_to_expiry"`
	Volatility   float64 `json:"volatility"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Quantity     int64   `json:"quantity"`
}

// AggregatePortfolioQuery 组合聚合查询
// 建仓成本用于各腿的基准盈亏
type AggregatePortfolioQuery struct {
	Positions    []PortfolioPosition
	CallPurchase float64
	PutPurchase  float64
}
