package application

import (
	"time"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
)

// QuoteDTO 单笔定价结果
type QuoteDTO struct {
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
}

// ImpliedVolDTO 隐含波动率反解结果
type ImpliedVolDTO struct {
	Sigma      float64 `json:"sigma"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}

// SurfaceBundleDTO 一次计算产出的完整曲面包
type SurfaceBundleDTO struct {
	CalculationID string                 `json:"calculation_id"`
	PnL           *domain.PnLSurface     `json:"pnl"`
	Greeks        *domain.GreeksSurfaces `json:"greeks"`
}

// CalculationSummaryDTO 历史记录条目
type CalculationSummaryDTO struct {
	CalculationID string    `json:"calculation_id"`
	Timestamp     time.Time `json:"timestamp"`
	BaseSpotPrice string    `json:"base_stock_price"`
	StrikePrice   string    `json:"strike_price"`
	TimeToExpiry  float64   `json:"time_to_expiry"`
	Volatility    float64   `json:"volatility"`
	RiskFreeRate  float64   `json:"risk_free_rate"`
	CallPurchase  string    `json:"call_purchase_price"`
	PutPurchase   string    `json:"put_purchase_price"`
	GridSize      int       `json:"grid_size"`
}

// NodeDTO 单个网格节点的持久化结果
type NodeDTO struct {
	ShockedPrice float64 `json:"shocked_stock_price"`
	ShockedVol   float64 `json:"shocked_volatility"`
	CallPnL      float64 `json:"call_pnl"`
	PutPnL       float64 `json:"put_pnl"`
}

// PositionResultDTO 组合中单腿的定价与盈亏
type PositionResultDTO struct {
	Position  int     `json:"position"`
	Quantity  int64   `json:"quantity"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
	CallPnL   float64 `json:"call_pnl"`
	PutPnL    float64 `json:"put_pnl"`
}

// PortfolioDTO 组合聚合结果：逐腿盈亏、总盈亏与按数量加权的希腊字母
type PortfolioDTO struct {
	Positions    []PositionResultDTO `json:"positions"`
	TotalCallPnL float64             `json:"total_call_pnl"`
	TotalPutPnL  float64             `json:"total_put_pnl"`
	TotalGreeks  domain.Greeks       `json:"total_greeks"`
}

// ChainAnalysisDTO 期权链对照分析结果
type ChainAnalysisDTO struct {
	Symbol    string                 `json:"symbol"`
	SpotPrice float64                `json:"spot_price"`
	Quotes    []domain.AnalyzedQuote `json:"quotes"`
}
