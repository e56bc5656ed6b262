package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calculation 一次曲面计算的聚合根
// 记录基准合约参数、建仓成本与网格配置，逐节点结果挂在 Nodes 下
type Calculation struct {
	ID            uint              `json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	CalculationID string            `json:"calculation_id"`
	BaseSpotPrice decimal.Decimal   `json:"base_spot_price"`
	StrikePrice   decimal.Decimal   `json:"strike_price"`
	TimeToExpiry  float64           `json:"time_to_expiry"`
	Volatility    float64           `json:"volatility"`
	RiskFreeRate  float64           `json:"risk_free_rate"`
	CallPurchase  decimal.Decimal   `json:"call_purchase_price"`
	PutPurchase   decimal.Decimal   `json:"put_purchase_price"`
	PriceRange    float64           `json:"price_range"`
	VolRange      float64           `json:"vol_range"`
	GridSize      int               `json:"grid_size"`
	Nodes         []CalculationNode `json:"nodes,omitempty"`
}

// CalculationNode 单个网格节点的盈亏结果
type CalculationNode struct {
	ID            uint    `json:"id"`
	CalculationID string  `json:"calculation_id"`
	ShockedPrice  float64 `json:"shocked_price"`
	ShockedVol    float64 `json:"shocked_vol"`
	CallPnL       float64 `json:"call_pnl"`
	PutPnL        float64 `json:"put_pnl"`
}

// NewCalculation 由基准参数与盈亏曲面构造聚合，节点按行展开
func NewCalculation(calculationID string, base OptionParams, callCost, putCost, priceRange, volRange float64, gridSize int, surface *PnLSurface) *Calculation {
	calc := &Calculation{
		CalculationID: calculationID,
		BaseSpotPrice: decimal.NewFromFloat(base.S),
		StrikePrice:   decimal.NewFromFloat(base.K),
		TimeToExpiry:  base.T,
		Volatility:    base.Sigma,
		RiskFreeRate:  base.R,
		CallPurchase:  decimal.NewFromFloat(callCost),
		PutPurchase:   decimal.NewFromFloat(putCost),
		PriceRange:    priceRange,
		VolRange:      volRange,
		GridSize:      gridSize,
		Nodes:         make([]CalculationNode, 0, gridSize*gridSize),
	}

	for i, vol := range surface.VolAxis {
		for j, price := range surface.PriceAxis {
			calc.Nodes = append(calc.Nodes, CalculationNode{
				CalculationID: calculationID,
				ShockedPrice:  price,
				ShockedVol:    vol,
				CallPnL:       surface.CallPnL[i][j],
				PutPnL:        surface.PutPnL[i][j],
			})
		}
	}
	return calc
}
