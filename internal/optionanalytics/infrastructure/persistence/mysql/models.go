package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
)

// CalculationModel 计算记录数据库模型
type CalculationModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
	CalculationID string    `gorm:"column:calculation_id;type:varchar(40);uniqueIndex;not null"`
	BaseSpotPrice string    `gorm:"column:base_stock_price;type:decimal(32,18);not null"`
	StrikePrice   string    `gorm:"column:strike_price;type:decimal(32,18);not null"`
	TimeToExpiry  float64   `gorm:"column:time_to_expiry;type:decimal(20,8);not null"`
	Volatility    float64   `gorm:"column:volatility;type:decimal(20,8);not null"`
	RiskFreeRate  float64   `gorm:"column:risk_free_rate;type:decimal(20,8);not null"`
	CallPurchase  string    `gorm:"column:call_purchase_price;type:decimal(32,18)"`
	PutPurchase   string    `gorm:"column:put_purchase_price;type:decimal(32,18)"`
	PriceRange    float64   `gorm:"column:price_range;type:decimal(20,8)"`
	VolRange      float64   `gorm:"column:vol_range;type:decimal(20,8)"`
	GridSize      int       `gorm:"column:grid_size;type:int"`
}

func (CalculationModel) TableName() string { return "calculations" }

// CalculationNodeModel 网格节点结果数据库模型
type CalculationNodeModel struct {
	ID            uint    `gorm:"primaryKey;autoIncrement"`
	CalculationID string  `gorm:"column:calculation_id;type:varchar(40);index;not null"`
	ShockedPrice  float64 `gorm:"column:shocked_stock_price;type:decimal(20,8);not null"`
	ShockedVol    float64 `gorm:"column:shocked_volatility;type:decimal(20,8);not null"`
	CallPnL       float64 `gorm:"column:call_pnl;type:decimal(20,8)"`
	PutPnL        float64 `gorm:"column:put_pnl;type:decimal(20,8)"`
}

func (CalculationNodeModel) TableName() string { return "pnl_results" }

// mapping helpers

func toCalculationModel(c *domain.Calculation) *CalculationModel {
	if c == nil {
		return nil
	}
	return &CalculationModel{
		ID:            c.ID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		CalculationID: c.CalculationID,
		BaseSpotPrice: c.BaseSpotPrice.String(),
		StrikePrice:   c.StrikePrice.String(),
		TimeToExpiry:  c.TimeToExpiry,
		Volatility:    c.Volatility,
		RiskFreeRate:  c.RiskFreeRate,
		CallPurchase:  c.CallPurchase.String(),
		PutPurchase:   c.PutPurchase.String(),
		PriceRange:    c.PriceRange,
		VolRange:      c.VolRange,
		GridSize:      c.GridSize,
	}
}

func toCalculation(m *CalculationModel) *domain.Calculation {
	if m == nil {
		return nil
	}
	baseSpot, _ := decimal.NewFromString(m.BaseSpotPrice)
	strike, _ := decimal.NewFromString(m.StrikePrice)
	callPurchase, _ := decimal.NewFromString(m.CallPurchase)
	putPurchase, _ := decimal.NewFromString(m.PutPurchase)

	return &domain.Calculation{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CalculationID: m.CalculationID,
		BaseSpotPrice: baseSpot,
		StrikePrice:   strike,
		TimeToExpiry:  m.TimeToExpiry,
		Volatility:    m.Volatility,
		RiskFreeRate:  m.RiskFreeRate,
		CallPurchase:  callPurchase,
		PutPurchase:   putPurchase,
		PriceRange:    m.PriceRange,
		VolRange:      m.VolRange,
		GridSize:      m.GridSize,
	}
}

func toNodeModels(nodes []domain.CalculationNode) []CalculationNodeModel {
	out := make([]CalculationNodeModel, len(nodes))
	for i, n := range nodes {
		out[i] = CalculationNodeModel{
			ID:            n.ID,
			CalculationID: n.CalculationID,
			ShockedPrice:  n.ShockedPrice,
			ShockedVol:    n.ShockedVol,
			CallPnL:       n.CallPnL,
			PutPnL:        n.PutPnL,
		}
	}
	return out
}

func toNode(m *CalculationNodeModel) *domain.CalculationNode {
	if m == nil {
		return nil
	}
	return &domain.CalculationNode{
		ID:            m.ID,
		CalculationID: m.CalculationID,
		ShockedPrice:  m.ShockedPrice,
		ShockedVol:    m.ShockedVol,
		CallPnL:       m.CallPnL,
		PutPnL:        m.PutPnL,
	}
}
