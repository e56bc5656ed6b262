package domain

import "context"

// CalculationRepository 曲面计算历史仓储接口
type CalculationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, calc *Calculation) error
	GetByCalculationID(ctx context.Context, calculationID string) (*Calculation, error)
	History(ctx context.Context, limit int) ([]*Calculation, error)
	GetNodes(ctx context.Context, calculationID string) ([]*CalculationNode, error)
}

// MarketDataClient 市场数据客户端接口
type MarketDataClient interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
	GetOptionChain(ctx context.Context, symbol string) (*OptionChain, error)
}
