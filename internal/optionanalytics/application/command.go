// Package application 期权分析应用层
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/messagequeue"
)

// CommandService 处理曲面计算相关的命令操作
// 计算结果与节点在同一事务中落库，领域事件走 Outbox 发布
type CommandService struct {
	repo      domain.CalculationRepository
	publisher messagequeue.EventPublisher
	logger    *slog.Logger
}

// NewCommandService 创建命令服务
func NewCommandService(repo domain.CalculationRepository, publisher messagequeue.EventPublisher, logger *slog.Logger) *CommandService {
	return &CommandService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// RunCalculation 生成盈亏曲面与敏感度热力图并持久化
// 返回计算标识与两组曲面，供可视化层直接渲染
func (s *CommandService) RunCalculation(ctx context.Context, cmd RunCalculationCommand) (*SurfaceBundleDTO, error) {
	base := domain.OptionParams{
		S:     cmd.SpotPrice,
		K:     cmd.StrikePrice,
		T:     cmd.TimeToExpiry,
		R:     cmd.RiskFreeRate,
		Sigma: cmd.Volatility,
	}

	pnl, err := domain.GeneratePnLSurface(base, cmd.CallPurchase, cmd.PutPurchase, cmd.PriceRange, cmd.VolRange, cmd.GridSize)
	if err != nil {
		return nil, err
	}
	greeks, err := domain.GenerateGreeksSurfaces(base, cmd.PriceRange, cmd.VolRange, cmd.GridSize)
	if err != nil {
		return nil, err
	}

	calculationID := fmt.Sprintf("CALC%s", idgen.GenIDString())
	calc := domain.NewCalculation(calculationID, base, cmd.CallPurchase, cmd.PutPurchase, cmd.PriceRange, cmd.VolRange, cmd.GridSize, pnl)

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, calc); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}

		tx := contextx.GetTx(txCtx)
		event := domain.SurfaceCalculatedEvent{
			CalculationID: calculationID,
			BaseSpotPrice: base.S,
			StrikePrice:   base.K,
			TimeToExpiry:  base.T,
			Volatility:    base.Sigma,
			RiskFreeRate:  base.R,
			GridSize:      cmd.GridSize,
			NodeCount:     len(calc.Nodes),
			OccurredOn:    time.Now(),
		}
		return s.publisher.PublishInTx(txCtx, tx, domain.SurfaceCalculatedEventType, calculationID, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "surface calculation stored",
		"calculation_id", calculationID,
		"grid_size", cmd.GridSize,
		"nodes", len(calc.Nodes))

	return &SurfaceBundleDTO{
		CalculationID: calculationID,
		PnL:           pnl,
		Greeks:        greeks,
	}, nil
}
