package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
)

const nodeInsertBatchSize = 200

type calculationRepository struct {
	db *gorm.DB
}

// NewCalculationRepository 创建计算历史仓储实例
func NewCalculationRepository(db *gorm.DB) domain.CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextx.WithTx(ctx, tx)
		return fn(txCtx)
	})
}

// Save 在同一事务中写入计算记录与全部网格节点
func (r *calculationRepository) Save(ctx context.Context, calc *domain.Calculation) error {
	model := toCalculationModel(calc)
	if model == nil {
		return nil
	}
	db := r.getDB(ctx).WithContext(ctx)

	if err := db.Create(model).Error; err != nil {
		return fmt.Errorf("save calculation: %w", err)
	}
	calc.ID = model.ID
	calc.CreatedAt = model.CreatedAt
	calc.UpdatedAt = model.UpdatedAt

	if len(calc.Nodes) == 0 {
		return nil
	}
	nodes := toNodeModels(calc.Nodes)
	if err := db.CreateInBatches(nodes, nodeInsertBatchSize).Error; err != nil {
		return fmt.Errorf("save calculation nodes: %w", err)
	}
	return nil
}

func (r *calculationRepository) GetByCalculationID(ctx context.Context, calculationID string) (*domain.Calculation, error) {
	var m CalculationModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("calculation_id = ?", calculationID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCalculationNotFound
	}
	if err != nil {
		return nil, err
	}
	return toCalculation(&m), nil
}

// History 返回最近的计算记录，按创建时间倒序
func (r *calculationRepository) History(ctx context.Context, limit int) ([]*domain.Calculation, error) {
	var models []CalculationModel
	if err := r.getDB(ctx).WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Calculation, len(models))
	for i := range models {
		out[i] = toCalculation(&models[i])
	}
	return out, nil
}

func (r *calculationRepository) GetNodes(ctx context.Context, calculationID string) ([]*domain.CalculationNode, error) {
	var models []CalculationNodeModel
	if err := r.getDB(ctx).WithContext(ctx).
		Where("calculation_id = ?", calculationID).
		Order("id asc").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.CalculationNode, len(models))
	for i := range models {
		out[i] = toNode(&models[i])
	}
	return out, nil
}

func (r *calculationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
