package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
)

// fakeCalculationRepository 内存仓储, 事务直接回调
type fakeCalculationRepository struct {
	saved []*domain.Calculation
}

func (f *fakeCalculationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeCalculationRepository) Save(_ context.Context, calc *domain.Calculation) error {
	f.saved = append(f.saved, calc)
	return nil
}

func (f *fakeCalculationRepository) GetByCalculationID(_ context.Context, calculationID string) (*domain.Calculation, error) {
	for _, c := range f.saved {
		if c.CalculationID == calculationID {
			return c, nil
		}
	}
	return nil, domain.ErrCalculationNotFound
}

func (f *fakeCalculationRepository) History(_ context.Context, limit int) ([]*domain.Calculation, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	out := make([]*domain.Calculation, 0, limit)
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.saved[i])
	}
	return out, nil
}

func (f *fakeCalculationRepository) GetNodes(_ context.Context, calculationID string) ([]*domain.CalculationNode, error) {
	c, err := f.GetByCalculationID(context.Background(), calculationID)
	if err != nil {
		return nil, err
	}
	nodes := make([]*domain.CalculationNode, len(c.Nodes))
	for i := range c.Nodes {
		nodes[i] = &c.Nodes[i]
	}
	return nodes, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCalculation(t *testing.T) {
	repo := &fakeCalculationRepository{}
	svc := NewCommandService(repo, nil, discardLogger())

	cmd := RunCalculationCommand{
		SpotPrice:    100,
		StrikePrice:  100,
		TimeToExpiry: 0.25,
		Volatility:   0.2,
		RiskFreeRate: 0.05,
		CallPurchase: 5,
		PutPurchase:  5,
		PriceRange:   0.1,
		VolRange:     0.3,
		GridSize:     10,
	}
	bundle, err := svc.RunCalculation(context.Background(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(bundle.CalculationID, "CALC") {
		t.Errorf("calculation id = %q, want CALC prefix", bundle.CalculationID)
	}
	if bundle.PnL == nil || bundle.Greeks == nil {
		t.Fatal("expected both pnl and greeks surfaces")
	}
	if len(bundle.PnL.CallPnL) != 10 {
		t.Errorf("pnl rows = %d, want 10", len(bundle.PnL.CallPnL))
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved calculations = %d, want 1", len(repo.saved))
	}
	calc := repo.saved[0]
	if len(calc.Nodes) != 100 {
		t.Errorf("nodes = %d, want gridSize^2 = 100", len(calc.Nodes))
	}
	if calc.GridSize != 10 {
		t.Errorf("grid size = %d, want 10", calc.GridSize)
	}
}

func TestRunCalculationInvalidInput(t *testing.T) {
	svc := NewCommandService(&fakeCalculationRepository{}, nil, discardLogger())

	cmd := RunCalculationCommand{
		SpotPrice:    -1,
		StrikePrice:  100,
		TimeToExpiry: 0.25,
		Volatility:   0.2,
		RiskFreeRate: 0.05,
		PriceRange:   0.1,
		VolRange:     0.3,
		GridSize:     10,
	}
	if _, err := svc.RunCalculation(context.Background(), cmd); err == nil {
		t.Fatal("expected error for negative spot price")
	}
}
