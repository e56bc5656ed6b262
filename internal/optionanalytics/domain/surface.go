package domain

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Grid 闭区间上的等距采样序列
type Grid []float64

// BuildGrid 构造以 center 为中心的对称相对区间网格
// 区间为 [center*(1-relativeRange), center*(1+relativeRange)]，两端点均包含
func BuildGrid(center, relativeRange float64, size int) (Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: grid size must be at least 2, got %d", ErrInvalidInput, size)
	}
	if relativeRange <= 0 || relativeRange >= 1 {
		return nil, fmt.Errorf("%w: relative range must be in (0,1), got %v", ErrInvalidInput, relativeRange)
	}

	lo := center * (1 - relativeRange)
	hi := center * (1 + relativeRange)
	step := (hi - lo) / float64(size-1)

	grid := make(Grid, size)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[size-1] = hi
	return grid, nil
}

// PnLSurface 标的价格×波动率扫描下的盈亏曲面
// 行对应波动率，列对应标的价格
type PnLSurface struct {
	PriceAxis Grid        `json:"price_axis"`
	VolAxis   Grid        `json:"vol_axis"`
	CallPnL   [][]float64 `json:"call_pnl"`
	PutPnL    [][]float64 `json:"put_pnl"`
}

// GreeksSurfaces 四项敏感度的热力图数据
type GreeksSurfaces struct {
	PriceAxis Grid        `json:"price_axis"`
	VolAxis   Grid        `json:"vol_axis"`
	CallDelta [][]float64 `json:"call_delta"`
	PutDelta  [][]float64 `json:"put_delta"`
	Gamma     [][]float64 `json:"gamma"`
	Vega      [][]float64 `json:"vega"`
}

// GeneratePnLSurface 围绕 base 扫描标的价格与波动率，逐节点重新定价并扣除建仓成本
// 节点计算只读不共享，按行并行求值
func GeneratePnLSurface(base OptionParams, callCost, putCost, priceRange, volRange float64, gridSize int) (*PnLSurface, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if callCost < 0 || putCost < 0 {
		return nil, fmt.Errorf("%w: purchase costs must not be negative, got call=%v put=%v", ErrInvalidInput, callCost, putCost)
	}

	priceAxis, err := BuildGrid(base.S, priceRange, gridSize)
	if err != nil {
		return nil, err
	}
	volAxis, err := BuildGrid(base.Sigma, volRange, gridSize)
	if err != nil {
		return nil, err
	}

	surface := &PnLSurface{
		PriceAxis: priceAxis,
		VolAxis:   volAxis,
		CallPnL:   newMatrix(gridSize),
		PutPnL:    newMatrix(gridSize),
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, vol := range volAxis {
		g.Go(func() error {
			node := base
			node.Sigma = vol
			for j, price := range priceAxis {
				node.S = price
				quote, err := CalculateQuote(node)
				if err != nil {
					return err
				}
				surface.CallPnL[i][j] = quote.Call - callCost
				surface.PutPnL[i][j] = quote.Put - putCost
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return surface, nil
}

// GenerateGreeksSurfaces 围绕 base 扫描标的价格与波动率，逐节点计算敏感度
// 网格上的波动率必须严格为正，由 BuildGrid 的区间约束保证
func GenerateGreeksSurfaces(base OptionParams, priceRange, volRange float64, gridSize int) (*GreeksSurfaces, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if base.T <= 0 {
		return nil, fmt.Errorf("%w: greeks surfaces require positive time to expiry", ErrInvalidInput)
	}

	priceAxis, err := BuildGrid(base.S, priceRange, gridSize)
	if err != nil {
		return nil, err
	}
	volAxis, err := BuildGrid(base.Sigma, volRange, gridSize)
	if err != nil {
		return nil, err
	}

	surfaces := &GreeksSurfaces{
		PriceAxis: priceAxis,
		VolAxis:   volAxis,
		CallDelta: newMatrix(gridSize),
		PutDelta:  newMatrix(gridSize),
		Gamma:     newMatrix(gridSize),
		Vega:      newMatrix(gridSize),
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, vol := range volAxis {
		g.Go(func() error {
			node := base
			node.Sigma = vol
			for j, price := range priceAxis {
				node.S = price
				greeks, err := CalculateGreeks(node)
				if err != nil {
					return err
				}
				surfaces.CallDelta[i][j] = greeks.CallDelta
				surfaces.PutDelta[i][j] = greeks.PutDelta
				surfaces.Gamma[i][j] = greeks.Gamma
				surfaces.Vega[i][j] = greeks.Vega
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return surfaces, nil
}

func newMatrix(size int) [][]float64 {
	m := make([][]float64, size)
	for i := range m {
		m[i] = make([]float64, size)
	}
	return m
}
