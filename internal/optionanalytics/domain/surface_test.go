package domain

import (
	"errors"
	"testing"
)

func TestBuildGrid(t *testing.T) {
	grid, err := BuildGrid(100, 0.1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 5 {
		t.Fatalf("len = %d, want 5", len(grid))
	}
	if grid[0] != 90 {
		t.Errorf("first = %v, want 90", grid[0])
	}
	if grid[4] != 110 {
		t.Errorf("last = %v, want 110", grid[4])
	}
	// 等距
	for i := 1; i < len(grid); i++ {
		if !almostEqual(grid[i]-grid[i-1], 5, 1e-9) {
			t.Errorf("step %d = %v, want 5", i, grid[i]-grid[i-1])
		}
	}
}

func TestBuildGridInvalidInput(t *testing.T) {
	cases := []struct {
		name          string
		relativeRange float64
		size          int
	}{
		{"size one", 0.1, 1},
		{"zero range", 0, 10},
		{"range at one", 1, 10},
		{"negative range", -0.1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildGrid(100, tc.relativeRange, tc.size); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got error %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestGeneratePnLSurfaceShape(t *testing.T) {
	base := OptionParams{S: 100, K: 100, T: 0.25, R: 0.05, Sigma: 0.2}
	surface, err := GeneratePnLSurface(base, 5, 5, 0.1, 0.3, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(surface.PriceAxis) != 20 || len(surface.VolAxis) != 20 {
		t.Fatalf("axis lengths = %d/%d, want 20/20", len(surface.PriceAxis), len(surface.VolAxis))
	}
	if len(surface.CallPnL) != 20 || len(surface.PutPnL) != 20 {
		t.Fatalf("matrix rows = %d/%d, want 20/20", len(surface.CallPnL), len(surface.PutPnL))
	}
	for i := range surface.CallPnL {
		if len(surface.CallPnL[i]) != 20 || len(surface.PutPnL[i]) != 20 {
			t.Fatalf("row %d cols = %d/%d, want 20/20", i, len(surface.CallPnL[i]), len(surface.PutPnL[i]))
		}
	}
}

// 每个节点都可独立复算: cell = price(node) - cost
func TestGeneratePnLSurfaceCells(t *testing.T) {
	base := OptionParams{S: 100, K: 100, T: 0.25, R: 0.05, Sigma: 0.2}
	callCost, putCost := 4.5, 3.2
	surface, err := GeneratePnLSurface(base, callCost, putCost, 0.1, 0.3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, vol := range surface.VolAxis {
		for j, price := range surface.PriceAxis {
			node := base
			node.Sigma = vol
			node.S = price
			quote, err := CalculateQuote(node)
			if err != nil {
				t.Fatalf("unexpected error at (%d,%d): %v", i, j, err)
			}
			if !almostEqual(surface.CallPnL[i][j], quote.Call-callCost, 1e-12) {
				t.Errorf("call pnl (%d,%d) = %v, want %v", i, j, surface.CallPnL[i][j], quote.Call-callCost)
			}
			if !almostEqual(surface.PutPnL[i][j], quote.Put-putCost, 1e-12) {
				t.Errorf("put pnl (%d,%d) = %v, want %v", i, j, surface.PutPnL[i][j], quote.Put-putCost)
			}
		}
	}
}

func TestGeneratePnLSurfaceInvalidInput(t *testing.T) {
	base := OptionParams{S: 100, K: 100, T: 0.25, R: 0.05, Sigma: 0.2}
	if _, err := GeneratePnLSurface(base, -1, 5, 0.1, 0.3, 10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative cost: got %v, want ErrInvalidInput", err)
	}
	if _, err := GeneratePnLSurface(base, 5, 5, 1.5, 0.3, 10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad price range: got %v, want ErrInvalidInput", err)
	}
	if _, err := GeneratePnLSurface(base, 5, 5, 0.1, 0.3, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad grid size: got %v, want ErrInvalidInput", err)
	}
}

func TestGenerateGreeksSurfaces(t *testing.T) {
	base := OptionParams{S: 100, K: 100, T: 0.25, R: 0.05, Sigma: 0.2}
	surfaces, err := GenerateGreeksSurfaces(base, 0.1, 0.3, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range surfaces.VolAxis {
		for j := range surfaces.PriceAxis {
			node := base
			node.Sigma = surfaces.VolAxis[i]
			node.S = surfaces.PriceAxis[j]
			greeks, err := CalculateGreeks(node)
			if err != nil {
				t.Fatalf("unexpected error at (%d,%d): %v", i, j, err)
			}
			if !almostEqual(surfaces.CallDelta[i][j], greeks.CallDelta, 1e-12) {
				t.Errorf("call delta (%d,%d) = %v, want %v", i, j, surfaces.CallDelta[i][j], greeks.CallDelta)
			}
			if !almostEqual(surfaces.Gamma[i][j], greeks.Gamma, 1e-12) {
				t.Errorf("gamma (%d,%d) = %v, want %v", i, j, surfaces.Gamma[i][j], greeks.Gamma)
			}
			if !almostEqual(surfaces.Vega[i][j], greeks.Vega, 1e-12) {
				t.Errorf("vega (%d,%d) = %v, want %v", i, j, surfaces.Vega[i][j], greeks.Vega)
			}
		}
	}
}

// 希腊值曲面要求 T > 0
func TestGenerateGreeksSurfacesAtExpiry(t *testing.T) {
	base := OptionParams{S: 100, K: 100, T: 0, R: 0.05, Sigma: 0.2}
	if _, err := GenerateGreeksSurfaces(base, 0.1, 0.3, 10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
