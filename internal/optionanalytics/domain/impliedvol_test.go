package domain

import (
	"errors"
	"testing"
)

// 正向定价后反解应还原原始波动率
func TestSolveImpliedVolRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		p    OptionParams
		side OptionSide
	}{
		{"atm call", OptionParams{S: 100, K: 100, T: 0.25, R: 0.05, Sigma: 0.2}, OptionSideCall},
		{"atm put", OptionParams{S: 100, K: 100, T: 0.25, R: 0.05, Sigma: 0.2}, OptionSidePut},
		{"itm call high vol", OptionParams{S: 120, K: 100, T: 1, R: 0.03, Sigma: 0.45}, OptionSideCall},
		{"otm put low vol", OptionParams{S: 100, K: 80, T: 0.5, R: 0.05, Sigma: 0.12}, OptionSidePut},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := CalculateQuote(tc.p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			observed := quote.Call
			if tc.side == OptionSidePut {
				observed = quote.Put
			}

			result, err := SolveImpliedVol(observed, tc.p.S, tc.p.K, tc.p.T, tc.p.R, tc.side)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Converged {
				t.Errorf("solver did not converge, iterations=%d", result.Iterations)
			}
			if !almostEqual(result.Sigma, tc.p.Sigma, 1e-4) {
				t.Errorf("sigma = %v, want ≈ %v", result.Sigma, tc.p.Sigma)
			}
		})
	}
}

// 迭代数不超过上限, 波动率估计始终严格为正
func TestSolveImpliedVolTermination(t *testing.T) {
	// 深度实值低时间价值报价对 Newton 法最不友好
	result, err := SolveImpliedVol(50.01, 150, 100, 0.01, 0.05, OptionSideCall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Iterations > ivMaxIterations {
		t.Errorf("iterations = %d, want <= %d", result.Iterations, ivMaxIterations)
	}
	if result.Sigma <= 0 {
		t.Errorf("sigma = %v, want strictly positive", result.Sigma)
	}
}

// 观察价低于无套利下界时不收敛, 但仍给出尽力而为的估计
func TestSolveImpliedVolBestEffort(t *testing.T) {
	result, err := SolveImpliedVol(0.0001, 100, 100, 0.25, 0.05, OptionSideCall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sigma <= 0 {
		t.Errorf("sigma = %v, want strictly positive", result.Sigma)
	}
}

func TestParseOptionSide(t *testing.T) {
	for _, raw := range []string{"call", "CALL", " Call "} {
		side, err := ParseOptionSide(raw)
		if err != nil || side != OptionSideCall {
			t.Errorf("ParseOptionSide(%q) = %v, %v", raw, side, err)
		}
	}
	if _, err := ParseOptionSide("straddle"); !errors.Is(err, ErrInvalidOptionSide) {
		t.Errorf("got %v, want ErrInvalidOptionSide", err)
	}
}

func TestSolveImpliedVolInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		observed float64
		s, k, tt float64
		side     OptionSide
		want     error
	}{
		{"negative price", -1, 100, 100, 0.25, OptionSideCall, ErrInvalidInput},
		{"zero spot", 5, 0, 100, 0.25, OptionSideCall, ErrInvalidInput},
		{"zero strike", 5, 100, 0, 0.25, OptionSideCall, ErrInvalidInput},
		{"zero expiry", 5, 100, 100, 0, OptionSideCall, ErrInvalidInput},
		{"bad side", 5, 100, 100, 0.25, OptionSide("straddle"), ErrInvalidOptionSide},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := SolveImpliedVol(tc.observed, tc.s, tc.k, tc.tt, 0.05, tc.side); !errors.Is(err, tc.want) {
				t.Errorf("got error %v, want %v", err, tc.want)
			}
		})
	}
}
