package domain

import (
	"fmt"
	"math"
)

const (
	ivMaxIterations = 100
	ivTolerance     = 1e-5
	ivInitialGuess  = 0.5
	ivMinSigma      = 0.001
)

// ImpliedVolResult Newton-Raphson 反解结果
// Converged 为 false 时 Sigma 为迭代预算耗尽后的最后估计
type ImpliedVolResult struct {
	Sigma      float64 `json:"sigma"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}

// SolveImpliedVol 从观察到的市场价格反解隐含波动率
// 以未缩放的 vega 作为价格空间导数；vega 为零时无法继续推进，
// 返回当前估计（尽力而为，不视为失败）
func SolveImpliedVol(observedPrice, S, K, T, r float64, side OptionSide) (ImpliedVolResult, error) {
	if observedPrice < 0 {
		return ImpliedVolResult{}, fmt.Errorf("%w: observed price must not be negative, got %v", ErrInvalidInput, observedPrice)
	}
	if S <= 0 || K <= 0 {
		return ImpliedVolResult{}, fmt.Errorf("%w: spot and strike must be positive, got S=%v K=%v", ErrInvalidInput, S, K)
	}
	if T <= 0 {
		return ImpliedVolResult{}, fmt.Errorf("%w: time to expiry must be positive, got %v", ErrInvalidInput, T)
	}
	if !side.Valid() {
		return ImpliedVolResult{}, fmt.Errorf("%w: %q", ErrInvalidOptionSide, side)
	}

	sigma := ivInitialGuess
	for i := 0; i < ivMaxIterations; i++ {
		params := OptionParams{S: S, K: K, T: T, R: r, Sigma: sigma}
		quote, err := CalculateQuote(params)
		if err != nil {
			return ImpliedVolResult{Sigma: sigma, Iterations: i}, err
		}
		modelPrice := quote.Call
		if side == OptionSidePut {
			modelPrice = quote.Put
		}

		residual := observedPrice - modelPrice
		if math.Abs(residual) < ivTolerance {
			return ImpliedVolResult{Sigma: sigma, Converged: true, Iterations: i}, nil
		}

		greeks, err := CalculateGreeks(params)
		if err != nil {
			return ImpliedVolResult{Sigma: sigma, Iterations: i}, err
		}
		vega := greeks.Vega * 100 // 还原为价格空间导数
		if vega == 0 {
			return ImpliedVolResult{Sigma: sigma, Iterations: i}, nil
		}

		sigma += residual / vega
		if sigma <= 0 {
			// 波动率必须严格为正，钳制后继续迭代
			sigma = ivMinSigma
		}
	}

	return ImpliedVolResult{Sigma: sigma, Iterations: ivMaxIterations}, nil
}
