package domain

import (
	"fmt"
	"math"
)

// OptionParams Black-Scholes 模型输入
type OptionParams struct {
	S     float64 // 标的资产价格
	K     float64 // 执行价格
	T     float64 // 到期时间 (年)
	R     float64 // 无风险利率
	Sigma float64 // 波动率
}

// Validate 校验定价参数
// T == 0 是合法的到期退化输入，由定价函数走内在价值分支
func (p OptionParams) Validate() error {
	if p.S <= 0 {
		return fmt.Errorf("%w: spot price must be positive, got %v", ErrInvalidInput, p.S)
	}
	if p.K <= 0 {
		return fmt.Errorf("%w: strike price must be positive, got %v", ErrInvalidInput, p.K)
	}
	if p.T < 0 {
		return fmt.Errorf("%w: time to expiry must not be negative, got %v", ErrInvalidInput, p.T)
	}
	if p.T > 0 && p.Sigma <= 0 {
		return fmt.Errorf("%w: volatility must be positive, got %v", ErrInvalidInput, p.Sigma)
	}
	return nil
}

// PriceQuote 欧式期权看涨/看跌理论价格
type PriceQuote struct {
	Call float64 `json:"call"`
	Put  float64 `json:"put"`
}

// Greeks 希腊字母
// 按交易习惯缩放：theta 按日（/365），vega 与 rho 按百分点（/100）
type Greeks struct {
	CallDelta float64 `json:"call_delta"`
	PutDelta  float64 `json:"put_delta"`
	Gamma     float64 `json:"gamma"`
	CallTheta float64 `json:"call_theta"`
	PutTheta  float64 `json:"put_theta"`
	Vega      float64 `json:"vega"`
	CallRho   float64 `json:"call_rho"`
	PutRho    float64 `json:"put_rho"`
}

// CalculateQuote 计算 Black-Scholes 看涨与看跌价格
// T <= 0 时返回到期内在价值，避免标准公式中的除零
func CalculateQuote(p OptionParams) (PriceQuote, error) {
	if err := p.Validate(); err != nil {
		return PriceQuote{}, err
	}
	if p.T <= 0 {
		return PriceQuote{
			Call: math.Max(p.S-p.K, 0),
			Put:  math.Max(p.K-p.S, 0),
		}, nil
	}

	d1, d2 := dValues(p)
	discount := math.Exp(-p.R * p.T)
	return PriceQuote{
		Call: p.S*normCdf(d1) - p.K*discount*normCdf(d2),
		Put:  p.K*discount*normCdf(-d2) - p.S*normCdf(-d1),
	}, nil
}

// CalculateGreeks 计算八项敏感度
// 前置条件 T > 0 且 sigma > 0，到期场景由调用方自行短路到内在价值
func CalculateGreeks(p OptionParams) (Greeks, error) {
	if err := p.Validate(); err != nil {
		return Greeks{}, err
	}
	if p.T <= 0 {
		return Greeks{}, fmt.Errorf("%w: greeks require positive time to expiry", ErrInvalidInput)
	}

	d1, d2 := dValues(p)
	sqrtT := math.Sqrt(p.T)
	discount := math.Exp(-p.R * p.T)
	pdfD1 := normPdf(d1)

	callDelta := normCdf(d1)
	callTheta := -p.S*pdfD1*p.Sigma/(2*sqrtT) - p.R*p.K*discount*normCdf(d2)
	putTheta := -p.S*pdfD1*p.Sigma/(2*sqrtT) + p.R*p.K*discount*normCdf(-d2)

	return Greeks{
		CallDelta: callDelta,
		PutDelta:  callDelta - 1,
		Gamma:     pdfD1 / (p.S * p.Sigma * sqrtT),
		CallTheta: callTheta / 365,
		PutTheta:  putTheta / 365,
		Vega:      p.S * pdfD1 * sqrtT / 100,
		CallRho:   p.K * p.T * discount * normCdf(d2) / 100,
		PutRho:    -p.K * p.T * discount * normCdf(-d2) / 100,
	}, nil
}

func dValues(p OptionParams) (d1, d2 float64) {
	sqrtT := math.Sqrt(p.T)
	d1 = (math.Log(p.S/p.K) + (p.R+0.5*p.Sigma*p.Sigma)*p.T) / (p.Sigma * sqrtT)
	d2 = d1 - p.Sigma*sqrtT
	return d1, d2
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
