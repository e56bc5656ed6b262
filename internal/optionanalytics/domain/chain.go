package domain

// ChainQuote 期权链上的一笔市场报价
type ChainQuote struct {
	Side         OptionSide `json:"side"`
	Strike       float64    `json:"strike"`
	TimeToExpiry float64    `json:"time_to_expiry"`
	LastPrice    float64    `json:"last_price"`
	Bid          float64    `json:"bid"`
	Ask          float64    `json:"ask"`
	Volume       int64      `json:"volume"`
	OpenInterest int64      `json:"open_interest"`
}

// OptionChain 某一标的的期权链快照
type OptionChain struct {
	Symbol    string       `json:"symbol"`
	SpotPrice float64      `json:"spot_price"`
	Quotes    []ChainQuote `json:"quotes"`
}

// AnalyzedQuote 链上报价与模型的对照结果
// TheoreticalPrice 按参考波动率计算，ImpliedVol 由市场价反解
type AnalyzedQuote struct {
	ChainQuote
	TheoreticalPrice float64 `json:"theoretical_price"`
	ImpliedVol       float64 `json:"implied_vol"`
	IVConverged      bool    `json:"iv_converged"`
}
