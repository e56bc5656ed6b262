package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
)

// QueryService 处理所有定价相关的查询操作
type QueryService struct {
	repo       domain.CalculationRepository
	marketData domain.MarketDataClient
	// 期权链分析使用的参考波动率与无风险利率
	referenceVol  float64
	referenceRate float64
	logger        *slog.Logger
}

// NewQueryService 创建查询服务
func NewQueryService(repo domain.CalculationRepository, marketData domain.MarketDataClient, referenceVol, referenceRate float64, logger *slog.Logger) *QueryService {
	return &QueryService{
		repo:          repo,
		marketData:    marketData,
		referenceVol:  referenceVol,
		referenceRate: referenceRate,
		logger:        logger,
	}
}

// GetQuote 计算单笔欧式期权的看涨/看跌理论价格
func (q *QueryService) GetQuote(ctx context.Context, query PriceOptionQuery) (*QuoteDTO, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	quote, err := domain.CalculateQuote(domain.OptionParams{
		S:     query.SpotPrice,
		K:     query.StrikePrice,
		T:     query.TimeToExpiry,
		R:     query.RiskFreeRate,
		Sigma: query.Volatility,
	})
	if err != nil {
		return nil, err
	}
	return &QuoteDTO{CallPrice: quote.Call, PutPrice: quote.Put}, nil
}

// GetGreeks 计算单笔期权的八项敏感度
func (q *QueryService) GetGreeks(ctx context.Context, query PriceOptionQuery) (*domain.Greeks, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	greeks, err := domain.CalculateGreeks(domain.OptionParams{
		S:     query.SpotPrice,
		K:     query.StrikePrice,
		T:     query.TimeToExpiry,
		R:     query.RiskFreeRate,
		Sigma: query.Volatility,
	})
	if err != nil {
		return nil, err
	}
	return &greeks, nil
}

// SolveImpliedVol 从市场价格反解隐含波动率
func (q *QueryService) SolveImpliedVol(ctx context.Context, query ImpliedVolQuery) (*ImpliedVolDTO, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	side, err := domain.ParseOptionSide(query.Side)
	if err != nil {
		return nil, err
	}
	result, err := domain.SolveImpliedVol(
		query.ObservedPrice,
		query.SpotPrice,
		query.StrikePrice,
		query.TimeToExpiry,
		query.RiskFreeRate,
		side,
	)
	if err != nil {
		return nil, err
	}
	if !result.Converged {
		q.logger.WarnContext(ctx, "implied vol solver exhausted iteration budget",
			"sigma", result.Sigma,
			"iterations", result.Iterations)
	}
	return &ImpliedVolDTO{
		Sigma:      result.Sigma,
		Converged:  result.Converged,
		Iterations: result.Iterations,
	}, nil
}

// AggregatePortfolio 汇总组合：逐腿定价与盈亏，希腊字母按数量加权求和
func (q *QueryService) AggregatePortfolio(ctx context.Context, query AggregatePortfolioQuery) (*PortfolioDTO, error) {
	if len(query.Positions) == 0 {
		return nil, fmt.Errorf("%w: at least one position is required", domain.ErrInvalidInput)
	}

	out := &PortfolioDTO{Positions: make([]PositionResultDTO, 0, len(query.Positions))}
	for i, pos := range query.Positions {
		params := domain.OptionParams{
			S:     pos.SpotPrice,
			K:     pos.StrikePrice,
			T:     pos.TimeToExpiry,
			R:     pos.RiskFreeRate,
			Sigma: pos.Volatility,
		}
		quote, err := domain.CalculateQuote(params)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
		greeks, err := domain.CalculateGreeks(params)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}

		qty := float64(pos.Quantity)
		callPnL := quote.Call - query.CallPurchase
		putPnL := quote.Put - query.PutPurchase

		out.Positions = append(out.Positions, PositionResultDTO{
			Position:  i + 1,
			Quantity:  pos.Quantity,
			CallPrice: quote.Call,
			PutPrice:  quote.Put,
			CallPnL:   callPnL,
			PutPnL:    putPnL,
		})
		out.TotalCallPnL += callPnL * qty
		out.TotalPutPnL += putPnL * qty
		out.TotalGreeks.CallDelta += greeks.CallDelta * qty
		out.TotalGreeks.PutDelta += greeks.PutDelta * qty
		out.TotalGreeks.Gamma += greeks.Gamma * qty
		out.TotalGreeks.CallTheta += greeks.CallTheta * qty
		out.TotalGreeks.PutTheta += greeks.PutTheta * qty
		out.TotalGreeks.Vega += greeks.Vega * qty
		out.TotalGreeks.CallRho += greeks.CallRho * qty
		out.TotalGreeks.PutRho += greeks.PutRho * qty
	}
	return out, nil
}

// AnalyzeChain 拉取期权链，对每笔报价计算理论价格并反解隐含波动率
// 已到期的报价跳过，未收敛的结果保留并带上标记
func (q *QueryService) AnalyzeChain(ctx context.Context, symbol string) (*ChainAnalysisDTO, error) {
	chain, err := q.marketData.GetOptionChain(ctx, symbol)
	if err != nil {
		return nil, err
	}

	out := &ChainAnalysisDTO{
		Symbol:    chain.Symbol,
		SpotPrice: chain.SpotPrice,
		Quotes:    make([]domain.AnalyzedQuote, 0, len(chain.Quotes)),
	}
	for _, quote := range chain.Quotes {
		if quote.TimeToExpiry <= 0 {
			continue
		}
		theoretical, err := domain.CalculateQuote(domain.OptionParams{
			S:     chain.SpotPrice,
			K:     quote.Strike,
			T:     quote.TimeToExpiry,
			R:     q.referenceRate,
			Sigma: q.referenceVol,
		})
		if err != nil {
			return nil, err
		}
		theoPrice := theoretical.Call
		if quote.Side == domain.OptionSidePut {
			theoPrice = theoretical.Put
		}

		analyzed := domain.AnalyzedQuote{ChainQuote: quote, TheoreticalPrice: theoPrice}
		iv, err := domain.SolveImpliedVol(quote.LastPrice, chain.SpotPrice, quote.Strike, quote.TimeToExpiry, q.referenceRate, quote.Side)
		if err != nil {
			q.logger.WarnContext(ctx, "implied vol inversion failed for chain quote",
				"symbol", symbol,
				"strike", quote.Strike,
				"error", err)
		} else {
			analyzed.ImpliedVol = iv.Sigma
			analyzed.IVConverged = iv.Converged
		}
		out.Quotes = append(out.Quotes, analyzed)
	}
	return out, nil
}

// History 返回最近的计算摘要，按时间倒序
func (q *QueryService) History(ctx context.Context, limit int) ([]*CalculationSummaryDTO, error) {
	calcs, err := q.repo.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*CalculationSummaryDTO, 0, len(calcs))
	for _, c := range calcs {
		out = append(out, &CalculationSummaryDTO{
			CalculationID: c.CalculationID,
			Timestamp:     c.CreatedAt,
			BaseSpotPrice: c.BaseSpotPrice.String(),
			StrikePrice:   c.StrikePrice.String(),
			TimeToExpiry:  c.TimeToExpiry,
			Volatility:    c.Volatility,
			RiskFreeRate:  c.RiskFreeRate,
			CallPurchase:  c.CallPurchase.String(),
			PutPurchase:   c.PutPurchase.String(),
			GridSize:      c.GridSize,
		})
	}
	return out, nil
}

// GetNodes 返回指定计算的全部节点结果
func (q *QueryService) GetNodes(ctx context.Context, calculationID string) ([]*NodeDTO, error) {
	nodes, err := q.repo.GetNodes(ctx, calculationID)
	if err != nil {
		return nil, err
	}
	out := make([]*NodeDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &NodeDTO{
			ShockedPrice: n.ShockedPrice,
			ShockedVol:   n.ShockedVol,
			CallPnL:      n.CallPnL,
			PutPnL:       n.PutPnL,
		})
	}
	return out, nil
}

// ChatReply 占位聊天应答
// 真实场景应接入 LLM，这里回显问题与组合数据
func (q *QueryService) ChatReply(question string, portfolio *PortfolioDTO) string {
	reply := fmt.Sprintf("You asked: %q.\n\nThis is a dummy response. Here is the portfolio data I received:\n", question)
	data, err := json.MarshalIndent(portfolio, "", "  ")
	if err != nil {
		return reply
	}
	return reply + string(data)
}
