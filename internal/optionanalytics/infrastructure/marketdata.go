// Package infrastructure 期权分析基础设施层
package infrastructure

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
)

const defaultSpotPrice = 100.0

// SimulatedMarketDataClient 模拟市场数据客户端
// 最新标的价可由行情投影消费者通过 SetPrice 写入，
// 期权链按当前标的价合成，用于无真实行情源的环境
type SimulatedMarketDataClient struct {
	mu     sync.RWMutex
	prices map[string]float64
}

func NewSimulatedMarketDataClient() *SimulatedMarketDataClient {
	return &SimulatedMarketDataClient{prices: make(map[string]float64)}
}

// SetPrice 更新标的最新成交价
func (c *SimulatedMarketDataClient) SetPrice(symbol string, price float64) {
	if price <= 0 {
		return
	}
	c.mu.Lock()
	c.prices[symbol] = price
	c.mu.Unlock()
}

// GetPrice 返回最新标的价；无记录时围绕默认价模拟一个
func (c *SimulatedMarketDataClient) GetPrice(ctx context.Context, symbol string) (float64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	c.mu.RLock()
	price, ok := c.prices[symbol]
	c.mu.RUnlock()
	if ok {
		return price, nil
	}
	return defaultSpotPrice + (rand.Float64()-0.5)*10, nil
}

// GetOptionChain 合成期权链快照
// 行权价覆盖标的价 ±20%，报价由 Black-Scholes 加微笑偏移生成
func (c *SimulatedMarketDataClient) GetOptionChain(ctx context.Context, symbol string) (*domain.OptionChain, error) {
	spot, err := c.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	chain := &domain.OptionChain{Symbol: symbol, SpotPrice: spot}
	expiries := []float64{30.0 / 365, 90.0 / 365}
	for _, expiry := range expiries {
		for i := -4; i <= 4; i++ {
			strike := spot * (1 + 0.05*float64(i))
			// 平值外侧波动率抬升，模拟波动率微笑
			smileVol := 0.18 + 0.004*math.Abs(float64(i))
			quote, err := domain.CalculateQuote(domain.OptionParams{
				S:     spot,
				K:     strike,
				T:     expiry,
				R:     0.05,
				Sigma: smileVol,
			})
			if err != nil {
				return nil, err
			}
			volume := rand.Int63n(5000)
			openInterest := rand.Int63n(20000)
			chain.Quotes = append(chain.Quotes,
				domain.ChainQuote{
					Side:         domain.OptionSideCall,
					Strike:       strike,
					TimeToExpiry: expiry,
					LastPrice:    quote.Call,
					Bid:          quote.Call * 0.99,
					Ask:          quote.Call * 1.01,
					Volume:       volume,
					OpenInterest: openInterest,
				},
				domain.ChainQuote{
					Side:         domain.OptionSidePut,
					Strike:       strike,
					TimeToExpiry: expiry,
					LastPrice:    quote.Put,
					Bid:          quote.Put * 0.99,
					Ask:          quote.Put * 1.01,
					Volume:       volume,
					OpenInterest: openInterest,
				})
		}
	}
	return chain, nil
}
