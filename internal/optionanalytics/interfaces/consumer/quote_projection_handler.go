// Package consumer 行情事件投影
package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/infrastructure"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
)

// QuoteProjectionHandler 消费 market.price 事件，更新期权链分析使用的最新标的价
type QuoteProjectionHandler struct {
	store  *infrastructure.SimulatedMarketDataClient
	logger *slog.Logger
}

func NewQuoteProjectionHandler(store *infrastructure.SimulatedMarketDataClient, logger *slog.Logger) *QuoteProjectionHandler {
	return &QuoteProjectionHandler{store: store, logger: logger}
}

func (h *QuoteProjectionHandler) HandleMarketPrice(ctx context.Context, msg kafkago.Message) error {
	var event struct {
		Symbol    string `json:"symbol"`
		Price     string `json:"price"`
		Timestamp int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}

	price, err := decimal.NewFromString(event.Price)
	if err != nil {
		h.logger.WarnContext(ctx, "dropping market price event with malformed price",
			"symbol", event.Symbol,
			"price", event.Price)
		return nil
	}

	h.store.SetPrice(event.Symbol, price.InexactFloat64())
	h.logger.DebugContext(ctx, "spot price projected", "symbol", event.Symbol, "price", price.String())
	return nil
}

func (h *QuoteProjectionHandler) Subscribe(ctx context.Context, consumer *kafka.Consumer) {
	consumer.Start(ctx, 1, h.HandleMarketPrice)
}
