package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/application"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/infrastructure"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/infrastructure/persistence/mysql"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/interfaces"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/interfaces/consumer"
	"github.com/wyfcoding/pkg/app"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
)

// BootstrapName 服务唯一标识
const BootstrapName = "optionanalytics"

// Config 服务扩展配置
type Config struct {
	config.Config   `mapstructure:",squash"`
	OptionAnalytics struct {
		ReferenceVolatility float64 `mapstructure:"reference_volatility" toml:"reference_volatility"`
		ReferenceRate       float64 `mapstructure:"reference_rate" toml:"reference_rate"`
		QuoteTopic          string  `mapstructure:"quote_topic" toml:"quote_topic"`
	} `mapstructure:"optionanalytics" toml:"optionanalytics"`
}

// AppContext 应用上下文
type AppContext struct {
	Config       *Config
	CmdService   *application.CommandService
	QueryService *application.QueryService
	HTTPHandler  *interfaces.HTTPHandler
	Metrics      *metrics.Metrics
}

func main() {
	if err := app.NewBuilder[*Config, *AppContext](BootstrapName).
		WithConfig(&Config{}).
		WithService(initService).
		WithGin(registerGin).
		WithGinMiddleware(
			middleware.CORS(),
			middleware.TimeoutMiddleware(30*time.Second),
		).
		Build().
		Run(); err != nil {
		slog.Error("service bootstrap failed", "error", err)
	}
}

func registerGin(e *gin.Engine, ctx *AppContext) {
	if ctx.Config.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	api := e.Group("/api/v1")
	{
		ctx.HTTPHandler.RegisterRoutes(api)
	}
	e.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"service":   BootstrapName,
			"timestamp": time.Now().Unix(),
		})
	})
}

func initService(cfg *Config, m *metrics.Metrics) (*AppContext, func(), error) {
	bootLog := slog.With("module", "bootstrap")
	logger := logging.Default()

	referenceVol := cfg.OptionAnalytics.ReferenceVolatility
	if referenceVol <= 0 {
		referenceVol = 0.2
	}
	referenceRate := cfg.OptionAnalytics.ReferenceRate
	if referenceRate == 0 {
		referenceRate = 0.05
	}

	// 1. 数据库
	dbWrapper, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init db: %w", err)
	}
	db := dbWrapper.RawDB()

	// 自动迁移
	if err := db.AutoMigrate(&mysql.CalculationModel{}, &mysql.CalculationNodeModel{}, &outbox.Message{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	// 2. 消息队列 & Outbox
	producer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, m)
	outboxMgr := outbox.NewManager(db, logger.Logger)
	outboxProc := outbox.NewProcessor(outboxMgr, func(ctx context.Context, topic, key string, payload []byte) error {
		return producer.PublishToTopic(ctx, topic, []byte(key), payload)
	}, 100, 5*time.Second)
	outboxProc.Start()

	// 3. 行情投影消费者
	marketData := infrastructure.NewSimulatedMarketDataClient()
	quoteTopic := cfg.OptionAnalytics.QuoteTopic
	if quoteTopic == "" {
		quoteTopic = "market.price"
	}
	kafkaCfg := cfg.MessageQueue.Kafka
	kafkaCfg.GroupID = BootstrapName + "-group"
	kafkaCfg.Topic = quoteTopic
	quoteConsumer := kafka.NewConsumer(&kafkaCfg, logger, m)
	quoteHandler := consumer.NewQuoteProjectionHandler(marketData, logger.Logger)
	quoteHandler.Subscribe(context.Background(), quoteConsumer)

	// 4. 仓储与服务
	repo := mysql.NewCalculationRepository(db)
	publisher := outbox.NewPublisher(outboxMgr)
	cmdService := application.NewCommandService(repo, publisher, logger.Logger)
	queryService := application.NewQueryService(repo, marketData, referenceVol, referenceRate, logger.Logger)

	// 5. Handler
	httpHandler := interfaces.NewHTTPHandler(cmdService, queryService)

	cleanup := func() {
		bootLog.Info("shutting down...")
		outboxProc.Stop()
		if producer != nil {
			producer.Close()
		}
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			sqlDB.Close()
		}
	}

	return &AppContext{
		Config:       cfg,
		CmdService:   cmdService,
		QueryService: queryService,
		HTTPHandler:  httpHandler,
		Metrics:      m,
	}, cleanup, nil
}
