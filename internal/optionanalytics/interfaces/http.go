// Package interfaces 期权分析接口层
package interfaces

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/application"
	"github.com/wyfcoding/optionanalytics/internal/optionanalytics/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

const defaultHistoryLimit = 10

// HTTPHandler HTTP 接口处理器
type HTTPHandler struct {
	commandService *application.CommandService
	queryService   *application.QueryService
}

// NewHTTPHandler 创建 HTTP 处理器
func NewHTTPHandler(commandService *application.CommandService, queryService *application.QueryService) *HTTPHandler {
	return &HTTPHandler{
		commandService: commandService,
		queryService:   queryService,
	}
}

// RegisterRoutes 注册路由
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	options := r.Group("/options")
	{
		options.POST("/price", h.Price)
		options.POST("/greeks", h.Greeks)
		options.POST("/implied-vol", h.ImpliedVol)
		options.POST("/calculations", h.RunCalculation)
		options.GET("/calculations", h.History)
		options.GET("/calculations/:id/results", h.CalculationResults)
		options.POST("/portfolio", h.AggregatePortfolio)
		options.GET("/chain/:symbol", h.AnalyzeChain)
		options.POST("/chat", h.Chat)
	}
}

// ContractRequest 单笔合约参数
type ContractRequest struct {
	SpotPrice    float64 `json:"spot_price" binding:"required"`
	StrikePrice  float64 `json:"strike_price" binding:"required"`
	TimeToExpiry float64 `json:"time_to_expiry"`
	Volatility   float64 `json:"volatility"`
	RiskFreeRate float64 `json:"risk_free_rate"`
}

// Price 单笔定价
func (h *HTTPHandler) Price(c *gin.Context) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	quote, err := h.queryService.GetQuote(c.Request.Context(), application.PriceOptionQuery{
		SpotPrice:    req.SpotPrice,
		StrikePrice:  req.StrikePrice,
		TimeToExpiry: req.TimeToExpiry,
		Volatility:   req.Volatility,
		RiskFreeRate: req.RiskFreeRate,
	})
	if err != nil {
		h.renderError(c, "failed to price option", err)
		return
	}
	response.Success(c, quote)
}

// Greeks 单笔敏感度
func (h *HTTPHandler) Greeks(c *gin.Context) {
	var req ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	greeks, err := h.queryService.GetGreeks(c.Request.Context(), application.PriceOptionQuery{
		SpotPrice:    req.SpotPrice,
		StrikePrice:  req.StrikePrice,
		TimeToExpiry: req.TimeToExpiry,
		Volatility:   req.Volatility,
		RiskFreeRate: req.RiskFreeRate,
	})
	if err != nil {
		h.renderError(c, "failed to calculate greeks", err)
		return
	}
	response.Success(c, greeks)
}

// ImpliedVolRequest 隐含波动率反解请求
type ImpliedVolRequest struct {
	ObservedPrice float64 `json:"observed_price" binding:"min=0"`
	SpotPrice     float64 `json:"spot_price" binding:"required"`
	StrikePrice   float64 `json:"strike_price" binding:"required"`
	TimeToExpiry  float64 `json:"time_to_expiry" binding:"required"`
	RiskFreeRate  float64 `json:"risk_free_rate"`
	Side          string  `json:"side" binding:"required"`
}

// ImpliedVol 隐含波动率反解
func (h *HTTPHandler) ImpliedVol(c *gin.Context) {
	var req ImpliedVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.queryService.SolveImpliedVol(c.Request.Context(), application.ImpliedVolQuery{
		ObservedPrice: req.ObservedPrice,
		SpotPrice:     req.SpotPrice,
		StrikePrice:   req.StrikePrice,
		TimeToExpiry:  req.TimeToExpiry,
		RiskFreeRate:  req.RiskFreeRate,
		Side:          req.Side,
	})
	if err != nil {
		h.renderError(c, "failed to solve implied volatility", err)
		return
	}
	response.Success(c, result)
}

// RunCalculationRequest 曲面计算请求
type RunCalculationRequest struct {
	Contract     ContractRequest `json:"contract" binding:"required"`
	CallPurchase float64         `json:"call_purchase_price" binding:"min=0"`
	PutPurchase  float64         `json:"put_purchase_price" binding:"min=0"`
	PriceRange   float64         `json:"price_range" binding:"required"`
	VolRange     float64         `json:"vol_range" binding:"required"`
	GridSize     int             `json:"grid_size" binding:"required"`
}

// RunCalculation 生成并持久化盈亏曲面与敏感度热力图
func (h *HTTPHandler) RunCalculation(c *gin.Context) {
	var req RunCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	bundle, err := h.commandService.RunCalculation(c.Request.Context(), application.RunCalculationCommand{
		SpotPrice:    req.Contract.SpotPrice,
		StrikePrice:  req.Contract.StrikePrice,
		TimeToExpiry: req.Contract.TimeToExpiry,
		Volatility:   req.Contract.Volatility,
		RiskFreeRate: req.Contract.RiskFreeRate,
		CallPurchase: req.CallPurchase,
		PutPurchase:  req.PutPurchase,
		PriceRange:   req.PriceRange,
		VolRange:     req.VolRange,
		GridSize:     req.GridSize,
	})
	if err != nil {
		h.renderError(c, "failed to run surface calculation", err)
		return
	}
	response.Success(c, bundle)
}

// History 最近计算摘要
func (h *HTTPHandler) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.ErrorWithStatus(c, http.StatusBadRequest, "limit must be a positive integer", "")
			return
		}
		limit = parsed
	}

	history, err := h.queryService.History(c.Request.Context(), limit)
	if err != nil {
		h.renderError(c, "failed to load calculation history", err)
		return
	}
	response.Success(c, history)
}

// CalculationResults 指定计算的节点级结果
func (h *HTTPHandler) CalculationResults(c *gin.Context) {
	calculationID := c.Param("id")
	nodes, err := h.queryService.GetNodes(c.Request.Context(), calculationID)
	if err != nil {
		h.renderError(c, "failed to load calculation results", err)
		return
	}
	response.Success(c, gin.H{
		"calculation_id": calculationID,
		"results":        nodes,
	})
}

// PortfolioRequest 组合聚合请求
type PortfolioRequest struct {
	Positions    []application.PortfolioPosition `json:"positions" binding:"required"`
	CallPurchase float64                         `json:"call_purchase_price" binding:"min=0"`
	PutPurchase  float64                         `json:"put_purchase_price" binding:"min=0"`
}

// AggregatePortfolio 组合定价、盈亏与加权希腊字母
func (h *HTTPHandler) AggregatePortfolio(c *gin.Context) {
	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	portfolio, err := h.queryService.AggregatePortfolio(c.Request.Context(), application.AggregatePortfolioQuery{
		Positions:    req.Positions,
		CallPurchase: req.CallPurchase,
		PutPurchase:  req.PutPurchase,
	})
	if err != nil {
		h.renderError(c, "failed to aggregate portfolio", err)
		return
	}
	response.Success(c, portfolio)
}

// AnalyzeChain 期权链对照分析
func (h *HTTPHandler) AnalyzeChain(c *gin.Context) {
	symbol := c.Param("symbol")
	analysis, err := h.queryService.AnalyzeChain(c.Request.Context(), symbol)
	if err != nil {
		h.renderError(c, "failed to analyze option chain", err)
		return
	}
	response.Success(c, analysis)
}

// ChatRequest 聊天请求
type ChatRequest struct {
	Question  string            `json:"question" binding:"required"`
	Portfolio *PortfolioRequest `json:"portfolio"`
}

// Chat 占位聊天应答：先聚合组合数据再回显
func (h *HTTPHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	var portfolio *application.PortfolioDTO
	if req.Portfolio != nil {
		aggregated, err := h.queryService.AggregatePortfolio(c.Request.Context(), application.AggregatePortfolioQuery{
			Positions:    req.Portfolio.Positions,
			CallPurchase: req.Portfolio.CallPurchase,
			PutPurchase:  req.Portfolio.PutPurchase,
		})
		if err != nil {
			h.renderError(c, "failed to aggregate portfolio for chat", err)
			return
		}
		portfolio = aggregated
	}

	response.Success(c, gin.H{"reply": h.queryService.ChatReply(req.Question, portfolio)})
}

// renderError 按错误类别映射 HTTP 状态码
func (h *HTTPHandler) renderError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidOptionSide):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrCalculationNotFound), errors.Is(err, domain.ErrSymbolNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), msg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}
