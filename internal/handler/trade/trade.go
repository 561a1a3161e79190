package trade

import (
	"tradeflow/internal/exchange"
	"tradeflow/pkg/logger"
	"tradeflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// 持仓/委托查询和手动平仓，透传交易所返回
type Handler struct {
	ex exchange.Exchange
}

func NewHandler(ex exchange.Exchange) *Handler {
	return &Handler{ex: ex}
}

type queryReq struct {
	Symbol string `json:"symbol" form:"symbol"`
}

// PositionsGet 查询当前持仓
func (h *Handler) PositionsGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req queryReq
		_ = ctx.ShouldBindQuery(&req)

		positions, err := h.ex.GetPositions(ctx.Request.Context(), req.Symbol)
		if err != nil {
			logger.Errorf("error fetching positions: %v", err)
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, positions)
	}
}

// OrdersGet 查询活动委托
func (h *Handler) OrdersGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req queryReq
		_ = ctx.ShouldBindQuery(&req)

		orders, err := h.ex.GetOrders(ctx.Request.Context(), req.Symbol)
		if err != nil {
			logger.Errorf("error fetching orders: %v", err)
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, orders)
	}
}

// CloseAll 手动平掉所有仓位
func (h *Handler) CloseAll() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		results, err := h.ex.CloseAllPositions(ctx.Request.Context())
		if err != nil {
			logger.Errorf("error closing positions: %v", err)
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, results)
	}
}
