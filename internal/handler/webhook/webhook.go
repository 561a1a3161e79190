package webhook

import (
	"io"

	"tradeflow/internal/model"
	"tradeflow/internal/signal"
	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"
	"tradeflow/pkg/logger"
	"tradeflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// TradingView Webhook 的接收器

type Handler struct {
	processor *signal.Processor
}

func NewHandler(p *signal.Processor) *Handler {
	return &Handler{processor: p}
}

// HandlerWebhook 接收POST请求，解析为交易信号并下单
// body支持JSON对象或文本格式 ACTION:SYMBOL:PRICE:SL:TP
func (h *Handler) HandlerWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		body, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ParseErr, "failed to read body"), nil)
			return
		}

		sig, err := model.ParseAlert(body)
		if err != nil {
			logger.Errorf("invalid alert data: %v body=%s", err, string(body))
			response.JSON(ctx, err, nil)
			return
		}
		if err := sig.Validate(); err != nil {
			logger.Errorf("invalid alert data: %v body=%s", err, string(body))
			response.JSON(ctx, err, nil)
			return
		}

		logger.Infof("received webhook signal action=%s symbol=%s price=%v", sig.Action, sig.Symbol, sig.Price)

		result, err := h.processor.Process(ctx.Request.Context(), sig)
		if err != nil {
			// 处理链中途失败时已下的单不回滚，整体按失败上报
			logger.Errorf("webhook processing error: %v payload=%s", err, string(body))
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, result)
	}
}
