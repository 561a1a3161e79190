package router

import (
	"tradeflow/internal/handler/ping"
	"tradeflow/internal/handler/trade"
	"tradeflow/internal/handler/webhook"
	"tradeflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	webhookHandler *webhook.Handler
	tradeHandler   *trade.Handler
	webhookToken   string
}

func NewApiRouter(wh *webhook.Handler, th *trade.Handler, webhookToken string) *ApiRouter {
	return &ApiRouter{
		webhookHandler: wh,
		tradeHandler:   th,
		webhookToken:   webhookToken,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.GET("/health", ping.Health())

	// 告警入口，来源校验在进入解析前完成
	g.POST("/webhook", middleware.WebhookAuth(api.webhookToken), api.webhookHandler.HandlerWebhook())

	g.GET("/positions", api.tradeHandler.PositionsGet())
	g.GET("/orders", api.tradeHandler.OrdersGet())
	g.POST("/close-all", api.tradeHandler.CloseAll())
}
