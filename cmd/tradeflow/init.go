package api

import (
	"tradeflow/conf"
	"tradeflow/internal/exchange/bybit"
	"tradeflow/internal/handler/trade"
	"tradeflow/internal/handler/webhook"
	"tradeflow/internal/risk"
	"tradeflow/internal/router"
	"tradeflow/internal/signal"
)

func InitRouter() Router {
	appCfg := conf.AppConfig

	// 交易所客户端在启动时创建一次，凭据之后只读
	ex := bybit.NewClient(appCfg.Bybit.ApiKey, appCfg.Bybit.SecretKey, appCfg.Bybit.Testnet)

	sizer := risk.NewSizer(appCfg.Risk.DefaultPercent)
	processor := signal.NewProcessor(ex, sizer, appCfg.Bybit.UsePerp)

	wh := webhook.NewHandler(processor)
	th := trade.NewHandler(ex)

	return router.NewApiRouter(wh, th, appCfg.Webhook.Token)
}
