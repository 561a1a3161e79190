package main

import (
	"log"
	"os"

	api "tradeflow/cmd/tradeflow"
	"tradeflow/conf"
	"tradeflow/internal/middleware"
	"tradeflow/pkg/logger"
)

// 启动服务（监听webhook）

/*
测试

curl -X POST http://localhost:3000/webhook \
  -H "Content-Type: application/json" \
  -H "X-Webhook-Token: change-me" \
  -d '{"action":"BUY","symbol":"BTCUSD","price":45000,"stop_loss":44100,"take_profit":47000,"risk_percent":1}'

文本格式告警：

curl -X POST http://localhost:3000/webhook \
  -H "Content-Type: text/plain" \
  -H "X-Webhook-Token: change-me" \
  -d 'BUY:BTCUSD:45000:44100:47000'
*/

func main() {

	// 加载配置文件
	err := conf.LoadConfig("conf/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := &conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	defer logger.Sync()

	// 敏感配置优先读环境变量
	if v := os.Getenv("BYBIT_API_KEY"); v != "" {
		appCfg.Bybit.ApiKey = v
	}
	if v := os.Getenv("BYBIT_API_SECRET"); v != "" {
		appCfg.Bybit.SecretKey = v
	}
	if v := os.Getenv("WEBHOOK_TOKEN"); v != "" {
		appCfg.Webhook.Token = v
	}
	if os.Getenv("USE_TESTNET") == "true" {
		appCfg.Bybit.Testnet = true
	}
	if os.Getenv("USE_PERP") == "true" {
		appCfg.Bybit.UsePerp = true
	}
	if v := os.Getenv("PORT"); v != "" {
		appCfg.Listen = ":" + v
	}

	logger.Infof("testnet mode: %v", appCfg.Bybit.Testnet)

	// 创建并启动服务
	srv := api.NewServer(appCfg)
	srvRouter := api.InitRouter()

	srv.Run(middleware.NewMiddleware(), srvRouter)
}
