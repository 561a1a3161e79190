package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// WebhookToken 请求来源校验头，TradingView告警配置里携带
	WebhookToken = "X-Webhook-Token"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)
