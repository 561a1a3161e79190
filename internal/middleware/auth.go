package middleware

import (
	"crypto/subtle"

	"tradeflow/internal/consts"
	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"
	"tradeflow/pkg/logger"
	"tradeflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookAuth 校验告警来源
// 配置了token时，请求头X-Webhook-Token必须匹配，否则401，且不进入后续解析
// token为空时跳过校验
func WebhookAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		provided := c.GetHeader(consts.WebhookToken)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			logger.Warn("unauthorized webhook attempt",
				logger.Pair("ip", c.ClientIP()),
				logger.Pair(consts.RequestId, c.GetString(consts.RequestId)))
			response.RequireAuthErr(c, errors.WithCode(ecode.RequireAuthErr, "invalid webhook token"))
			c.Abort()
			return
		}
		c.Next()
	}
}
