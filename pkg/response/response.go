package response

import (
	"net/http"

	"tradeflow/internal/consts"
	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"

	"github.com/gin-gonic/gin"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据，一般前端从这个里面取出数据展示
}

// 业务错误码到http状态码的映射
// 参数类错误返回400，鉴权失败返回401，交易所/网络错误返回500
func httpStatus(code int) int {
	switch code {
	case ecode.Success:
		return http.StatusOK
	case ecode.ParseErr, ecode.ValidateErr, ecode.NotFoundErr:
		return http.StatusBadRequest
	case ecode.RequireAuthErr:
		return http.StatusUnauthorized
	case ecode.ExchangeErr, ecode.TransportErr, ecode.Unknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// 发送json格式数据
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	c.JSON(httpStatus(code), ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// token鉴权失败，返回401
func RequireAuthErr(c *gin.Context, err error) {
	var message string
	if err != nil {
		message = err.Error()
	} else {
		message = "unknow error."
	}
	c.JSON(http.StatusUnauthorized, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.RequireAuthErr,
		Message:   "invalid token:" + message,
		Data:      nil,
	})
}
