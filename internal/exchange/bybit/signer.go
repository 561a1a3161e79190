package bybit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// 服务端允许的请求时间偏差，毫秒
const recvWindow = 5000

// Signer 负责V5接口的HMAC签名
type Signer struct {
	apiKey    string
	apiSecret []byte
}

func NewSigner(apiKey, apiSecret string) *Signer {
	return &Signer{
		apiKey:    apiKey,
		apiSecret: []byte(apiSecret),
	}
}

// Sign 计算请求签名
// 签名串为 timestamp + apiKey + recvWindow + payload
// payload是POST的json body或GET实际发送的query string，顺序必须和传输内容完全一致，
// 否则交易所侧验签失败
func (s *Signer) Sign(timestamp int64, payload string) string {
	signStr := strconv.FormatInt(timestamp, 10) + s.apiKey + strconv.Itoa(recvWindow) + payload
	mac := hmac.New(sha256.New, s.apiSecret)
	mac.Write([]byte(signStr))
	return hex.EncodeToString(mac.Sum(nil))
}

// Headers 构造V5私有接口需要的请求头
func (s *Signer) Headers(timestamp int64, payload string) map[string]string {
	return map[string]string{
		"X-BAPI-API-KEY":     s.apiKey,
		"X-BAPI-SIGN":        s.Sign(timestamp, payload),
		"X-BAPI-TIMESTAMP":   strconv.FormatInt(timestamp, 10),
		"X-BAPI-RECV-WINDOW": strconv.Itoa(recvWindow),
		"Content-Type":       "application/json",
	}
}
