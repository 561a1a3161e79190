package bybit

import "github.com/goccy/go-json"

// V5接口统一的响应信封，retCode为0表示成功
type apiResponse struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

type listResult[T any] struct {
	List []T `json:"list"`
}

// /v5/account/wallet-balance 返回的单个账户
type walletBalance struct {
	TotalEquity string `json:"totalEquity"`
	AccountType string `json:"accountType"`
}

type cancelParams struct {
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
	OrderID  string `json:"orderId"`
}
