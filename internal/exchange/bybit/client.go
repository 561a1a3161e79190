package bybit

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tradeflow/internal/model"
	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"
	"tradeflow/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	MainnetURL = "https://api.bybit.com"
	TestnetURL = "https://api-testnet.bybit.com"

	requestTimeout = 10 * time.Second
)

// Client Bybit V5 REST客户端
// 凭据在启动时创建一次，之后不再修改
type Client struct {
	signer  *Signer
	baseURL string
	http    *http.Client

	// 测试时注入固定时间戳
	now func() time.Time
}

func NewClient(apiKey, apiSecret string, testnet bool) *Client {
	baseURL := MainnetURL
	if testnet {
		baseURL = TestnetURL
	}
	return &Client{
		signer:  NewSigner(apiKey, apiSecret),
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		now:     time.Now,
	}
}

// 错误统一在这一层归类：网络失败为TransportErr，retCode非0为ExchangeErr，
// 上层只透传，不再逐处包装

func (c *Client) post(ctx context.Context, path string, params interface{}, out interface{}) error {
	body, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, ecode.Unknown, "bybit marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, ecode.Unknown, "bybit new request")
	}
	// POST签名内容是发送的json body本身
	for k, v := range c.signer.Headers(c.now().UnixMilli(), string(body)) {
		req.Header.Set(k, v)
	}
	return c.do(req, path, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}, signed bool) error {
	// GET签名内容是实际发送的query string，顺序必须一致
	rawQuery := query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+rawQuery, nil)
	if err != nil {
		return errors.Wrap(err, ecode.Unknown, "bybit new request")
	}
	if signed {
		for k, v := range c.signer.Headers(c.now().UnixMilli(), rawQuery) {
			req.Header.Set(k, v)
		}
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Errorf("bybit request failed path=%s err=%v", path, err)
		return errors.Wrap(err, ecode.TransportErr, "bybit request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, ecode.TransportErr, "bybit read response")
	}

	var env apiResponse
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Wrap(err, ecode.TransportErr, "bybit decode response")
	}
	if env.RetCode != 0 {
		logger.Errorf("bybit business error path=%s retCode=%d retMsg=%s", path, env.RetCode, env.RetMsg)
		return errors.WithCode(ecode.ExchangeErr, env.RetMsg)
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return errors.Wrap(err, ecode.TransportErr, "bybit decode result")
		}
	}
	return nil
}

// GetAccountBalance 查询统一账户的总净值
func (c *Client) GetAccountBalance(ctx context.Context) (float64, error) {
	query := url.Values{}
	query.Set("accountType", "UNIFIED")

	var result listResult[walletBalance]
	if err := c.get(ctx, "/v5/account/wallet-balance", query, &result, true); err != nil {
		return 0, err
	}
	if len(result.List) == 0 {
		return 0, errors.WithCode(ecode.ExchangeErr, "empty wallet balance list")
	}
	equity, err := cast.ToFloat64E(result.List[0].TotalEquity)
	if err != nil {
		return 0, errors.Wrap(err, ecode.ExchangeErr, "invalid totalEquity")
	}
	return equity, nil
}

// PlaceOrder 下单，入场单和平仓单共用
func (c *Client) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error) {
	if req.Category == "" {
		req.Category = model.CategoryLinear
	}
	if req.OrderType == "" {
		req.OrderType = model.Market
	}
	if req.TimeInForce == "" {
		req.TimeInForce = model.TimeInForceGTC
	}

	var result model.OrderResult
	if err := c.post(ctx, "/v5/order/create", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// 止损和止盈共用的条件单逻辑：市价触发，LastPrice触发价，只减仓
func (c *Client) placeConditionalOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64, filter model.OrderFilter) (*model.OrderResult, error) {
	req := &model.OrderRequest{
		Category:     model.CategoryLinear,
		Symbol:       symbol,
		Side:         side,
		OrderType:    model.Market,
		Qty:          formatQty(qty),
		TriggerPrice: strconv.FormatFloat(triggerPrice, 'f', -1, 64),
		TriggerBy:    model.TriggerByLastPrice,
		OrderFilter:  filter,
		TimeInForce:  model.TimeInForceGTC,
		ReduceOnly:   true,
	}
	var result model.OrderResult
	if err := c.post(ctx, "/v5/order/create", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PlaceStopLossOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64) (*model.OrderResult, error) {
	return c.placeConditionalOrder(ctx, symbol, side, qty, triggerPrice, model.FilterStopOrder)
}

func (c *Client) PlaceTakeProfitOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64) (*model.OrderResult, error) {
	return c.placeConditionalOrder(ctx, symbol, side, qty, triggerPrice, model.FilterTpSlOrder)
}

// GetPositions 查询当前持仓，symbol为空返回全部
func (c *Client) GetPositions(ctx context.Context, symbol string) ([]model.Position, error) {
	query := url.Values{}
	query.Set("category", model.CategoryLinear)
	if symbol != "" {
		query.Set("symbol", symbol)
	} else {
		query.Set("settleCoin", "USDT")
	}

	var result listResult[model.Position]
	if err := c.get(ctx, "/v5/position/list", query, &result, true); err != nil {
		return nil, err
	}
	return result.List, nil
}

// GetOrders 查询活动委托
func (c *Client) GetOrders(ctx context.Context, symbol string) ([]model.Order, error) {
	query := url.Values{}
	query.Set("category", model.CategoryLinear)
	if symbol != "" {
		query.Set("symbol", symbol)
	} else {
		query.Set("settleCoin", "USDT")
	}

	var result listResult[model.Order]
	if err := c.get(ctx, "/v5/order/realtime", query, &result, true); err != nil {
		return nil, err
	}
	return result.List, nil
}

// CancelOrder 撤销订单
func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) (*model.OrderResult, error) {
	params := cancelParams{
		Category: model.CategoryLinear,
		Symbol:   symbol,
		OrderID:  orderID,
	}
	var result model.OrderResult
	if err := c.post(ctx, "/v5/order/cancel", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CloseAllPositions 市价平掉所有持仓
// 非原子操作：逐个反向下reduceOnly市价单，任何一笔失败立即中止并返回错误，
// 已成功的平仓结果随错误一起丢弃，调用方需要通过 /positions 自行核对
func (c *Client) CloseAllPositions(ctx context.Context) ([]*model.OrderResult, error) {
	positions, err := c.GetPositions(ctx, "")
	if err != nil {
		return nil, err
	}

	var results []*model.OrderResult
	for _, pos := range positions {
		size := cast.ToFloat64(pos.Size)
		if size <= 0 {
			continue
		}
		req := &model.OrderRequest{
			Category:    model.CategoryLinear,
			Symbol:      pos.Symbol,
			Side:        model.OrderSide(pos.Side).Opposite(),
			OrderType:   model.Market,
			Qty:         pos.Size,
			TimeInForce: model.TimeInForceGTC,
			ReduceOnly:  true,
		}
		result, err := c.PlaceOrder(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// GetTradeHistory 查询成交历史，limit默认50
func (c *Client) GetTradeHistory(ctx context.Context, symbol string, limit int) ([]model.Execution, error) {
	if limit <= 0 {
		limit = 50
	}
	query := url.Values{}
	query.Set("category", model.CategoryLinear)
	query.Set("limit", strconv.Itoa(limit))
	if symbol != "" {
		query.Set("symbol", symbol)
	}

	var result listResult[model.Execution]
	if err := c.get(ctx, "/v5/execution/list", query, &result, true); err != nil {
		return nil, err
	}
	return result.List, nil
}

// GetSymbolInfo 查询合约元信息，公共接口不签名
func (c *Client) GetSymbolInfo(ctx context.Context, symbol string) (*model.InstrumentInfo, error) {
	query := url.Values{}
	query.Set("category", model.CategoryLinear)
	query.Set("symbol", symbol)

	var result listResult[model.InstrumentInfo]
	if err := c.get(ctx, "/v5/market/instruments-info", query, &result, false); err != nil {
		return nil, err
	}
	if len(result.List) == 0 {
		return nil, errors.WithCode(ecode.NotFoundErr, "symbol not found: "+symbol)
	}
	return &result.List[0], nil
}

func formatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}
