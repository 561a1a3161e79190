package bybit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradeflow/internal/model"
	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"

	"github.com/goccy/go-json"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		signer:  NewSigner("test-key", "test-secret"),
		baseURL: srv.URL,
		http:    srv.Client(),
		now:     func() time.Time { return time.UnixMilli(1700000000000) },
	}
}

func TestClient_GetAccountBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v5/account/wallet-balance" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-BAPI-API-KEY") != "test-key" {
			t.Error("missing auth headers")
		}
		// GET签名对象是实际发送的query string
		expected := NewSigner("test-key", "test-secret").Sign(1700000000000, r.URL.RawQuery)
		if r.Header.Get("X-BAPI-SIGN") != expected {
			t.Errorf("signature mismatch for query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[{"totalEquity":"10000.5","accountType":"UNIFIED"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	equity, err := c.GetAccountBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if equity != 10000.5 {
		t.Errorf("expected 10000.5, got %v", equity)
	}
}

func TestClient_ExchangeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"retCode":10003,"retMsg":"API key is invalid.","result":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.GetAccountBalance(context.Background())
	if err == nil {
		t.Fatal("expected error on non-zero retCode")
	}
	if code := errors.Code(err); code != ecode.ExchangeErr {
		t.Errorf("expected ExchangeErr, got code %d", code)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 直接关闭，模拟网络失败

	c := newTestClient(srv)
	c.http = &http.Client{Timeout: time.Second}
	_, err := c.GetAccountBalance(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if code := errors.Code(err); code != ecode.TransportErr {
		t.Errorf("expected TransportErr, got code %d", code)
	}
}

func TestClient_PlaceOrderSignsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		// POST签名对象是发送的json body本身
		expected := NewSigner("test-key", "test-secret").Sign(1700000000000, string(body))
		if r.Header.Get("X-BAPI-SIGN") != expected {
			t.Error("signature mismatch for post body")
		}

		var req model.OrderRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if req.Category != "linear" || req.Side != model.Buy || req.Qty != "0.1111" {
			t.Errorf("unexpected order request: %+v", req)
		}
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"orderId":"1234","orderLinkId":""}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	result, err := c.PlaceOrder(context.Background(), &model.OrderRequest{
		Symbol: "BTCUSDT",
		Side:   model.Buy,
		Qty:    "0.1111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID != "1234" {
		t.Errorf("expected orderId 1234, got %s", result.OrderID)
	}
}

func TestClient_CloseAllPositions(t *testing.T) {
	var closeOrders []model.OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v5/position/list":
			w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[
				{"symbol":"BTCUSDT","side":"Buy","size":"0.5"},
				{"symbol":"ETHUSDT","side":"Sell","size":"2"},
				{"symbol":"SOLUSDT","side":"","size":"0"}]}}`))
		case "/v5/order/create":
			var req model.OrderRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			closeOrders = append(closeOrders, req)
			w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"orderId":"close-1"}}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	results, err := c.CloseAllPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// size为0的仓位跳过，恰好两笔反向reduceOnly市价单
	if len(results) != 2 || len(closeOrders) != 2 {
		t.Fatalf("expected 2 close orders, got %d", len(closeOrders))
	}
	first := closeOrders[0]
	if first.Symbol != "BTCUSDT" || first.Side != model.Sell || !first.ReduceOnly || first.Qty != "0.5" {
		t.Errorf("unexpected first close order: %+v", first)
	}
	second := closeOrders[1]
	if second.Symbol != "ETHUSDT" || second.Side != model.Buy || !second.ReduceOnly || second.Qty != "2" {
		t.Errorf("unexpected second close order: %+v", second)
	}
}

func TestClient_CloseAllPositionsAbortsOnFailure(t *testing.T) {
	orderCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v5/position/list":
			w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[
				{"symbol":"BTCUSDT","side":"Buy","size":"0.5"},
				{"symbol":"ETHUSDT","side":"Sell","size":"2"}]}}`))
		case "/v5/order/create":
			orderCalls++
			w.Write([]byte(`{"retCode":110007,"retMsg":"insufficient balance","result":{}}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.CloseAllPositions(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	// 第一笔失败即中止，不再尝试第二笔
	if orderCalls != 1 {
		t.Errorf("expected 1 order call before abort, got %d", orderCalls)
	}
}

func TestClient_GetPositionsDefaultsToSettleCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		// symbol为空时按settleCoin查全部USDT仓位
		if q.Get("settleCoin") != "USDT" || q.Get("symbol") != "" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[{"symbol":"BTCUSDT","side":"Buy","size":"0.5"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	positions, err := c.GetPositions(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 1 || positions[0].Symbol != "BTCUSDT" {
		t.Errorf("unexpected positions: %+v", positions)
	}
}

func TestClient_CancelOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v5/order/cancel" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var params cancelParams
		_ = json.Unmarshal(body, &params)
		if params.Category != "linear" || params.Symbol != "BTCUSDT" || params.OrderID != "1234" {
			t.Errorf("unexpected cancel params: %+v", params)
		}
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"orderId":"1234"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	result, err := c.CancelOrder(context.Background(), "BTCUSDT", "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderID != "1234" {
		t.Errorf("expected orderId 1234, got %s", result.OrderID)
	}
}

func TestClient_GetTradeHistoryDefaultLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("expected default limit 50, got %q", got)
		}
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[{"symbol":"BTCUSDT","execPrice":"45000","execQty":"0.1"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	execs, err := c.GetTradeHistory(context.Background(), "BTCUSDT", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(execs) != 1 || execs[0].ExecQty != "0.1" {
		t.Errorf("unexpected executions: %+v", execs)
	}
}

func TestClient_GetSymbolInfoUnsigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-BAPI-SIGN") != "" {
			t.Error("public endpoint should not be signed")
		}
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[{"symbol":"BTCUSDT","status":"Trading"}]}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	info, err := c.GetSymbolInfo(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Symbol != "BTCUSDT" {
		t.Errorf("unexpected symbol: %s", info.Symbol)
	}
}
