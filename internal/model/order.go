package model

type OrderSide string

const (
	Buy  OrderSide = "Buy"
	Sell OrderSide = "Sell"
)

// Opposite 反方向，止损止盈单和平仓单使用
func (s OrderSide) Opposite() OrderSide {
	if s == Buy {
		return Sell
	}
	return Buy
}

type OrderType string

const (
	// 市价购买
	Market OrderType = "Market"
	// 限价购买
	Limit OrderType = "Limit"
)

// 条件单类型
type OrderFilter string

const (
	// 止损单
	FilterStopOrder OrderFilter = "StopOrder"
	// 止盈单
	FilterTpSlOrder OrderFilter = "TpSlOrder"
)

const (
	// 固定只交易USDT本位永续合约
	CategoryLinear = "linear"

	TimeInForceGTC = "GTC"

	TriggerByLastPrice = "LastPrice"
)

// OrderRequest 发往 /v5/order/create 的下单参数
// 字段顺序即签名顺序，序列化结果必须和实际发送的body一致
type OrderRequest struct {
	Category       string      `json:"category"`
	Symbol         string      `json:"symbol"`
	Side           OrderSide   `json:"side"`
	OrderType      OrderType   `json:"orderType"`
	Qty            string      `json:"qty"`
	Price          string      `json:"price,omitempty"` // 仅限价单需要
	TriggerPrice   string      `json:"triggerPrice,omitempty"`
	TriggerBy      string      `json:"triggerBy,omitempty"`
	OrderFilter    OrderFilter `json:"orderFilter,omitempty"`
	TimeInForce    string      `json:"timeInForce"`
	ReduceOnly     bool        `json:"reduceOnly"`
	CloseOnTrigger bool        `json:"closeOnTrigger"`
}

// OrderResult 下单/撤单的返回结果
type OrderResult struct {
	OrderID     string `json:"orderId"`
	OrderLinkID string `json:"orderLinkId"`
}

// Position 交易所侧的持仓快照，只读
type Position struct {
	Symbol        string `json:"symbol"`
	Side          string `json:"side"` // Buy / Sell
	Size          string `json:"size"`
	AvgPrice      string `json:"avgPrice"`
	MarkPrice     string `json:"markPrice"`
	UnrealisedPnl string `json:"unrealisedPnl"`
	Leverage      string `json:"leverage"`
	PositionValue string `json:"positionValue"`
	UpdatedTime   string `json:"updatedTime"`
}

// Order 交易所侧的活动委托，只读
type Order struct {
	OrderID      string `json:"orderId"`
	Symbol       string `json:"symbol"`
	Side         string `json:"side"`
	OrderType    string `json:"orderType"`
	Qty          string `json:"qty"`
	Price        string `json:"price"`
	TriggerPrice string `json:"triggerPrice"`
	OrderStatus  string `json:"orderStatus"`
	ReduceOnly   bool   `json:"reduceOnly"`
	CreatedTime  string `json:"createdTime"`
}

// Execution 成交记录
type Execution struct {
	Symbol    string `json:"symbol"`
	OrderID   string `json:"orderId"`
	Side      string `json:"side"`
	ExecPrice string `json:"execPrice"`
	ExecQty   string `json:"execQty"`
	ExecFee   string `json:"execFee"`
	ExecTime  string `json:"execTime"`
}

// InstrumentInfo 合约元信息，公共接口返回
type InstrumentInfo struct {
	Symbol      string `json:"symbol"`
	Status      string `json:"status"`
	BaseCoin    string `json:"baseCoin"`
	QuoteCoin   string `json:"quoteCoin"`
	LotSizeInfo struct {
		MaxOrderQty string `json:"maxOrderQty"`
		MinOrderQty string `json:"minOrderQty"`
		QtyStep     string `json:"qtyStep"`
	} `json:"lotSizeFilter"`
	PriceInfo struct {
		MinPrice string `json:"minPrice"`
		MaxPrice string `json:"maxPrice"`
		TickSize string `json:"tickSize"`
	} `json:"priceFilter"`
}
