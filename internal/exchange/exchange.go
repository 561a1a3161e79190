package exchange

import (
	"context"

	"tradeflow/internal/model"
)

// Exchange 交易所下单接口，使用侧依赖该接口，便于测试时替换成模拟实现
type Exchange interface {
	// 查询统一账户总净值（USDT计价）
	GetAccountBalance(ctx context.Context) (float64, error)
	// 下单
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error)
	// 止损条件单，market触发，reduceOnly
	PlaceStopLossOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64) (*model.OrderResult, error)
	// 止盈条件单
	PlaceTakeProfitOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64) (*model.OrderResult, error)
	// 查询持仓，symbol为空时返回全部
	GetPositions(ctx context.Context, symbol string) ([]model.Position, error)
	// 查询活动委托
	GetOrders(ctx context.Context, symbol string) ([]model.Order, error)
	// 撤销订单
	CancelOrder(ctx context.Context, symbol, orderID string) (*model.OrderResult, error)
	// 市价平掉所有仓位
	CloseAllPositions(ctx context.Context) ([]*model.OrderResult, error)
	// 成交历史
	GetTradeHistory(ctx context.Context, symbol string, limit int) ([]model.Execution, error)
	// 合约元信息，公共接口
	GetSymbolInfo(ctx context.Context, symbol string) (*model.InstrumentInfo, error)
}
