package signal

import (
	"context"
	"strconv"
	"strings"

	"tradeflow/internal/exchange"
	"tradeflow/internal/model"
	"tradeflow/internal/risk"
	"tradeflow/pkg/logger"
)

const (
	statusPlaced = "placed"
	statusNotSet = "not set"
)

// Processor 把解析后的交易信号转为交易所下单序列
// 一个信号 = 一条顺序执行的链：查余额 -> 入场单 -> 止损单 -> 止盈单
// 中途失败立即中止，已下的单留在交易所侧，不做回滚
type Processor struct {
	ex    exchange.Exchange
	sizer *risk.Sizer
	// BTCUSD 自动补成 BTCUSDT 永续
	usePerp bool
}

func NewProcessor(ex exchange.Exchange, sizer *risk.Sizer, usePerp bool) *Processor {
	return &Processor{
		ex:      ex,
		sizer:   sizer,
		usePerp: usePerp,
	}
}

// Process 处理一个信号，返回下单结果汇总
func (p *Processor) Process(ctx context.Context, sig *model.TradeSignal) (*model.TradeResult, error) {
	equity, err := p.ex.GetAccountBalance(ctx)
	if err != nil {
		logger.Errorf("get account balance failed: %v", err)
		return nil, err
	}

	size := p.sizer.Size(equity, sig.RiskPercent, sig.Price, sig.StopLoss)
	symbol := p.FormatSymbol(sig.Symbol)
	side := sig.Side()

	logger.Infof("processing signal symbol=%s side=%s size=%s equity=%.2f",
		symbol, side, strconv.FormatFloat(size, 'f', -1, 64), equity)

	mainOrder, err := p.ex.PlaceOrder(ctx, &model.OrderRequest{
		Category:    model.CategoryLinear,
		Symbol:      symbol,
		Side:        side,
		OrderType:   model.Market,
		Qty:         strconv.FormatFloat(size, 'f', -1, 64),
		TimeInForce: model.TimeInForceGTC,
	})
	if err != nil {
		logger.Errorf("place main order failed symbol=%s: %v", symbol, err)
		return nil, err
	}
	logger.Infof("main order placed symbol=%s orderId=%s", symbol, mainOrder.OrderID)

	result := &model.TradeResult{
		MainOrder:    mainOrder,
		StopLoss:     statusNotSet,
		TakeProfit:   statusNotSet,
		PositionSize: size,
	}

	if sig.StopLoss > 0 {
		slOrder, err := p.ex.PlaceStopLossOrder(ctx, symbol, side.Opposite(), size, sig.StopLoss)
		if err != nil {
			// 入场单已成交，这里失败整体按失败上报，仓位留在交易所侧
			logger.Errorf("place stop loss failed symbol=%s: %v", symbol, err)
			return nil, err
		}
		logger.Infof("stop loss placed symbol=%s orderId=%s trigger=%v", symbol, slOrder.OrderID, sig.StopLoss)
		result.StopLoss = statusPlaced
	}

	if sig.TakeProfit > 0 {
		tpOrder, err := p.ex.PlaceTakeProfitOrder(ctx, symbol, side.Opposite(), size, sig.TakeProfit)
		if err != nil {
			logger.Errorf("place take profit failed symbol=%s: %v", symbol, err)
			return nil, err
		}
		logger.Infof("take profit placed symbol=%s orderId=%s trigger=%v", symbol, tpOrder.OrderID, sig.TakeProfit)
		result.TakeProfit = statusPlaced
	}

	return result, nil
}

// FormatSymbol TradingView常用BTCUSD格式，开启usePerp时补成BTCUSDT
func (p *Processor) FormatSymbol(symbol string) string {
	if p.usePerp && strings.HasSuffix(symbol, "USD") && !strings.HasSuffix(symbol, "USDT") {
		return symbol + "T"
	}
	return symbol
}
