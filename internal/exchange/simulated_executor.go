package exchange

import (
	"context"
	"strconv"
	"sync"

	"tradeflow/internal/model"
	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// 模拟交易所，测试用
// 记录所有下过的单，可注入余额、持仓和失败行为
type SimulatedExchange struct {
	mu sync.Mutex

	Equity    float64
	Positions []model.Position
	Orders    []model.Order

	// 收到的所有下单请求，按顺序
	Placed []*model.OrderRequest

	// 第N笔下单后开始失败（从1数），0表示不失败，负数表示全部失败
	FailAfter int
	placed    int
}

func NewSimulatedExchange(equity float64) *SimulatedExchange {
	return &SimulatedExchange{Equity: equity}
}

func (s *SimulatedExchange) GetAccountBalance(ctx context.Context) (float64, error) {
	return s.Equity, nil
}

func (s *SimulatedExchange) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.placed++
	if s.FailAfter < 0 || (s.FailAfter > 0 && s.placed > s.FailAfter) {
		return nil, errors.WithCode(ecode.ExchangeErr, "simulated order reject")
	}
	s.Placed = append(s.Placed, req)
	return &model.OrderResult{OrderID: uuid.NewString()}, nil
}

func (s *SimulatedExchange) placeConditional(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64, filter model.OrderFilter) (*model.OrderResult, error) {
	return s.PlaceOrder(ctx, &model.OrderRequest{
		Category:     model.CategoryLinear,
		Symbol:       symbol,
		Side:         side,
		OrderType:    model.Market,
		Qty:          strconv.FormatFloat(qty, 'f', -1, 64),
		TriggerPrice: strconv.FormatFloat(triggerPrice, 'f', -1, 64),
		TriggerBy:    model.TriggerByLastPrice,
		OrderFilter:  filter,
		TimeInForce:  model.TimeInForceGTC,
		ReduceOnly:   true,
	})
}

func (s *SimulatedExchange) PlaceStopLossOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64) (*model.OrderResult, error) {
	return s.placeConditional(ctx, symbol, side, qty, triggerPrice, model.FilterStopOrder)
}

func (s *SimulatedExchange) PlaceTakeProfitOrder(ctx context.Context, symbol string, side model.OrderSide, qty, triggerPrice float64) (*model.OrderResult, error) {
	return s.placeConditional(ctx, symbol, side, qty, triggerPrice, model.FilterTpSlOrder)
}

func (s *SimulatedExchange) GetPositions(ctx context.Context, symbol string) ([]model.Position, error) {
	if symbol == "" {
		return s.Positions, nil
	}
	var out []model.Position
	for _, p := range s.Positions {
		if p.Symbol == symbol {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *SimulatedExchange) GetOrders(ctx context.Context, symbol string) ([]model.Order, error) {
	return s.Orders, nil
}

func (s *SimulatedExchange) CancelOrder(ctx context.Context, symbol, orderID string) (*model.OrderResult, error) {
	return &model.OrderResult{OrderID: orderID}, nil
}

func (s *SimulatedExchange) CloseAllPositions(ctx context.Context) ([]*model.OrderResult, error) {
	positions, err := s.GetPositions(ctx, "")
	if err != nil {
		return nil, err
	}
	var results []*model.OrderResult
	for _, pos := range positions {
		if cast.ToFloat64(pos.Size) <= 0 {
			continue
		}
		result, err := s.PlaceOrder(ctx, &model.OrderRequest{
			Category:    model.CategoryLinear,
			Symbol:      pos.Symbol,
			Side:        model.OrderSide(pos.Side).Opposite(),
			OrderType:   model.Market,
			Qty:         pos.Size,
			TimeInForce: model.TimeInForceGTC,
			ReduceOnly:  true,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *SimulatedExchange) GetTradeHistory(ctx context.Context, symbol string, limit int) ([]model.Execution, error) {
	return nil, nil
}

func (s *SimulatedExchange) GetSymbolInfo(ctx context.Context, symbol string) (*model.InstrumentInfo, error) {
	return &model.InstrumentInfo{Symbol: symbol}, nil
}
