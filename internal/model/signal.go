package model

import (
	"fmt"
	"strings"

	"tradeflow/pkg/errors"
	"tradeflow/pkg/errors/ecode"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// TradeSignal TradingView 告警解析后的交易信号
// price为建议入场价，stop_loss/take_profit可选，0表示未设置
type TradeSignal struct {
	Action      string  `json:"action"`
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	StopLoss    float64 `json:"stop_loss,omitempty"`
	TakeProfit  float64 `json:"take_profit,omitempty"`
	RiskPercent float64 `json:"risk_percent,omitempty"`
}

// ParseAlert 解析告警内容，优先按JSON解析，失败则按文本格式解析
func ParseAlert(body []byte) (*TradeSignal, error) {
	var sig TradeSignal
	if err := json.Unmarshal(body, &sig); err == nil {
		return &sig, nil
	}
	return parseTextAlert(string(body))
}

// 文本告警格式: ACTION:SYMBOL:PRICE:SL:TP，SL和TP可省略
func parseTextAlert(text string) (*TradeSignal, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 3 {
		return nil, errors.WithCode(ecode.ParseErr, "invalid text alert format")
	}

	price, err := cast.ToFloat64E(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, ecode.ParseErr, fmt.Sprintf("invalid price %q", parts[2]))
	}
	sig := &TradeSignal{
		Action: parts[0],
		Symbol: parts[1],
		Price:  price,
	}
	if len(parts) > 3 && parts[3] != "" {
		sl, err := cast.ToFloat64E(parts[3])
		if err != nil {
			return nil, errors.Wrap(err, ecode.ParseErr, fmt.Sprintf("invalid stop loss %q", parts[3]))
		}
		sig.StopLoss = sl
	}
	if len(parts) > 4 && parts[4] != "" {
		tp, err := cast.ToFloat64E(parts[4])
		if err != nil {
			return nil, errors.Wrap(err, ecode.ParseErr, fmt.Sprintf("invalid take profit %q", parts[4]))
		}
		sig.TakeProfit = tp
	}
	return sig, nil
}

// Validate 校验必填字段，返回第一个无效字段的错误
func (s *TradeSignal) Validate() error {
	if s.Action == "" {
		return errors.WithCode(ecode.ValidateErr, "missing required field: action")
	}
	if s.Symbol == "" {
		return errors.WithCode(ecode.ValidateErr, "missing required field: symbol")
	}
	if s.Price <= 0 {
		return errors.WithCode(ecode.ValidateErr, "missing required field: price")
	}
	switch strings.ToUpper(s.Action) {
	case "BUY", "SELL":
	default:
		return errors.WithCode(ecode.ValidateErr, fmt.Sprintf("invalid action: %s", s.Action))
	}
	return nil
}

// Side 信号动作转为下单方向
func (s *TradeSignal) Side() OrderSide {
	if strings.ToUpper(s.Action) == "BUY" {
		return Buy
	}
	return Sell
}

// TradeResult 一次信号处理的结果汇总
type TradeResult struct {
	MainOrder    *OrderResult `json:"main_order"`
	StopLoss     string       `json:"stop_loss"`   // placed / not set
	TakeProfit   string       `json:"take_profit"` // placed / not set
	PositionSize float64      `json:"position_size"`
}
