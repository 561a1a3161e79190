package risk

import "math"

// 风险仓位计算
// 有止损时按止损距离反推仓位，保证触发止损时亏损不超过净值的riskPercent%

const qtyPrecision = 4

type Sizer struct {
	// 信号未指定risk_percent时使用的默认值
	DefaultPercent float64
}

func NewSizer(defaultPercent float64) *Sizer {
	if defaultPercent <= 0 {
		defaultPercent = 1.0
	}
	return &Sizer{DefaultPercent: defaultPercent}
}

// Size 计算下单数量
// 无止损: equity * risk% / entryPrice，不截断
// 有止损: equity * risk% / |entryPrice - stopLoss|，向零截断到4位小数
func (s *Sizer) Size(equity, riskPercent, entryPrice, stopLoss float64) float64 {
	if riskPercent <= 0 {
		riskPercent = s.DefaultPercent
	}
	if stopLoss <= 0 {
		return equity * (riskPercent / 100) / entryPrice
	}

	riskAmount := equity * (riskPercent / 100)
	distance := math.Abs(entryPrice - stopLoss)
	size := riskAmount / distance

	return Truncate(size)
}

// Truncate 向零截断到交易所允许的小数位
func Truncate(qty float64) float64 {
	pow := math.Pow10(qtyPrecision)
	return math.Trunc(qty*pow) / pow
}
