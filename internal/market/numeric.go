package market

import "github.com/shopspring/decimal"

// Round2 rounds a price to two decimals without float drift
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// PctChange returns change/ref in percent, rounded to two decimals.
// A zero reference yields zero.
func PctChange(change, ref float64) float64 {
	if ref == 0 {
		return 0
	}
	d := decimal.NewFromFloat(change).
		Div(decimal.NewFromFloat(ref)).
		Mul(decimal.NewFromInt(100))
	return d.Round(2).InexactFloat64()
}

// ChangeFrom fills Change and PctChange from a reference price
func (q *Quote) ChangeFrom(ref float64) {
	if ref == 0 {
		return
	}
	q.RefPrice = ref
	q.Change = Round2(q.Price - ref)
	q.PctChange = PctChange(q.Price-ref, ref)
}

// RescaleHeuristic applies the legacy magnitude guess: prices below 1000
// are taken to be quoted in thousands of VND and prices above ten million
// to be over-scaled by 1000. It reports whether the value was changed.
// The vendors publish no unit contract that backs this rule.
func RescaleHeuristic(price float64) (float64, bool) {
	switch {
	case price > 0 && price < 1000:
		return price * 1000, true
	case price > 10_000_000:
		return price / 1000, true
	default:
		return price, false
	}
}
