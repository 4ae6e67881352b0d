package tabular

import (
	"github.com/vanlang/stock-api/internal/market"
)

// Quotes maps price-board rows to quotes. When a row's symbol cannot be
// resolved it falls back to requested[i], the symbol asked for at the same
// position. Rows with neither are dropped. scale converts vendor price units
// to VND (1 when the vendor already quotes VND).
func Quotes(l *Layout, rows []Row, requested []string, scale float64) []market.Quote {
	if scale == 0 {
		scale = 1
	}
	out := make([]market.Quote, 0, len(rows))
	for i, row := range rows {
		symbol := market.CleanSymbol(l.String(row, Symbol))
		if !market.ValidSymbol(symbol) {
			if i >= len(requested) {
				continue
			}
			symbol = requested[i]
		}

		q := market.Quote{
			Symbol:   symbol,
			Name:     l.String(row, Name),
			Exchange: NormalizeExchange(l.String(row, Exchange)),
			Price:    l.Float(row, Price) * scale,
			RefPrice: l.Float(row, RefPrice) * scale,
			Volume:   l.Int(row, Volume),
			High:     l.Float(row, High) * scale,
			Low:      l.Float(row, Low) * scale,
		}

		pct, pctOK := l.FloatOK(row, PctChange)
		if change, ok := l.FloatOK(row, Change); ok {
			q.Change = market.Round2(change * scale)
		} else if q.RefPrice > 0 && q.Price > 0 {
			q.Change = market.Round2(q.Price - q.RefPrice)
		} else if pctOK && q.Price > 0 && pct > -100 {
			// only the percentage is known: back out the reference price
			q.RefPrice = market.Round2(q.Price / (1 + pct/100))
			q.Change = market.Round2(q.Price - q.RefPrice)
		}
		if pctOK {
			q.PctChange = market.Round2(pct)
		} else {
			ref := q.RefPrice
			if ref == 0 {
				ref = q.Price - q.Change
			}
			q.PctChange = market.PctChange(q.Change, ref)
		}
		if ts := l.Time(row, Time); !ts.IsZero() {
			q.Timestamp = ts
		}

		out = append(out, q)
	}
	return out
}

// NormalizeExchange maps vendor board codes to HOSE/HNX/UPCOM
func NormalizeExchange(s string) string {
	switch s {
	case "HSX", "HOSE", "hose", "hsx":
		return "HOSE"
	case "HNX", "hnx", "HASTC":
		return "HNX"
	case "UPCOM", "upcom":
		return "UPCOM"
	default:
		return s
	}
}
