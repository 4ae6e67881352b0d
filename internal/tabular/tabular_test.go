package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nested = &Layout{
		Name: "nested",
		Columns: map[Field][]string{
			Symbol:   {"listingInfo.symbol"},
			Price:    {"matchPrice.matchPrice"},
			RefPrice: {"listingInfo.refPrice"},
			Volume:   {"matchPrice.accumulatedVolume"},
		},
		Required: []Field{Symbol, Price},
	}
	flat = &Layout{
		Name: "flat",
		Columns: map[Field][]string{
			Symbol:    {"ticker", "symbol", "code"},
			Price:     {"close_price", "price", "lastPrice"},
			Change:    {"change"},
			PctChange: {"pct_change", "percent_change"},
			Volume:    {"volume", "total_volume"},
			Time:      {"t"},
		},
		Required: []Field{Symbol, Price},
	}
)

func TestFlatten(t *testing.T) {
	row := Flatten(map[string]any{
		"listingInfo": map[string]any{"symbol": "VNM", "board": map[string]any{"id": "HSX"}},
		"price":       1.0,
	})
	assert.Equal(t, "VNM", row["listingInfo.symbol"])
	assert.Equal(t, "HSX", row["listingInfo.board.id"])
	assert.Equal(t, 1.0, row["price"])
}

func TestDecodeRows(t *testing.T) {
	rows, err := DecodeRows([]byte(`[{"a":{"b":1}},{"c":"x"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0]["a.b"])

	_, err = DecodeRows([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Row
		want    string
		wantErr bool
	}{
		{
			name: "nested shape",
			rows: []Row{{"listingInfo.symbol": "VNM", "matchPrice.matchPrice": 70000.0}},
			want: "nested",
		},
		{
			name: "flat shape with alternate column",
			rows: []Row{{}, {"code": "FPT", "lastPrice": 120.5}},
			want: "flat",
		},
		{
			name:    "unknown shape",
			rows:    []Row{{"foo": 1.0}},
			wantErr: true,
		},
		{
			name:    "empty sample",
			rows:    nil,
			wantErr: true,
		},
		{
			name:    "required column null",
			rows:    []Row{{"ticker": "VNM", "price": nil}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.rows, nested, flat)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoLayout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestAccessorsDefaultToZero(t *testing.T) {
	row := Row{
		"ticker":       "VNM",
		"price":        "1,234.5",
		"change":       "-",
		"volume":       "NaN",
		"pct_change":   "2.5%",
		"total_volume": nil,
	}

	assert.Equal(t, "VNM", flat.String(row, Symbol))
	assert.Equal(t, 1234.5, flat.Float(row, Price))
	assert.Equal(t, 0.0, flat.Float(row, Change))
	assert.Equal(t, int64(0), flat.Int(row, Volume))
	assert.Equal(t, 2.5, flat.Float(row, PctChange))
	assert.Equal(t, "", flat.String(row, Name))
	assert.True(t, flat.Time(row, Time).IsZero())

	_, ok := flat.FloatOK(row, Change)
	assert.False(t, ok)
}

func TestTimeAccessor(t *testing.T) {
	sec := Row{"t": 1705305600.0}
	ms := Row{"t": 1705305600000.0}
	iso := Row{"t": "2024-01-15"}

	want := time.Unix(1705305600, 0)
	assert.True(t, flat.Time(sec, Time).Equal(want))
	assert.True(t, flat.Time(ms, Time).Equal(want))
	assert.Equal(t, "2024-01-15", flat.Time(iso, Time).Format("2006-01-02"))
}

func TestQuotes(t *testing.T) {
	rows := []Row{
		{"listingInfo.symbol": "VNM", "matchPrice.matchPrice": 70000.0, "listingInfo.refPrice": 69000.0, "matchPrice.accumulatedVolume": 1200.0},
		{"listingInfo.symbol": "['FPT']", "matchPrice.matchPrice": 120000.0},
		{"matchPrice.matchPrice": 25000.0},
		{"matchPrice.matchPrice": 1.0},
	}

	quotes := Quotes(nested, rows, []string{"VNM", "FPT", "HPG"}, 1)
	require.Len(t, quotes, 3, "row without symbol beyond requested list is dropped")

	assert.Equal(t, "VNM", quotes[0].Symbol)
	assert.Equal(t, 1000.0, quotes[0].Change)
	assert.Equal(t, 1.45, quotes[0].PctChange)
	assert.Equal(t, int64(1200), quotes[0].Volume)

	assert.Equal(t, "FPT", quotes[1].Symbol)
	assert.Zero(t, quotes[1].Change)

	assert.Equal(t, "HPG", quotes[2].Symbol, "falls back to position-indexed symbol")
	assert.Equal(t, 25000.0, quotes[2].Price)
}

func TestQuotesChangeFromPctOnly(t *testing.T) {
	pctOnly := &Layout{
		Name: "pct-only",
		Columns: map[Field][]string{
			Symbol:    {"s"},
			Price:     {"p"},
			PctChange: {"pc"},
		},
		Required: []Field{Symbol, Price},
	}
	rows := []Row{
		{"s": "VNM", "p": 71000.0, "pc": 1.43},
		{"s": "FPT", "p": 95000.0, "pc": -5.0},
	}

	quotes := Quotes(pctOnly, rows, nil, 1)
	require.Len(t, quotes, 2)

	assert.Equal(t, 1.43, quotes[0].PctChange)
	assert.InDelta(t, 70000.0, quotes[0].RefPrice, 1)
	assert.InDelta(t, 1000.0, quotes[0].Change, 1)
	assert.Greater(t, quotes[0].Change, 0.0)

	assert.Equal(t, -5.0, quotes[1].PctChange)
	assert.InDelta(t, 100000.0, quotes[1].RefPrice, 0.01)
	assert.InDelta(t, -5000.0, quotes[1].Change, 0.01)
}

func TestQuotesScale(t *testing.T) {
	rows := []Row{{"ticker": "VNM", "price": 70.5, "change": 0.5}}
	quotes := Quotes(flat, rows, nil, 1000)
	require.Len(t, quotes, 1)
	assert.Equal(t, 70500.0, quotes[0].Price)
	assert.Equal(t, 500.0, quotes[0].Change)
	assert.Equal(t, 0.71, quotes[0].PctChange)
}
