// Package export writes history bars to files (csv, json, parquet) for the
// export CLI command.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/vanlang/stock-api/internal/market"
)

// Formats
const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

// Formats lists the supported output formats
var Formats = []string{FormatCSV, FormatJSON, FormatParquet}

// Record is the flat row written by every format
type Record struct {
	Symbol    string  `json:"symbol" parquet:"symbol"`
	Date      string  `json:"date" parquet:"date"`
	Timestamp int64   `json:"t" parquet:"t"` // unix milliseconds
	Open      float64 `json:"open" parquet:"open"`
	High      float64 `json:"high" parquet:"high"`
	Low       float64 `json:"low" parquet:"low"`
	Close     float64 `json:"close" parquet:"close"`
	Volume    int64   `json:"volume" parquet:"volume"`
}

// Records converts bars of one symbol
func Records(symbol string, bars []market.Bar) []Record {
	out := make([]Record, len(bars))
	for i, b := range bars {
		out[i] = Record{
			Symbol:    symbol,
			Date:      b.Date,
			Timestamp: b.Time.UnixMilli(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		}
	}
	return out
}

// Writer encodes records in one format
type Writer interface {
	Write(w io.Writer, records []Record) error
	Extension() string
}

// New returns the writer for format
func New(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return CSVWriter{}, nil
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatParquet:
		return ParquetWriter{}, nil
	}
	return nil, market.InvalidInput("unsupported format %q (use: %s)", format, strings.Join(Formats, ", "))
}

// Save writes records to path in the given format
func Save(path, format string, records []Record) error {
	w, err := New(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := w.Write(buf, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// CSVWriter writes a header row followed by one row per record
type CSVWriter struct{}

func (CSVWriter) Extension() string { return FormatCSV }

var csvHeader = []string{"symbol", "date", "t", "open", "high", "low", "close", "volume"}

func (CSVWriter) Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Symbol,
			r.Date,
			strconv.FormatInt(r.Timestamp, 10),
			formatFloat(r.Open),
			formatFloat(r.High),
			formatFloat(r.Low),
			formatFloat(r.Close),
			strconv.FormatInt(r.Volume, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JSONWriter writes an indented array
type JSONWriter struct{}

func (JSONWriter) Extension() string { return FormatJSON }

func (JSONWriter) Write(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ParquetWriter writes one row group with the Record schema
type ParquetWriter struct{}

func (ParquetWriter) Extension() string { return FormatParquet }

func (ParquetWriter) Write(w io.Writer, records []Record) error {
	return parquet.Write(w, records)
}
