// Package tabular reads vendor rows through named, optional fields.
//
// Vendors return loosely-typed tables whose column names drift between API
// versions. A Layout names the fields the service cares about and lists the
// candidate columns for each, in priority order. Adapters pick one Layout per
// response shape (see Detect) instead of guessing per request.
package tabular

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one flattened vendor record. Nested objects are flattened with
// dotted keys: {"listingInfo":{"symbol":"VNM"}} becomes "listingInfo.symbol".
type Row map[string]any

// Flatten turns a decoded JSON object into a Row
func Flatten(obj map[string]any) Row {
	row := make(Row, len(obj))
	flattenInto(row, "", obj)
	return row
}

func flattenInto(row Row, prefix string, obj map[string]any) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(row, key, nested)
			continue
		}
		row[key] = v
	}
}

// DecodeRows decodes a JSON array of objects into flattened rows
func DecodeRows(data []byte) ([]Row, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		rows = append(rows, Flatten(obj))
	}
	return rows, nil
}

// Has reports whether the column is present and non-null
func (r Row) Has(col string) bool {
	v, ok := r[col]
	return ok && v != nil
}

// toFloat converts a vendor cell to float64. Blank, "-", "NaN" and anything
// unparseable are reported as !ok.
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case float32:
		return toFloat(float64(val))
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(val)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSuffix(s, "%")
		if s == "" || s == "-" || s == "--" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// toTime accepts unix seconds, unix milliseconds, RFC3339 and a few
// vendor date formats
func toTime(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02", "02/01/2006", "15:04:05"} {
			if t, err := time.ParseInLocation(layout, s, location); err == nil {
				return t, true
			}
		}
	}
	f, ok := toFloat(v)
	if !ok || f <= 0 {
		return time.Time{}, false
	}
	n := int64(f)
	if n > 1e12 {
		return time.UnixMilli(n).In(location), true
	}
	return time.Unix(n, 0).In(location), true
}

var location = time.FixedZone("ICT", 7*60*60)
