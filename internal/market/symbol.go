package market

import (
	"regexp"
	"strings"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// CleanSymbol strips list-like vendor noise such as ['VNM'] or "VNM" and
// upper-cases the result. It does not validate.
func CleanSymbol(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "[]()")
	s = strings.Trim(s, `'" `)
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSymbol reports whether s is an already-clean ticker
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// NormalizeSymbol cleans and validates a single ticker
func NormalizeSymbol(raw string) (string, error) {
	s := CleanSymbol(raw)
	if s == "" {
		return "", InvalidInput("symbol is required")
	}
	if !ValidSymbol(s) {
		return "", InvalidInput("invalid symbol %q", raw)
	}
	return s, nil
}

// ParseSymbols splits a comma-separated list, cleans each entry, drops
// invalid or duplicate tickers (first occurrence wins) and caps the result
// at max entries when max > 0. Rejected raw entries are returned separately.
func ParseSymbols(csv string, max int) (symbols []string, rejected []string) {
	seen := make(map[string]struct{})
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s := CleanSymbol(part)
		if !ValidSymbol(s) {
			rejected = append(rejected, strings.TrimSpace(part))
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		symbols = append(symbols, s)
		if max > 0 && len(symbols) == max {
			break
		}
	}
	return symbols, rejected
}

// Dedupe removes repeated symbols keeping the first occurrence
func Dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
