package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanlang/stock-api/internal/market"
)

// ValidationError is a catalog file problem
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads a YAML catalog file. Unknown fields are rejected so a typo
// fails at startup instead of silently dropping a bucket.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog content
func Parse(data []byte) (*Catalog, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(f)
}

// LoadOrBuiltin loads path when set, otherwise returns the builtin catalog
func LoadOrBuiltin(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	return Load(path)
}

// Validate checks required fields and symbol syntax
func Validate(f *File) error {
	if len(f.Industries) == 0 {
		return ValidationError{"industries", "at least one industry is required"}
	}

	seen := make(map[string]bool, len(f.Industries))
	for i, ind := range f.Industries {
		field := fmt.Sprintf("industries[%d]", i)
		if ind.Key == "" {
			return ValidationError{field + ".key", "required"}
		}
		if strings.EqualFold(ind.Key, AllIndustries) {
			return ValidationError{field + ".key", `"all" is reserved`}
		}
		key := strings.ToLower(ind.Key)
		if seen[key] {
			return ValidationError{field + ".key", fmt.Sprintf("duplicate key %q", ind.Key)}
		}
		seen[key] = true

		if ind.Label == "" {
			return ValidationError{field + ".label", "required"}
		}
		if len(ind.Symbols) == 0 {
			return ValidationError{field + ".symbols", "at least one symbol is required"}
		}
		for j, e := range ind.Symbols {
			if !market.ValidSymbol(market.CleanSymbol(e.Symbol)) {
				return ValidationError{fmt.Sprintf("%s.symbols[%d]", field, j), fmt.Sprintf("invalid symbol %q", e.Symbol)}
			}
		}
	}
	return nil
}

// Hash is the SHA256 of the canonical JSON form of f
func Hash(f *File) (string, error) {
	jsonBytes, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
