// Package provider defines the market-data source abstraction and the
// decorators composed around it: a startup-probed Registry, a two-tier
// primary/fallback source and a Redis-backed cache.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vanlang/stock-api/internal/market"
)

//go:generate mockgen -destination=providertest/mock_provider.go -package=providertest . Provider

// Provider is one upstream market-data vendor
type Provider interface {
	Name() string
	Capabilities() Capabilities
	PriceBoard(ctx context.Context, symbols []string) ([]market.Quote, error)
	History(ctx context.Context, symbol string, from, to time.Time, iv market.Interval) ([]market.Bar, error)
	Intraday(ctx context.Context, symbol string, page, pageSize int) ([]market.Trade, error)
	Company(ctx context.Context, symbol string) (*market.Company, error)
	Listing(ctx context.Context) ([]market.Listing, error)
}

// Prober is implemented by providers that can check reachability and
// detect their response layout with one cheap call
type Prober interface {
	Probe(ctx context.Context) (layout string, err error)
}

// Source names
const (
	SourceVCI   = "VCI"
	SourceTCBS  = "TCBS"
	SourceYahoo = "YAHOO"
	SourceMock  = "MOCK"
)

// FallbackOrder is the documented order used to pick a default source when
// the configured one is unreachable
var FallbackOrder = []string{SourceVCI, SourceTCBS, SourceYahoo}

// Error taxonomy. Invalid user input is market.ErrInvalidInput.
var (
	// ErrEmpty: the vendor answered but returned no rows
	ErrEmpty = errors.New("provider returned no data")
	// ErrUpstream: the vendor call failed (transport, status, timeout)
	ErrUpstream = errors.New("upstream provider error")
	// ErrSchema: the response did not match any known layout
	ErrSchema = errors.New("upstream schema mismatch")
	// ErrUnsupported: the provider does not offer this operation
	ErrUnsupported = errors.New("operation not supported by provider")
)

// Upstream wraps a failed vendor call so it matches ErrUpstream and still
// exposes the cause
func Upstream(source string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUpstream) || errors.Is(err, ErrEmpty) || errors.Is(err, ErrSchema) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", source, ErrUpstream, err)
}

// Schema wraps a layout mismatch
func Schema(source string, err error) error {
	return fmt.Errorf("%s: %w: %w", source, ErrSchema, err)
}

// Empty reports an empty result for what
func Empty(source, what string) error {
	return fmt.Errorf("%s: %w for %s", source, ErrEmpty, what)
}

// Unsupported reports a missing capability
func Unsupported(source, op string) error {
	return fmt.Errorf("%s: %w: %s", source, ErrUnsupported, op)
}

// Capabilities is a static bit-set of supported operations
type Capabilities uint8

const (
	CapPriceBoard Capabilities = 1 << iota
	CapHistory
	CapIntraday
	CapCompany
	CapListing

	CapAll = CapPriceBoard | CapHistory | CapIntraday | CapCompany | CapListing
)

var capNames = []struct {
	cap  Capabilities
	name string
}{
	{CapPriceBoard, "price_board"},
	{CapHistory, "history"},
	{CapIntraday, "intraday"},
	{CapCompany, "company"},
	{CapListing, "listing"},
}

// Has reports whether every bit of want is set
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

// Names lists the set capabilities
func (c Capabilities) Names() []string {
	out := []string{}
	for _, cn := range capNames {
		if c.Has(cn.cap) {
			out = append(out, cn.name)
		}
	}
	return out
}

func (c Capabilities) String() string {
	return strings.Join(c.Names(), ",")
}

// MarshalJSON renders the set as a list of names
func (c Capabilities) MarshalJSON() ([]byte, error) {
	names := c.Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + n + `"`
	}
	return []byte("[" + strings.Join(quoted, ",") + "]"), nil
}
