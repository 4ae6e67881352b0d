package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanlang/stock-api/pkg/logger"
)

// Tiered composes a live primary source with a static fallback. A nil
// Fallback disables the second tier.
type Tiered struct {
	Primary  Provider
	Fallback Provider
}

// Result carries a value and which tier produced it
type Result[T any] struct {
	Value      T
	Source     string
	Fallback   bool
	PrimaryErr error
}

// Try runs call on the primary tier and, when it fails, on the fallback.
// Invalid input never falls through. When both tiers fail the primary
// error is returned with the fallback error attached.
func Try[T any](ctx context.Context, t Tiered, log *logger.Logger, op, symbol string, call func(context.Context, Provider) (T, error)) (Result[T], error) {
	var res Result[T]

	if t.Primary != nil {
		v, err := call(ctx, t.Primary)
		if err == nil {
			return Result[T]{Value: v, Source: t.Primary.Name()}, nil
		}
		if IsInvalidInput(err) {
			return res, err
		}
		res.PrimaryErr = err
		log.WithUpstream(t.Primary.Name(), symbol, op).WithError(err).Warn("Primary source failed")
	}

	if t.Fallback == nil {
		if res.PrimaryErr == nil {
			return res, errors.New("no data source configured")
		}
		return res, res.PrimaryErr
	}

	v, err := call(ctx, t.Fallback)
	if err != nil {
		if res.PrimaryErr == nil {
			return res, err
		}
		return res, fmt.Errorf("%w (fallback %s: %v)", res.PrimaryErr, t.Fallback.Name(), err)
	}

	log.WithUpstream(t.Fallback.Name(), symbol, op).Info("Served from fallback source")
	res.Value = v
	res.Source = t.Fallback.Name()
	res.Fallback = true
	return res, nil
}
