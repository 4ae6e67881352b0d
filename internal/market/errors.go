package market

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a request the caller can fix (bad symbol, date,
// interval, industry or exchange)
var ErrInvalidInput = errors.New("invalid input")

// InvalidInput wraps ErrInvalidInput with a message meant for the client
func InvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
