package alphavantage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol is returned when the provider rejects the requested symbol.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrRateLimited is returned when the provider reports that the call quota is exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// TransportError is returned when the provider could not be reached or answered with
// something that is not a usable payload.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
