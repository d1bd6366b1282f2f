package externalApi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("error not found")
	ErrServiceError     = errors.New("error external service responded with failure")
	ErrQuoteUnavailable = errors.New("error quote unavailable")
	ErrPublish          = errors.New("error publish failed")
)

// MissingQuotesError lists the requested symbols the quote service did not return.
type MissingQuotesError struct {
	Symbols []string
}

func (e *MissingQuotesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrQuoteUnavailable, strings.Join(e.Symbols, ","))
}

func (e *MissingQuotesError) Unwrap() error {
	return ErrQuoteUnavailable
}
