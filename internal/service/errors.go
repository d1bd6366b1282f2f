package service

import "errors"

var (
	ErrMalformedInput = errors.New("error malformed input")
	ErrEmptyPortfolio = errors.New("error empty portfolio")
	ErrInvalidQuote   = errors.New("error invalid quote")
)
