package transform

import "errors"

// Sentinel errors for transaction steps.
var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrUnsupportedRange   = errors.New("unsupported replace range")
	ErrEmptyFragment      = errors.New("empty fragment")
)
