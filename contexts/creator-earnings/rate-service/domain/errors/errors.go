package errors

import "errors"

var (
	ErrNoActiveRate     = errors.New("no active rate configuration")
	ErrInvalidRateInput = errors.New("invalid rate configuration input")
)
