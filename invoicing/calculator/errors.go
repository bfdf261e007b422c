package calculator

import "errors"

var (
	ErrInvalidTime      = errors.New("invalid clock time")
	ErrInvalidHeadcount = errors.New("headcount must be positive")
)
