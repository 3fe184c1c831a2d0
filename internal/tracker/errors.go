package tracker

import "errors"

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidDays      = errors.New("days must be between 1 and 365")
	ErrModelUnavailable = errors.New("language model unavailable")
	ErrStorage          = errors.New("storage unavailable")
)
