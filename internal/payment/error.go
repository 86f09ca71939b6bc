package payment

import "errors"

var (
	ErrAmountMismatch = errors.New("request amount does not match order total")
)
