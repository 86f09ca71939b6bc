package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrAlreadyPaid    = errors.New("order already paid")
	ErrPaymentPending = errors.New("payment initiation already pending")
)
