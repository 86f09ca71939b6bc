package payhere

import "fmt"

// Notification status codes, per the gateway's published contract.
const (
	StatusCodeSuccess     = 2
	StatusCodePending     = 0
	StatusCodeCanceled    = -1
	StatusCodeFailed      = -2
	StatusCodeChargedback = -3
)

// Outcome is the gateway-neutral result of a notification, mapped by the
// caller onto its own order state.
type Outcome string

const (
	OutcomeCompleted   Outcome = "COMPLETED"
	OutcomePending     Outcome = "PENDING"
	OutcomeCancelled   Outcome = "CANCELLED"
	OutcomeFailed      Outcome = "FAILED"
	OutcomeChargedback Outcome = "CHARGEDBACK"
)

// OutcomeForStatusCode maps a gateway status code to an Outcome. Unknown codes
// are rejected rather than guessed at.
func OutcomeForStatusCode(code int) (Outcome, error) {
	switch code {
	case StatusCodeSuccess:
		return OutcomeCompleted, nil
	case StatusCodePending:
		return OutcomePending, nil
	case StatusCodeCanceled:
		return OutcomeCancelled, nil
	case StatusCodeFailed:
		return OutcomeFailed, nil
	case StatusCodeChargedback:
		return OutcomeChargedback, nil
	default:
		return "", fmt.Errorf("unknown gateway status code: %d", code)
	}
}

// Terminal reports whether an outcome ends the payment attempt.
func (o Outcome) Terminal() bool {
	return o != OutcomePending
}
