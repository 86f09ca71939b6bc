package order

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	// PaymentNotAttempted is the zero value stored before any checkout starts.
	PaymentNotAttempted PaymentStatus = ""
	PaymentPending      PaymentStatus = "PENDING"
	PaymentCompleted    PaymentStatus = "COMPLETED"
	PaymentFailed       PaymentStatus = "FAILED"
	PaymentCancelled    PaymentStatus = "CANCELLED"
	PaymentRefunded     PaymentStatus = "REFUNDED"
)

// Paid reports whether the order is in a paid terminal state. Paid orders
// must never re-enter the checkout flow.
func (s PaymentStatus) Paid() bool {
	return s == PaymentCompleted || s == PaymentRefunded
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

type Order struct {
	ID          uint
	OrderNumber string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string

	DeliveryAddress string
	DeliveryCity    string
	DeliveryCountry string

	Total    decimal.Decimal
	Currency string

	Status        Status
	PaymentStatus PaymentStatus
	PaymentID     string
	PaymentMethod string

	// GatewayResponse keeps the raw gateway payload for audit.
	GatewayResponse json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusView is the read-only projection returned to polling clients.
type StatusView struct {
	OrderNumber   string          `json:"orderId"`
	OrderStatus   Status          `json:"orderStatus"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentID     string          `json:"paymentId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	LastUpdated   time.Time       `json:"lastUpdated"`
	PaymentMethod string          `json:"paymentMethod"`
}
