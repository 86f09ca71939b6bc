package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

const Provider = "PAYHERE"

// Payment is one checkout attempt recorded against an order.
type Payment struct {
	ID          uint
	OrderNumber string
	PaymentID   string
	Amount      decimal.Decimal
	Currency    string
	Status      string
	Method      string
	Provider    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InitiateRequest is the client body for POST /api/payments/initiate.
type InitiateRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	Items     string `json:"items" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	Country   string `json:"country" binding:"required"`

	DeliveryAddress string `json:"deliveryAddress"`
	DeliveryCity    string `json:"deliveryCity"`
	DeliveryCountry string `json:"deliveryCountry"`

	// Amount and currency are optional cross-checks; the order's stored total
	// is authoritative for the signature.
	Amount   *decimal.Decimal `json:"amount"`
	Currency string           `json:"currency"`
}

// initiationSnapshot is what gets written onto the order when checkout starts.
type initiationSnapshot struct {
	InitiatedAt time.Time `json:"initiated_at"`
	Method      string    `json:"method"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	PaymentID   string    `json:"payment_id"`
}
