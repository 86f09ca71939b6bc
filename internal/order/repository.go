package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ceylonmart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// BeginPayment marks the order as awaiting payment. The state check and the
	// pending-write happen in one conditional UPDATE so two concurrent
	// initiations cannot both pass the guard: the loser gets ErrPaymentPending
	// (a checkout session already holds the order) or ErrAlreadyPaid.
	BeginPayment(ctx context.Context, orderNumber string, paymentID string, snapshot json.RawMessage) error

	// ApplyGatewayResult writes the reconciled payment/order status pair plus
	// the raw gateway payload. Replaying the same terminal status is a no-op;
	// a paid order can only move on to REFUNDED.
	ApplyGatewayResult(ctx context.Context, orderNumber string, paymentStatus PaymentStatus, status Status, paymentID, method string, raw json.RawMessage) error

	StatusProjection(ctx context.Context, orderNumber string) (*StatusView, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	query := `
		SELECT id, order_number,
		       first_name, last_name, email, phone, address, city, country,
		       delivery_address, delivery_city, delivery_country,
		       total, currency,
		       status, payment_status, payment_id, payment_method,
		       created_at, updated_at
		FROM orders
		WHERE order_number = $1
	`

	var o Order
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&o.ID, &o.OrderNumber,
		&o.FirstName, &o.LastName, &o.Email, &o.Phone, &o.Address, &o.City, &o.Country,
		&o.DeliveryAddress, &o.DeliveryCity, &o.DeliveryCountry,
		&o.Total, &o.Currency,
		&o.Status, &o.PaymentStatus, &o.PaymentID, &o.PaymentMethod,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("GetByNumber query failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	return &o, nil
}

func (r *repository) BeginPayment(ctx context.Context, orderNumber string, paymentID string, snapshot json.RawMessage) error {
	log := logger.FromCtx(ctx).With(zap.String("order_number", orderNumber))

	// The payment_status predicate is the idempotency guard: only an order with
	// no live checkout session matches, so exactly one of any set of racing
	// initiations claims the order.
	query := `
		UPDATE orders
		SET payment_status = $2,
		    payment_id = $3,
		    gateway_response = $4,
		    updated_at = NOW()
		WHERE order_number = $1
		  AND payment_status IN ($5, $6, $7)
	`

	res, err := r.db.ExecContext(ctx, query,
		orderNumber, PaymentPending, paymentID, []byte(snapshot),
		PaymentNotAttempted, PaymentFailed, PaymentCancelled,
	)
	if err != nil {
		log.Error("BeginPayment update failed", zap.Error(err))
		return fmt.Errorf("begin payment failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("begin payment failed: %w", err)
	}
	if affected > 0 {
		log.Info("Order marked pending payment")
		return nil
	}

	// Zero rows: the order is absent, already holds a pending session, or is paid.
	o, err := r.GetByNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if o.PaymentStatus == PaymentPending {
		log.Info("Payment initiation lost to an existing pending session")
		return ErrPaymentPending
	}

	log.Warn("Payment initiation rejected: order already paid")
	return ErrAlreadyPaid
}

func (r *repository) ApplyGatewayResult(ctx context.Context, orderNumber string, paymentStatus PaymentStatus, status Status, paymentID, method string, raw json.RawMessage) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_number", orderNumber),
		zap.String("payment_status", string(paymentStatus)),
	)

	query := `
		UPDATE orders
		SET payment_status = $2,
		    status = $3,
		    payment_id = $4,
		    payment_method = $5,
		    gateway_response = $6,
		    updated_at = NOW()
		WHERE order_number = $1
		  AND payment_status IS DISTINCT FROM $2
		  AND (payment_status != $7 OR $2 = $8)
	`

	res, err := r.db.ExecContext(ctx, query,
		orderNumber, paymentStatus, status, paymentID, method, []byte(raw),
		PaymentCompleted, PaymentRefunded,
	)
	if err != nil {
		log.Error("ApplyGatewayResult update failed", zap.Error(err))
		return fmt.Errorf("apply gateway result failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply gateway result failed: %w", err)
	}
	if affected > 0 {
		log.Info("Order payment status reconciled")
		return nil
	}

	if _, err := r.GetByNumber(ctx, orderNumber); err != nil {
		return err
	}

	// Replayed delivery of a state already applied.
	log.Info("Gateway result already applied, skipping")
	return nil
}

func (r *repository) StatusProjection(ctx context.Context, orderNumber string) (*StatusView, error) {
	query := `
		SELECT order_number, status, payment_status, payment_id,
		       total, currency, updated_at, payment_method
		FROM orders
		WHERE order_number = $1
	`

	var v StatusView
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&v.OrderNumber, &v.OrderStatus, &v.PaymentStatus, &v.PaymentID,
		&v.Amount, &v.Currency, &v.LastUpdated, &v.PaymentMethod,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("StatusProjection query failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return nil, fmt.Errorf("status projection failed: %w", err)
	}

	return &v, nil
}
