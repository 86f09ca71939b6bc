package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type Repository interface {
	SaveInitiation(ctx context.Context, p *Payment) error
	UpdateResult(ctx context.Context, orderNumber, paymentID, status string) error

	// SaveWebhook audits an inbound notification. The (provider, event_id)
	// unique key collapses replayed deliveries onto one row; alreadyProcessed
	// reports whether that row was processed to completion. A redelivery of an
	// event whose processing failed comes back alreadyProcessed=false so the
	// caller re-applies the transition.
	SaveWebhook(
		ctx context.Context,
		provider string,
		eventID string,
		eventType string,
		orderNumber string,
		payload json.RawMessage,
		signatureValid bool,
	) (webhookID int64, alreadyProcessed bool, err error)

	MarkWebhookProcessed(ctx context.Context, webhookID int64) error
	MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveInitiation(ctx context.Context, p *Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (order_number, payment_id, amount, currency, status, method, provider)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		p.OrderNumber, p.PaymentID, p.Amount, p.Currency, p.Status, p.Method, Provider,
	)
	if err != nil {
		return fmt.Errorf("save payment initiation: %w", err)
	}
	return nil
}

func (r *repository) UpdateResult(ctx context.Context, orderNumber, paymentID, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET payment_id = $2, status = $3, updated_at = NOW()
		WHERE order_number = $1
	`, orderNumber, paymentID, status)
	if err != nil {
		return fmt.Errorf("update payment result: %w", err)
	}
	return nil
}

func (r *repository) SaveWebhook(
	ctx context.Context,
	provider string,
	eventID string,
	eventType string,
	orderNumber string,
	payload json.RawMessage,
	signatureValid bool,
) (int64, bool, error) {

	// DO UPDATE (rather than DO NOTHING) so a replay still returns the row and
	// its processed_at state. Only a row that was processed to completion counts
	// as a duplicate; a redelivery after a failed run must be handled again.
	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_type,
		event_id,
		order_number,
		signature_valid,
		payload
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (provider, event_id)
	DO UPDATE SET received_at = NOW()
	RETURNING id, processed_at IS NOT NULL;
	`

	var (
		id        int64
		processed bool
	)
	err := r.db.QueryRowContext(
		ctx,
		q,
		provider,
		eventType,
		eventID,
		orderNumber,
		signatureValid,
		[]byte(payload),
	).Scan(&id, &processed)
	if err != nil {
		return 0, false, fmt.Errorf("save webhook: %w", err)
	}

	return id, processed, nil
}

func (r *repository) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_webhooks
		SET processed_at = NOW(), failure_reason = NULL
		WHERE id = $1
	`, webhookID)
	if err != nil {
		return fmt.Errorf("mark webhook processed: %w", err)
	}
	return nil
}

func (r *repository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_webhooks
		SET failure_reason = $2
		WHERE id = $1
	`, webhookID, reason)
	if err != nil {
		return fmt.Errorf("mark webhook failed: %w", err)
	}
	return nil
}
