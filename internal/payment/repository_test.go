package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_SaveInitiation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	p := &Payment{
		OrderNumber: "ORD-1001",
		PaymentID:   "TEMP-abc",
		Amount:      decimal.RequireFromString("2500.00"),
		Currency:    "LKR",
		Status:      "PENDING",
		Method:      "payhere_checkout",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO payments`).
			WithArgs(p.OrderNumber, p.PaymentID, p.Amount, p.Currency, p.Status, p.Method, "PAYHERE").
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.SaveInitiation(ctx, p))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO payments`).
			WillReturnError(errors.New("database error"))

		assert.Error(t, repo.SaveInitiation(ctx, p))
	})
}

func TestRepository_UpdateResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE payments`).
			WithArgs("ORD-1001", "320025471", "COMPLETED").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateResult(ctx, "ORD-1001", "320025471", "COMPLETED"))
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`UPDATE payments`).
			WillReturnError(errors.New("db error"))

		assert.Error(t, repo.UpdateResult(ctx, "ORD-1001", "320025471", "COMPLETED"))
	})
}

func TestRepository_SaveWebhook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	payload := json.RawMessage(`{"order_id":"ORD-1001","status_code":2}`)

	t.Run("FirstDelivery", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO payment_webhooks`).
			WithArgs("PAYHERE", "payment.notification", "320025471:2", "ORD-1001", true, []byte(payload)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "processed"}).AddRow(10, false))

		id, processed, err := repo.SaveWebhook(ctx, "PAYHERE", "320025471:2", "payment.notification", "ORD-1001", payload, true)
		assert.NoError(t, err)
		assert.False(t, processed)
		assert.Equal(t, int64(10), id)
	})

	t.Run("ReplayOfProcessedEvent", func(t *testing.T) {
		// The conflict path returns the existing row with processed_at set.
		mock.ExpectQuery(`INSERT INTO payment_webhooks`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "processed"}).AddRow(10, true))

		id, processed, err := repo.SaveWebhook(ctx, "PAYHERE", "320025471:2", "payment.notification", "ORD-1001", payload, true)
		assert.NoError(t, err)
		assert.True(t, processed)
		assert.Equal(t, int64(10), id)
	})

	t.Run("ReplayOfFailedEvent", func(t *testing.T) {
		// A redelivery of an event whose processing failed is not a duplicate:
		// the row exists but processed_at is still NULL.
		mock.ExpectQuery(`INSERT INTO payment_webhooks`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "processed"}).AddRow(10, false))

		id, processed, err := repo.SaveWebhook(ctx, "PAYHERE", "320025471:2", "payment.notification", "ORD-1001", payload, true)
		assert.NoError(t, err)
		assert.False(t, processed)
		assert.Equal(t, int64(10), id)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO payment_webhooks`).
			WillReturnError(errors.New("db down"))

		_, _, err := repo.SaveWebhook(ctx, "PAYHERE", "320025471:2", "payment.notification", "ORD-1001", payload, true)
		assert.Error(t, err)
	})
}

func TestRepository_MarkWebhook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Processed", func(t *testing.T) {
		mock.ExpectExec(`UPDATE payment_webhooks`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkWebhookProcessed(ctx, 10))
	})

	t.Run("Failed", func(t *testing.T) {
		mock.ExpectExec(`UPDATE payment_webhooks`).
			WithArgs(int64(10), "order not found").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkWebhookFailed(ctx, 10, "order not found"))
	})
}
