package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ceylonmart-be/internal/config"
	"ceylonmart-be/internal/logger"
	"ceylonmart-be/internal/order"
	"ceylonmart-be/internal/payhere"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Initiate validates the order, atomically marks it pending and returns
	// the signed payload the client forwards to the hosted gateway.
	Initiate(ctx context.Context, req InitiateRequest) (*payhere.CheckoutRequest, error)

	// HandleNotification reconciles an asynchronous gateway callback. A bad
	// signature fails closed: the order is never touched.
	HandleNotification(ctx context.Context, n *payhere.Notification) error

	// Status returns the poll projection for clients waiting on the webhook.
	Status(ctx context.Context, orderNumber string) (*order.StatusView, error)
}

type service struct {
	orders order.Repository
	repo   Repository
	signer *payhere.Signer
	cfg    *config.Config
}

func NewService(orders order.Repository, repo Repository, signer *payhere.Signer, cfg *config.Config) Service {
	return &service{
		orders: orders,
		repo:   repo,
		signer: signer,
		cfg:    cfg,
	}
}

func (s *service) Initiate(ctx context.Context, req InitiateRequest) (*payhere.CheckoutRequest, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_number", req.OrderID))

	o, err := s.orders.GetByNumber(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// The stored total is authoritative; a client-sent amount may only confirm it.
	if req.Amount != nil && !req.Amount.Equal(o.Total) {
		log.Warn("Initiation amount mismatch",
			zap.String("request_amount", req.Amount.String()),
			zap.String("order_total", o.Total.String()),
		)
		return nil, ErrAmountMismatch
	}

	currency := o.Currency
	if currency == "" {
		currency = req.Currency
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	// Placeholder token until the gateway assigns the real payment id.
	placeholder := "TEMP-" + uuid.NewString()

	snapshot, err := json.Marshal(initiationSnapshot{
		InitiatedAt: time.Now().UTC(),
		Method:      "payhere_checkout",
		Amount:      payhere.FormatAmount(o.Total),
		Currency:    currency,
		PaymentID:   placeholder,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal initiation snapshot: %w", err)
	}

	if err := s.orders.BeginPayment(ctx, o.OrderNumber, placeholder, snapshot); err != nil {
		if errors.Is(err, order.ErrPaymentPending) {
			// A checkout session already holds the order (retry after an
			// abandoned popup, or a lost race). Hand back that session instead
			// of minting a second one; the hash depends only on order data.
			existing, lookupErr := s.orders.GetByNumber(ctx, o.OrderNumber)
			if lookupErr != nil {
				return nil, lookupErr
			}
			log.Info("Reusing pending checkout session",
				zap.String("payment_id", existing.PaymentID),
			)
			return s.checkoutPayload(existing, req, existing.PaymentID, currency), nil
		}
		return nil, err
	}

	p := &Payment{
		OrderNumber: o.OrderNumber,
		PaymentID:   placeholder,
		Amount:      o.Total,
		Currency:    currency,
		Status:      string(order.PaymentPending),
		Method:      "payhere_checkout",
	}
	if err := s.repo.SaveInitiation(ctx, p); err != nil {
		// The order is already pending; the attempt record is audit only.
		log.Error("Failed to record payment initiation", zap.Error(err))
	}

	log.Info("Payment initiated",
		zap.String("amount", payhere.FormatAmount(o.Total)),
		zap.String("currency", currency),
	)

	return s.checkoutPayload(o, req, placeholder, currency), nil
}

func (s *service) checkoutPayload(o *order.Order, req InitiateRequest, token, currency string) *payhere.CheckoutRequest {
	return &payhere.CheckoutRequest{
		MerchantID:      s.signer.MerchantID(),
		ReturnURL:       s.cfg.ReturnURL,
		CancelURL:       s.cfg.CancelURL,
		NotifyURL:       s.cfg.NotifyURL,
		OrderID:         o.OrderNumber,
		Items:           req.Items,
		Amount:          payhere.FormatAmount(o.Total),
		Currency:        currency,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryCity:    req.DeliveryCity,
		DeliveryCountry: req.DeliveryCountry,
		Custom1:         token,
		Custom2:         "",
		Hash:            s.signer.Sign(o.OrderNumber, o.Total, currency),
	}
}

func (s *service) HandleNotification(ctx context.Context, n *payhere.Notification) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_number", n.OrderID),
		zap.String("payment_id", n.PaymentID),
		zap.Int("status_code", n.StatusCode),
	)

	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.signer.VerifyNotification(n); err != nil {
		log.Warn("Webhook signature verification failed", zap.Error(err))
		// Keep an audit trail of rejected deliveries; order state stays
		// untouched. Rejected rows live under their own event id so a forged
		// delivery can never reserve the genuine event's dedup slot.
		if _, _, auditErr := s.repo.SaveWebhook(ctx, Provider, "rejected:"+s.eventID(n), "payment.notification.rejected", n.OrderID, raw, false); auditErr != nil {
			log.Error("Failed to audit rejected webhook", zap.Error(auditErr))
		}
		return err
	}

	webhookID, alreadyProcessed, err := s.repo.SaveWebhook(ctx, Provider, s.eventID(n), "payment.notification", n.OrderID, raw, true)
	if err != nil {
		return err
	}
	if alreadyProcessed {
		log.Info("Duplicate webhook delivery, already processed")
		return nil
	}

	outcome, err := payhere.OutcomeForStatusCode(n.StatusCode)
	if err != nil {
		log.Warn("Webhook carried unknown status code", zap.Error(err))
		if failErr := s.repo.MarkWebhookFailed(ctx, webhookID, err.Error()); failErr != nil {
			log.Error("Failed to mark webhook failed", zap.Error(failErr))
		}
		return err
	}

	paymentStatus, orderStatus := statusesForOutcome(outcome)

	if err := s.orders.ApplyGatewayResult(ctx, n.OrderID, paymentStatus, orderStatus, n.PaymentID, n.Method, raw); err != nil {
		if failErr := s.repo.MarkWebhookFailed(ctx, webhookID, err.Error()); failErr != nil {
			log.Error("Failed to mark webhook failed", zap.Error(failErr))
		}
		return err
	}

	if err := s.repo.UpdateResult(ctx, n.OrderID, n.PaymentID, string(paymentStatus)); err != nil {
		log.Error("Failed to update payment record", zap.Error(err))
	}

	if err := s.repo.MarkWebhookProcessed(ctx, webhookID); err != nil {
		log.Error("Failed to mark webhook processed", zap.Error(err))
	}

	log.Info("Webhook reconciled",
		zap.String("payment_status", string(paymentStatus)),
		zap.String("order_status", string(orderStatus)),
	)
	return nil
}

func (s *service) Status(ctx context.Context, orderNumber string) (*order.StatusView, error) {
	return s.orders.StatusProjection(ctx, orderNumber)
}

// eventID dedupes redelivered notifications: the gateway retries with the
// same payment id and status code.
func (s *service) eventID(n *payhere.Notification) string {
	if n.PaymentID != "" {
		return fmt.Sprintf("%s:%d", n.PaymentID, n.StatusCode)
	}
	return fmt.Sprintf("order:%s:%d", n.OrderID, n.StatusCode)
}

func statusesForOutcome(outcome payhere.Outcome) (order.PaymentStatus, order.Status) {
	switch outcome {
	case payhere.OutcomeCompleted:
		return order.PaymentCompleted, order.StatusConfirmed
	case payhere.OutcomeCancelled:
		return order.PaymentCancelled, order.StatusCancelled
	case payhere.OutcomeFailed:
		// A failed attempt leaves the order open for another try.
		return order.PaymentFailed, order.StatusPending
	case payhere.OutcomeChargedback:
		return order.PaymentRefunded, order.StatusCancelled
	default:
		return order.PaymentPending, order.StatusPending
	}
}
