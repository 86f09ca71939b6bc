package payment

import (
	"errors"
	"net/http"

	"ceylonmart-be/internal/logger"
	"ceylonmart-be/internal/metrics"
	"ceylonmart-be/internal/order"
	"ceylonmart-be/internal/payhere"
	"ceylonmart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Initiate handles POST /api/payments/initiate.
func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PaymentInitiations.WithLabelValues(metrics.ResultInvalid).Inc()
		utils.RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	payload, err := h.svc.Initiate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			metrics.PaymentInitiations.WithLabelValues(metrics.ResultNotFound).Inc()
			utils.RespondError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrAlreadyPaid):
			metrics.PaymentInitiations.WithLabelValues(metrics.ResultAlreadyPaid).Inc()
			utils.RespondError(c, http.StatusBadRequest, "order has already been paid")
		case errors.Is(err, ErrAmountMismatch):
			metrics.PaymentInitiations.WithLabelValues(metrics.ResultInvalid).Inc()
			utils.RespondError(c, http.StatusBadRequest, "amount does not match order total")
		default:
			metrics.PaymentInitiations.WithLabelValues(metrics.ResultError).Inc()
			logger.FromCtx(c.Request.Context()).Error("Payment initiation failed",
				zap.String("order_number", req.OrderID),
				zap.Error(err),
			)
			utils.RespondError(c, http.StatusInternalServerError, "payment initiation failed")
		}
		return
	}

	metrics.PaymentInitiations.WithLabelValues(metrics.ResultSuccess).Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "paymentData": payload})
}

// Status handles GET /api/payments/status?orderId=...
func (h *Handler) Status(c *gin.Context) {
	orderNumber := c.Query("orderId")
	if orderNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, "orderId is required")
		return
	}

	view, err := h.svc.Status(c.Request.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, "order not found")
			return
		}
		logger.FromCtx(c.Request.Context()).Error("Payment status lookup failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		utils.RespondError(c, http.StatusInternalServerError, "status lookup failed")
		return
	}

	utils.RespondData(c, http.StatusOK, view)
}

// Webhook handles POST /api/webhooks/payment-gateway. The gateway sends
// form-encoded fields and expects only an acknowledgement status code.
func (h *Handler) Webhook(c *gin.Context) {
	var n payhere.Notification
	if err := c.ShouldBind(&n); err != nil {
		metrics.WebhookNotifications.WithLabelValues(metrics.ResultInvalid).Inc()
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	err := h.svc.HandleNotification(c.Request.Context(), &n)
	if err != nil {
		switch {
		case errors.Is(err, payhere.ErrSignatureMismatch), errors.Is(err, payhere.ErrMerchantMismatch):
			metrics.WebhookNotifications.WithLabelValues(metrics.ResultBadSignature).Inc()
			c.String(http.StatusUnauthorized, "invalid signature")
		case errors.Is(err, order.ErrOrderNotFound):
			metrics.WebhookNotifications.WithLabelValues(metrics.ResultNotFound).Inc()
			c.String(http.StatusNotFound, "order not found")
		default:
			metrics.WebhookNotifications.WithLabelValues(metrics.ResultError).Inc()
			logger.FromCtx(c.Request.Context()).Error("Webhook processing failed",
				zap.String("order_number", n.OrderID),
				zap.Error(err),
			)
			c.String(http.StatusInternalServerError, "failed to update order")
		}
		return
	}

	metrics.WebhookNotifications.WithLabelValues(metrics.ResultSuccess).Inc()
	c.String(http.StatusOK, "ok")
}
