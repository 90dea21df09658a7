package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/middleware/auth"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/usecase"
)

type PaymentHandler struct {
	usecase *usecase.PaymentUsecase
	stats   *usecase.StatsUsecase
	logger  *zap.Logger
}

func NewPaymentHandler(usecase *usecase.PaymentUsecase, stats *usecase.StatsUsecase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		usecase: usecase,
		stats:   stats,
		logger:  logger,
	}
}

// CreatePayment handles POST /api/v1/payments. The response is written once settlement finishes.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req usecase.CreatePaymentInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	payment, err := h.usecase.CreatePayment(c.Request().Context(), req, &merchant.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// GetPayment handles GET /api/v1/payments/:payment_id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.usecase.GetPayment(c.Request().Context(), c.Param("payment_id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// ListPayments handles GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	payments, err := h.usecase.ListPayments(c.Request().Context(), merchant.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Debug("Retrieved merchant payments",
		zap.String("merchant_id", merchant.ID.String()),
		zap.Int("payment_count", len(payments)),
	)

	return c.JSON(http.StatusOK, payments)
}

// GetStats handles GET /api/v1/payments/stats
func (h *PaymentHandler) GetStats(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	stats, err := h.stats.GetStats(c.Request().Context(), merchant.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, stats)
}
