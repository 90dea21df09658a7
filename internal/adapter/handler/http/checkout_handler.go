package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/usecase"
)

// CheckoutHandler serves the unauthenticated endpoints used by the hosted checkout page
type CheckoutHandler struct {
	orders   *usecase.OrderUsecase
	payments *usecase.PaymentUsecase
	logger   *zap.Logger
}

func NewCheckoutHandler(orders *usecase.OrderUsecase, payments *usecase.PaymentUsecase, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// GetOrder handles GET /api/v1/orders/:order_id/public
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.GetOrderPublic(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, order)
}

// CreatePayment handles POST /api/v1/payments/public
func (h *CheckoutHandler) CreatePayment(c echo.Context) error {
	var req usecase.CreatePaymentInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	payment, err := h.payments.CreatePaymentPublic(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// GetPayment handles GET /api/v1/payments/:payment_id/public
func (h *CheckoutHandler) GetPayment(c echo.Context) error {
	payment, err := h.payments.GetPayment(c.Request().Context(), c.Param("payment_id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}
