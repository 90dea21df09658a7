package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/middleware/auth"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/usecase"
)

type OrderHandler struct {
	usecase *usecase.OrderUsecase
	logger  *zap.Logger
}

func NewOrderHandler(usecase *usecase.OrderUsecase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req usecase.CreateOrderInput
	if err := bindBody(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	order, err := h.usecase.CreateOrder(c.Request().Context(), merchant.ID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/:order_id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	merchant, err := auth.RequireMerchant(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	order, err := h.usecase.GetOrder(c.Request().Context(), merchant.ID, c.Param("order_id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, order)
}
