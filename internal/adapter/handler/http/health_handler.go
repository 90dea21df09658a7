package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
)

// TestMerchantEmail identifies the merchant seeded for local testing
const TestMerchantEmail = "test@example.com"

type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

type TestMerchantResponse struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	APIKey string    `json:"api_key"`
	Seeded bool      `json:"seeded"`
}

type HealthHandler struct {
	merchants repository.MerchantRepository
	logger    *zap.Logger
}

func NewHealthHandler(merchants repository.MerchantRepository, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		merchants: merchants,
		logger:    logger,
	}
}

// Health handles GET /health. It always answers 200 and reports database reachability.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.merchants.Ping(ctx); err != nil {
		h.logger.Warn("Database health check failed", zap.Error(err))
		database = "disconnected"
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Database:  database,
		Timestamp: time.Now().UTC(),
	})
}

// TestMerchant handles GET /api/v1/test/merchant
func (h *HealthHandler) TestMerchant(c echo.Context) error {
	merchant, err := h.merchants.GetByEmail(c.Request().Context(), TestMerchantEmail)
	if err != nil {
		return respondError(c, h.logger, domainErrors.NewInternal("failed to get test merchant", err))
	}
	if merchant == nil {
		return respondError(c, h.logger, domainErrors.ErrMerchantNotFound)
	}

	return c.JSON(http.StatusOK, TestMerchantResponse{
		ID:     merchant.ID,
		Email:  merchant.Email,
		APIKey: merchant.APIKey,
		Seeded: true,
	})
}
