package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/repository"
	apperrors "github.com/wekeepgrowing/semo-payment-gateway/pkg/errors"
)

const (
	HeaderAPIKey    = "X-Api-Key"
	HeaderAPISecret = "X-Api-Secret"
)

// contextKey is used for storing the merchant in context
type contextKey string

const (
	merchantContextKey contextKey = "authenticated_merchant"
)

// APIKeyConfig holds the configuration for the API key middleware
type APIKeyConfig struct {
	Merchants repository.MerchantRepository
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip authentication
}

// APIKeyMiddleware authenticates merchants by the X-Api-Key / X-Api-Secret pair
func APIKeyMiddleware(config APIKeyConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			apiKey := c.Request().Header.Get(HeaderAPIKey)
			apiSecret := c.Request().Header.Get(HeaderAPISecret)
			if apiKey == "" || apiSecret == "" {
				config.Logger.Warn("Missing API credentials",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return respond(c, domainErrors.ErrInvalidCredentials)
			}

			merchant, err := config.Merchants.GetByCredentials(c.Request().Context(), apiKey, apiSecret)
			if err != nil {
				apperrors.LogError(config.Logger, err, "Merchant lookup failed", zap.String("path", path))
				return respond(c, domainErrors.NewInternal("merchant lookup failed", err))
			}
			if merchant == nil {
				config.Logger.Warn("Invalid API credentials",
					zap.String("api_key", apiKey),
					zap.String("path", path))
				return respond(c, domainErrors.ErrInvalidCredentials)
			}

			// Store merchant in request context
			ctx := context.WithValue(c.Request().Context(), merchantContextKey, merchant)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("merchant_id", merchant.ID.String())

			config.Logger.Debug("Merchant authenticated",
				zap.String("merchant_id", merchant.ID.String()),
				zap.String("path", path))

			return next(c)
		}
	}
}

// GetMerchantFromContext extracts the authenticated merchant from the request context
func GetMerchantFromContext(c echo.Context) (*model.Merchant, error) {
	merchant, ok := c.Request().Context().Value(merchantContextKey).(*model.Merchant)
	if !ok || merchant == nil {
		return nil, fmt.Errorf("no authenticated merchant found in context")
	}
	return merchant, nil
}

// RequireMerchant returns the authenticated merchant or an AUTHENTICATION_ERROR
func RequireMerchant(c echo.Context) (*model.Merchant, error) {
	merchant, err := GetMerchantFromContext(c)
	if err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}
	return merchant, nil
}

func respond(c echo.Context, err error) error {
	status, body := apperrors.ToResponse(err)
	return c.JSON(status, body)
}
