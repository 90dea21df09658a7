package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/semo-payment-gateway/internal/domain/errors"
	apperrors "github.com/wekeepgrowing/semo-payment-gateway/pkg/errors"
)

const invalidBodyDescription = "Invalid request body"

// respondError writes the {"error": {"code", "description"}} body for err.
// Internal errors are logged and replaced by a generic description.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	if apperrors.CodeOf(err) == apperrors.ErrInternal {
		apperrors.LogError(logger, err, "Request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()))
	}

	status, body := apperrors.ToResponse(err)
	return c.JSON(status, body)
}

// bindBody decodes the JSON request body into dst
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domainErrors.NewBadRequest(invalidBodyDescription)
	}
	return nil
}
