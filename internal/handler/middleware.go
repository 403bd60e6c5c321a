package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/middleware"
	"github.com/kristi-balla/leakchef/internal/service"
)

// TokenAuth guards every route behind the bearer token. Malformed or
// missing credentials are a 400, lookup failures a 500. The resolved
// customer id travels down the chain in the request context.
func TokenAuth(auth service.AuthService, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			customerID, err := auth.ResolveToken(c.Request().Context(), header)
			if err != nil {
				if errors.Is(err, service.ErrMissingHeader) || errors.Is(err, service.ErrInvalidFormat) {
					logger.Warn("rejecting request", zap.Error(err))
					return c.JSON(http.StatusBadRequest,
						NewEmptyResponse(http.StatusBadRequest, err.Error()))
				}
				return c.JSON(http.StatusInternalServerError,
					NewEmptyResponse(http.StatusInternalServerError, "authentication failed"))
			}

			ctx := middleware.WithCustomerID(c.Request().Context(), customerID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
