package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/client"
)

// HelloHandler answers the connectivity probe. It decorates the greeting
// with a random joke when the jokes API is reachable.
type HelloHandler struct {
	jokes  client.Jokes
	logger *zap.Logger
}

func NewHelloHandler(jokes client.Jokes, logger *zap.Logger) *HelloHandler {
	return &HelloHandler{jokes: jokes, logger: logger}
}

func (h *HelloHandler) Register(e *echo.Echo) {
	e.GET("/hello", h.Hello)
}

func (h *HelloHandler) Hello(c echo.Context) error {
	h.logger.Info("/hello got called")

	message := "Hello from the leakchef!"
	if h.jokes != nil {
		joke, err := h.jokes.RandomJoke(c.Request().Context())
		if err != nil {
			h.logger.Warn("fetching joke failed", zap.Error(err))
		} else {
			message = joke
		}
	}

	return c.JSON(http.StatusOK, NewEmptyResponse(http.StatusOK, message))
}
