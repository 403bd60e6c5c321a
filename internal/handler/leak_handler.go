package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/middleware"
	"github.com/kristi-balla/leakchef/internal/service"
)

const (
	msgEverythingFine = "Everything is fine"
	msgLeakReceived   = "All identities for this leak have been received"
)

// LeakHandler serves the three delivery endpoints.
type LeakHandler struct {
	svc    service.DeliveryService
	logger *zap.Logger
}

func NewLeakHandler(svc service.DeliveryService, logger *zap.Logger) *LeakHandler {
	return &LeakHandler{svc: svc, logger: logger}
}

func (h *LeakHandler) Register(e *echo.Echo) {
	e.GET("/leak", h.GetNewestLeak)
	e.GET("/leak/:leak_id", h.GetLeak)
	e.POST("/result", h.PostResult)
}

// errResponse emits the envelope for a failed request. Everything that is
// not an authentication failure is a 500 with a diagnostic message; the
// 4xx range belongs to the auth middleware.
func errResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, NewEmptyResponse(uint16(status), msg))
}

// resultRequest is the body of POST /result.
type resultRequest struct {
	LeakID             string `json:"leak_id"`
	ReceivedIdentities uint32 `json:"received_identities"`
	NumberOfMatches    uint32 `json:"number_of_matches"`
}

// bindLeakRequest parses the shared query parameters of the paging
// endpoints. supported_identifiers and limit are mandatory.
func bindLeakRequest(c echo.Context) (service.LeakRequest, error) {
	supported, err := service.ParseIdentifiers(c.QueryParam("supported_identifiers"))
	if err != nil {
		return service.LeakRequest{}, err
	}

	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if err != nil {
		return service.LeakRequest{}, err
	}

	return service.LeakRequest{
		SupportedIdentifiers: supported,
		Filter:               c.QueryParam("filter"),
		Limit:                limit,
	}, nil
}

// customerID pulls the id the auth middleware parked in the request
// context. Absence means the route was wired without the guard.
func customerID(c echo.Context) (int32, bool) {
	return middleware.GetCustomerID(c.Request().Context())
}

func (h *LeakHandler) GetNewestLeak(c echo.Context) error {
	h.logger.Info("/leak got called")

	id, ok := customerID(c)
	if !ok {
		return errResponse(c, http.StatusInternalServerError, "no customer id for your api key")
	}

	req, err := bindLeakRequest(c)
	if err != nil {
		return errResponse(c, http.StatusInternalServerError, err.Error())
	}

	leakID, identities, err := h.svc.GetNewest(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Error("delivering newest leak failed",
			zap.Int32("customer_id", id),
			zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, NewIdentitiesResponse(http.StatusOK, "", NormalReply{
		CustomerID: id,
		LeakID:     leakID,
		Identities: identities,
	}))
}

func (h *LeakHandler) GetLeak(c echo.Context) error {
	leakID := c.Param("leak_id")
	h.logger.Info("/leak/:leak_id got called", zap.String("leak_id", leakID))

	id, ok := customerID(c)
	if !ok {
		return errResponse(c, http.StatusInternalServerError, "no customer id for your api key")
	}

	req, err := bindLeakRequest(c)
	if err != nil {
		return errResponse(c, http.StatusInternalServerError, err.Error())
	}

	identities, err := h.svc.GetSpecific(c.Request().Context(), id, leakID, req)
	if err != nil {
		h.logger.Error("delivering leak batch failed",
			zap.Int32("customer_id", id),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, err.Error())
	}

	message := msgEverythingFine
	if len(identities) == 0 {
		message = msgLeakReceived
	}

	return c.JSON(http.StatusOK, NewIdentitiesResponse(http.StatusOK, message, NormalReply{
		CustomerID: id,
		LeakID:     leakID,
		Identities: identities,
	}))
}

func (h *LeakHandler) PostResult(c echo.Context) error {
	h.logger.Info("/result got called")

	id, ok := customerID(c)
	if !ok {
		return errResponse(c, http.StatusInternalServerError, "no customer id for your api key")
	}

	var req resultRequest
	if err := c.Bind(&req); err != nil {
		return errResponse(c, http.StatusInternalServerError, "invalid request body")
	}

	err := h.svc.PostResult(c.Request().Context(), id, service.ResultRequest{
		LeakID:             req.LeakID,
		ReceivedIdentities: int64(req.ReceivedIdentities),
		NumberOfMatches:    int64(req.NumberOfMatches),
	})
	if err != nil {
		h.logger.Error("recording result failed",
			zap.Int32("customer_id", id),
			zap.String("leak_id", req.LeakID),
			zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, NewIdentitiesResponse(http.StatusOK, msgEverythingFine, NormalReply{
		CustomerID: id,
		LeakID:     req.LeakID,
	}))
}
