package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/handler"
	"github.com/kristi-balla/leakchef/internal/middleware"
	"github.com/kristi-balla/leakchef/internal/service"
)

// --- Mock AuthService ---

type MockAuthService struct {
	ctrl     *gomock.Controller
	recorder *MockAuthServiceRecorder
}

type MockAuthServiceRecorder struct {
	mock *MockAuthService
}

func NewMockAuthService(ctrl *gomock.Controller) *MockAuthService {
	m := &MockAuthService{ctrl: ctrl}
	m.recorder = &MockAuthServiceRecorder{mock: m}
	return m
}

func (m *MockAuthService) EXPECT() *MockAuthServiceRecorder {
	return m.recorder
}

func (m *MockAuthService) ResolveToken(ctx context.Context, header string) (int32, error) {
	ret := m.ctrl.Call(m, "ResolveToken", ctx, header)
	return ret[0].(int32), toError(ret[1])
}
func (mr *MockAuthServiceRecorder) ResolveToken(ctx, header any) *gomock.Call {
	return mr.mock.ctrl.RecordCall(mr.mock, "ResolveToken", ctx, header)
}

// invokeTokenAuth runs the guard around a probe handler that records the
// customer id it finds in the request context.
func invokeTokenAuth(t *testing.T, auth service.AuthService, header string) (*httptest.ResponseRecorder, int32, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/leak", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var (
		seenID int32
		seen   bool
	)
	next := func(c echo.Context) error {
		seenID, seen = middleware.GetCustomerID(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}

	err := handler.TokenAuth(auth, zap.NewNop())(next)(c)
	require.NoError(t, err)
	return rec, seenID, seen
}

func TestTokenAuth_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const header = "Bearer:0ca40a77-37b8-4786-bcd3-a4cddb1269b6"

	mockAuth := NewMockAuthService(ctrl)
	mockAuth.EXPECT().
		ResolveToken(gomock.Any(), header).
		Return(testCustomerID, nil)

	rec, seenID, seen := invokeTokenAuth(t, mockAuth, header)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seen)
	assert.Equal(t, testCustomerID, seenID)
}

func TestTokenAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := NewMockAuthService(ctrl)
	mockAuth.EXPECT().
		ResolveToken(gomock.Any(), "").
		Return(int32(0), service.ErrMissingHeader)

	rec, _, seen := invokeTokenAuth(t, mockAuth, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, seen)

	resp := decodeResponse(t, rec)
	assert.Equal(t, uint16(http.StatusBadRequest), resp.Code)
	assert.Equal(t, "missing authorization header", resp.Message)
	assert.True(t, resp.Reply.Empty())
}

func TestTokenAuth_MalformedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const header = "Bearer not-the-colon-form"

	mockAuth := NewMockAuthService(ctrl)
	mockAuth.EXPECT().
		ResolveToken(gomock.Any(), header).
		Return(int32(0), service.ErrInvalidFormat)

	rec, _, seen := invokeTokenAuth(t, mockAuth, header)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, seen)
	assert.True(t, decodeResponse(t, rec).Reply.Empty())
}

func TestTokenAuth_LookupFailureHidesDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const header = "Bearer:0ca40a77-37b8-4786-bcd3-a4cddb1269b6"

	mockAuth := NewMockAuthService(ctrl)
	mockAuth.EXPECT().
		ResolveToken(gomock.Any(), header).
		Return(int32(0), errors.New("mongo timeout"))

	rec, _, seen := invokeTokenAuth(t, mockAuth, header)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, seen)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "authentication failed", resp.Message)
	assert.NotContains(t, resp.Message, "mongo")
}
