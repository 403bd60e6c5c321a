package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/repository"
)

// Auth failures the middleware maps to 400. Everything else coming out
// of ResolveToken is a 500.
var (
	ErrMissingHeader = errors.New("missing authorization header")
	ErrInvalidFormat = errors.New("invalid authorization token")
)

// The colon form is the documented wire contract, not the usual
// space-separated scheme.
const bearerPrefix = "Bearer:"

// AuthService resolves Authorization header values to customer ids.
type AuthService interface {
	// ResolveToken strips the Bearer marker, parses the remainder as a
	// UUID and looks the canonical form up as an api key. Unknown
	// tokens fail like malformed ones so probing cannot tell the two
	// apart.
	ResolveToken(ctx context.Context, header string) (int32, error)
}

type authService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewAuthService(store repository.Store, logger *zap.Logger) AuthService {
	return &authService{store: store, logger: logger}
}

func (s *authService) ResolveToken(ctx context.Context, header string) (int32, error) {
	if header == "" {
		return 0, ErrMissingHeader
	}

	raw, found := strings.CutPrefix(header, bearerPrefix)
	if !found {
		return 0, fmt.Errorf("%w: expected %q marker", ErrInvalidFormat, bearerPrefix)
	}

	token, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: not a uuid", ErrInvalidFormat)
	}

	customerID, err := s.store.CustomerIDFromToken(ctx, token.String())
	if errors.Is(err, repository.ErrEmptyResult) {
		return 0, fmt.Errorf("%w: unknown token", ErrInvalidFormat)
	}
	if err != nil {
		s.logger.Error("token lookup failed", zap.Error(err))
		return 0, err
	}

	s.logger.Debug("token resolved", zap.Int32("customer_id", customerID))
	return customerID, nil
}
