package middleware

import "context"

// Context keys for values injected by the token auth middleware.
type contextKey string

const (
	// CustomerIDKey is the context key for the authenticated customer's
	// numeric id.
	CustomerIDKey contextKey = "customer_id"
)

// WithCustomerID returns a new context with the customer id set.
func WithCustomerID(ctx context.Context, customerID int32) context.Context {
	return context.WithValue(ctx, CustomerIDKey, customerID)
}

// GetCustomerID extracts the customer id from the context.
func GetCustomerID(ctx context.Context) (int32, bool) {
	v, ok := ctx.Value(CustomerIDKey).(int32)
	return v, ok
}
