package service

import "context"

// EventPublisher broadcasts delivery milestones to interested systems.
// Publishing is best-effort: a delivery never fails because an event
// could not be sent, so the methods carry no error return.
type EventPublisher interface {
	LeakDeliveryStarted(ctx context.Context, customerID int32, leakID string)
	BatchDelivered(ctx context.Context, customerID int32, leakID string, size int)
	LeakDrained(ctx context.Context, customerID int32, leakID string)
	ResultReported(ctx context.Context, customerID int32, leakID string, receivedIdentities, numberOfMatches int64)
}

// NoopPublisher drops every event. Used when no message broker is
// configured.
type NoopPublisher struct{}

func (NoopPublisher) LeakDeliveryStarted(context.Context, int32, string) {}

func (NoopPublisher) BatchDelivered(context.Context, int32, string, int) {}

func (NoopPublisher) LeakDrained(context.Context, int32, string) {}

func (NoopPublisher) ResultReported(context.Context, int32, string, int64, int64) {}
