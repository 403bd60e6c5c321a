// Package events publishes delivery milestones to JetStream so downstream
// systems (billing, reporting) can follow the paging lifecycle without
// polling the database.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/natsclient"
)

const (
	SubjectLeakHandled = "leaks.handled"
	SubjectLeakBatch   = "leaks.batch"
	SubjectLeakDrained = "leaks.drained"
	SubjectLeakResult  = "leaks.result"
)

// Publisher emits leak lifecycle events. Publishing is best-effort:
// failures are logged and swallowed so a delivery never depends on the
// broker being up.
type Publisher struct {
	nats   *natsclient.Client
	logger *zap.Logger
}

func NewPublisher(nats *natsclient.Client, logger *zap.Logger) *Publisher {
	return &Publisher{nats: nats, logger: logger}
}

type leakEvent struct {
	CustomerID         int32     `json:"customer_id"`
	LeakID             string    `json:"leak_id"`
	BatchSize          int       `json:"batch_size,omitempty"`
	ReceivedIdentities int64     `json:"received_identities,omitempty"`
	NumberOfMatches    int64     `json:"number_of_matches,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

func (p *Publisher) publish(ctx context.Context, subject string, event leakEvent) {
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshaling leak event failed", zap.String("subject", subject), zap.Error(err))
		return
	}

	if _, err := p.nats.JS.Publish(subject, data, nats.Context(ctx)); err != nil {
		p.logger.Error("publishing leak event failed",
			zap.String("subject", subject),
			zap.String("leak_id", event.LeakID),
			zap.Error(err))
	}
}

func (p *Publisher) LeakDeliveryStarted(ctx context.Context, customerID int32, leakID string) {
	p.publish(ctx, SubjectLeakHandled, leakEvent{CustomerID: customerID, LeakID: leakID})
}

func (p *Publisher) BatchDelivered(ctx context.Context, customerID int32, leakID string, size int) {
	p.publish(ctx, SubjectLeakBatch, leakEvent{CustomerID: customerID, LeakID: leakID, BatchSize: size})
}

func (p *Publisher) LeakDrained(ctx context.Context, customerID int32, leakID string) {
	p.publish(ctx, SubjectLeakDrained, leakEvent{CustomerID: customerID, LeakID: leakID})
}

func (p *Publisher) ResultReported(ctx context.Context, customerID int32, leakID string, receivedIdentities, numberOfMatches int64) {
	p.publish(ctx, SubjectLeakResult, leakEvent{
		CustomerID:         customerID,
		LeakID:             leakID,
		ReceivedIdentities: receivedIdentities,
		NumberOfMatches:    numberOfMatches,
	})
}
