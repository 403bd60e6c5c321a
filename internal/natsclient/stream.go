package natsclient

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// StreamLeakEvents is the durable stream that captures delivery milestones.
	StreamLeakEvents = "LEAK_EVENTS"
	// SubjectLeaks is the wildcard subject hierarchy for leak events.
	SubjectLeaks = "leaks.>"
)

// ProvisionStreams idempotently creates the required JetStream streams.
func (c *Client) ProvisionStreams() error {
	_, err := c.JS.StreamInfo(StreamLeakEvents)
	if err == nil {
		c.Log.Info("NATS stream exists", zap.String("stream", StreamLeakEvents))
		return nil
	}

	if err != nats.ErrStreamNotFound {
		return fmt.Errorf("failed to check stream info: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamLeakEvents,
		Subjects:  []string{SubjectLeaks},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
	}

	_, err = c.JS.AddStream(cfg)
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	c.Log.Info("NATS stream provisioned", zap.String("stream", StreamLeakEvents))
	return nil
}
