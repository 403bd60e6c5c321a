package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/repository"
)

// ProgressTracker centralizes the per-(customer, leak) progress
// arithmetic: identities_left shrinks by exactly the size of each
// delivered batch and never goes negative.
type ProgressTracker struct {
	store  repository.Store
	logger *zap.Logger
}

func NewProgressTracker(store repository.Store, logger *zap.Logger) *ProgressTracker {
	return &ProgressTracker{store: store, logger: logger}
}

// RecordBatch subtracts a delivered batch from the remaining count and
// upserts the progress row. The first batch of a leak creates the row
// via the upsert, seeded from the leak's parsed_identities total.
func (t *ProgressTracker) RecordBatch(ctx context.Context, customerID int32, leakID string, lastSent *primitive.ObjectID, identitiesRead int64) error {
	left, err := t.store.GetIdentitiesLeft(ctx, customerID, leakID)
	if err != nil {
		return err
	}

	newLeft := left - identitiesRead
	if newLeft < 0 {
		t.logger.Warn("identities_left would go negative, clamping",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Int64("identities_left", left),
			zap.Int64("identities_read", identitiesRead))
		newLeft = 0
	}

	return t.store.UpdateStatus(ctx, customerID, leakID, lastSent, newLeft, repository.LeakStatusInProgress)
}

// MarkDrained finishes the progress row once an empty batch signalled
// the end of the stream.
func (t *ProgressTracker) MarkDrained(ctx context.Context, customerID int32, leakID string) error {
	t.logger.Info("leak drained",
		zap.Int32("customer_id", customerID),
		zap.String("leak_id", leakID))
	return t.store.SetLeakDone(ctx, customerID, leakID)
}

// RecordResult stores the customer-reported outcome and finishes the
// progress row.
func (t *ProgressTracker) RecordResult(ctx context.Context, customerID int32, leakID string, receivedIdentities, numberOfMatches int64) error {
	return t.store.UpdateResult(ctx, customerID, leakID, receivedIdentities, numberOfMatches)
}
