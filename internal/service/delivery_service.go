// Package service implements the delivery logic for paged leak
// distribution: picking the next unhandled leak for a customer, paging
// its identities through cached database cursors, salting identifiers
// per customer, and bookkeeping the per-leak progress rows.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/cache"
	"github.com/kristi-balla/leakchef/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// LeakRequest carries the parameters of one page request.
type LeakRequest struct {
	SupportedIdentifiers []Identifier
	Filter               string
	Limit                int64
}

// ResultRequest is the reported outcome for one handled leak.
type ResultRequest struct {
	LeakID             string
	ReceivedIdentities int64
	NumberOfMatches    int64
}

// DeliveryService pages customers through leak datasets.
type DeliveryService interface {
	// GetNewest picks some finished leak the customer has not handled
	// yet, commits it to the customer's handled list and returns its
	// first batch. An empty leak id means nothing is available.
	GetNewest(ctx context.Context, customerID int32, req LeakRequest) (string, []MappedIdentity, error)

	// GetSpecific returns the next batch of one particular leak,
	// resuming wherever the previous request stopped. An empty batch
	// means the leak is drained for this customer.
	GetSpecific(ctx context.Context, customerID int32, leakID string, req LeakRequest) ([]MappedIdentity, error)

	// PostResult stores the customer-reported match outcome for a leak.
	PostResult(ctx context.Context, customerID int32, req ResultRequest) error
}

type deliveryService struct {
	store   repository.Store
	cursors *cache.CursorCache
	tracker *ProgressTracker
	salts   *SaltCache
	events  EventPublisher
	logger  *zap.Logger
}

// NewDeliveryService wires together dependencies and returns a
// DeliveryService. salts may be nil; events may be nil to drop
// milestone events.
func NewDeliveryService(store repository.Store, cursors *cache.CursorCache, tracker *ProgressTracker, salts *SaltCache, events EventPublisher, logger *zap.Logger) DeliveryService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &deliveryService{
		store:   store,
		cursors: cursors,
		tracker: tracker,
		salts:   salts,
		events:  events,
		logger:  logger,
	}
}

func (s *deliveryService) GetNewest(ctx context.Context, customerID int32, req LeakRequest) (string, []MappedIdentity, error) {
	md, err := s.store.LatestUnhandledMetadata(ctx, customerID)
	if err != nil {
		return "", nil, err
	}
	if md == nil {
		s.logger.Info("no unhandled leak available", zap.Int32("customer_id", customerID))
		return "", nil, nil
	}

	leakID := md.LeakID
	s.logger.Info("starting delivery of leak",
		zap.Int32("customer_id", customerID),
		zap.String("leak_id", leakID),
		zap.Int64("parsed_identities", md.ParsedIdentities))

	// The pick is committed before the first batch: if that batch
	// fails, the leak stays marked handled and the customer moves on.
	if err := s.store.AppendHandledLeak(ctx, customerID, leakID); err != nil {
		return "", nil, err
	}
	s.events.LeakDeliveryStarted(ctx, customerID, leakID)

	identities, err := s.deliverBatch(ctx, customerID, leakID, req)
	if err != nil {
		return "", nil, err
	}
	return leakID, identities, nil
}

func (s *deliveryService) GetSpecific(ctx context.Context, customerID int32, leakID string, req LeakRequest) ([]MappedIdentity, error) {
	if leakID == "" {
		return nil, fmt.Errorf("%w: leak_id is required", ErrInvalidInput)
	}
	return s.deliverBatch(ctx, customerID, leakID, req)
}

func (s *deliveryService) PostResult(ctx context.Context, customerID int32, req ResultRequest) error {
	if req.LeakID == "" {
		return fmt.Errorf("%w: leak_id is required", ErrInvalidInput)
	}

	if err := s.tracker.RecordResult(ctx, customerID, req.LeakID, req.ReceivedIdentities, req.NumberOfMatches); err != nil {
		return err
	}

	s.logger.Info("result recorded",
		zap.Int32("customer_id", customerID),
		zap.String("leak_id", req.LeakID),
		zap.Int64("received_identities", req.ReceivedIdentities),
		zap.Int64("number_of_matches", req.NumberOfMatches))
	s.events.ResultReported(ctx, customerID, req.LeakID, req.ReceivedIdentities, req.NumberOfMatches)
	return nil
}

// deliverBatch pulls the next raw batch and turns it into wire form.
func (s *deliveryService) deliverBatch(ctx context.Context, customerID int32, leakID string, req LeakRequest) ([]MappedIdentity, error) {
	if req.Filter != "" {
		// Accepted for wire compatibility, not yet pushed into the
		// store query.
		s.logger.Warn("ignoring filter parameter",
			zap.Int32("customer_id", customerID),
			zap.String("filter", req.Filter))
	}

	batch, err := s.pullBatch(ctx, customerID, leakID, req.Limit)
	if err != nil {
		return nil, err
	}

	salt, err := s.customerSalt(ctx, customerID)
	if err != nil {
		return nil, err
	}

	identities, err := SaltIdentities(batch, req.SupportedIdentifiers, salt)
	if err != nil {
		return nil, err
	}

	if len(identities) > 0 {
		s.events.BatchDelivered(ctx, customerID, leakID, len(identities))
	}
	return identities, nil
}

// pullBatch advances the customer's position in the leak by up to limit
// identities, keeping the live cursor parked in the cache between
// requests.
func (s *deliveryService) pullBatch(ctx context.Context, customerID int32, leakID string, limit int64) ([]PartialIdentity, error) {
	if limit <= 0 {
		return nil, nil
	}

	cur, ok := s.cursors.Take(customerID, leakID)
	if !ok {
		// Fresh stream: resume strictly past the last identity this
		// customer already received, so an expired cursor does not
		// replay earlier pages.
		after, err := s.store.GetLastReceivedIdentity(ctx, customerID, leakID)
		if err != nil {
			return nil, err
		}
		cur, err = s.store.OpenIdentityStream(ctx, leakID, after)
		if err != nil {
			return nil, err
		}
	}

	batch, err := cur.NextBatch(ctx, limit)
	if err != nil {
		// The cursor is assumed poisoned; it is not parked again.
		_ = cur.Close(ctx)
		return nil, err
	}

	if len(batch) == 0 {
		_ = cur.Close(ctx)
		if err := s.tracker.MarkDrained(ctx, customerID, leakID); err != nil {
			return nil, err
		}
		s.events.LeakDrained(ctx, customerID, leakID)
		return nil, nil
	}

	s.cursors.Put(customerID, leakID, cur)

	lastID := batch[len(batch)-1].ID
	if err := s.tracker.RecordBatch(ctx, customerID, leakID, &lastID, int64(len(batch))); err != nil {
		return nil, err
	}

	out := make([]PartialIdentity, 0, len(batch))
	for _, row := range batch {
		out = append(out, NewPartialIdentity(row))
	}
	return out, nil
}

// customerSalt reads through the Redis cache to the customers
// collection.
func (s *deliveryService) customerSalt(ctx context.Context, customerID int32) (string, error) {
	if salt, ok := s.salts.Get(ctx, customerID); ok {
		return salt, nil
	}

	salt, err := s.store.GetCustomerSalt(ctx, customerID)
	if err != nil {
		return "", err
	}

	s.salts.Set(ctx, customerID, salt)
	return salt, nil
}
