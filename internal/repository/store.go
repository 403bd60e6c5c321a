// Package repository is the MongoDB persistence layer for leak metadata,
// identities, customers and per-customer delivery progress. It exposes a
// Store interface so the service layer can be tested against a mock, and
// wraps every driver failure in one of the package sentinel errors.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

const (
	connectRetries = 3
	connectBackoff = 3 * time.Second
)

// Store is the persistence contract consumed by the service layer.
//
//go:generate mockgen -source=store.go -destination=mock/store.go -package=mock
type Store interface {
	// OpenIdentityStream opens a forward-only stream over the deliverable
	// identities of one leak: rows with a non-empty password and at least
	// one email or phone. When after is set the stream starts strictly
	// past that object id, which is how delivery resumes after the cached
	// cursor for a customer has expired.
	OpenIdentityStream(ctx context.Context, leakID string, after *primitive.ObjectID) (IdentityCursor, error)

	// LatestUnhandledMetadata returns the first finished leak not yet in
	// the customer's handled_leaks, or nil when every finished leak has
	// been handled. The ordering is whatever the database yields; callers
	// must not rely on a particular choice when several candidates exist.
	LatestUnhandledMetadata(ctx context.Context, customerID int32) (*Metadata, error)

	// GetMetadata returns the metadata row for one leak. Fails with
	// ErrEmptyResult when the leak is unknown.
	GetMetadata(ctx context.Context, leakID string) (*Metadata, error)

	// CustomerIDFromToken resolves an api key to its customer id. Fails
	// with ErrEmptyResult when no customer carries the key.
	CustomerIDFromToken(ctx context.Context, apiKey string) (int32, error)

	// GetCustomerSalt returns the hashing salt of one customer. Fails
	// with ErrEmptyResult when the customer is absent.
	GetCustomerSalt(ctx context.Context, customerID int32) (string, error)

	// GetHandledLeaks lists the leak ids already delivered to a customer.
	GetHandledLeaks(ctx context.Context, customerID int32) ([]string, error)

	// AppendHandledLeak pushes a leak id onto the customer's
	// handled_leaks array. At-least-once: the same id may appear twice
	// when a delivery is retried, and callers must tolerate that.
	AppendHandledLeak(ctx context.Context, customerID int32, leakID string) error

	// CreateStatus inserts a fresh in-progress status row.
	CreateStatus(ctx context.Context, customerID int32, leakID string, identitiesLeft int64) error

	// UpdateStatus upserts the progress row for (customer, leak) with the
	// new identities_left value and status. lastSent, when non-nil, is
	// recorded as last_received_identity. A row created by the upsert is
	// initialized with the key fields.
	UpdateStatus(ctx context.Context, customerID int32, leakID string, lastSent *primitive.ObjectID, identitiesLeft int64, status LeakStatus) error

	// SetLeakDone marks the progress row finished. No upsert: a missing
	// row stays missing.
	SetLeakDone(ctx context.Context, customerID int32, leakID string) error

	// UpdateResult stores the customer-reported match outcome and marks
	// the progress row finished.
	UpdateResult(ctx context.Context, customerID int32, leakID string, receivedIdentities, numberOfMatches int64) error

	// GetIdentitiesLeft returns the remaining identity count for
	// (customer, leak), falling back to the leak's parsed_identities
	// total when no progress row exists yet.
	GetIdentitiesLeft(ctx context.Context, customerID int32, leakID string) (int64, error)

	// GetLastReceivedIdentity returns the object id of the last identity
	// delivered to the customer for this leak, or nil when no progress
	// row exists or nothing has been delivered.
	GetLastReceivedIdentity(ctx context.Context, customerID int32, leakID string) (*primitive.ObjectID, error)

	// CountMetadataByStatus aggregates the metadata collection into
	// status buckets, for periodic operational stats.
	CountMetadataByStatus(ctx context.Context) (map[LeakStatus]int64, error)

	// InsertMetadata writes one metadata row. Used by the generator.
	InsertMetadata(ctx context.Context, md Metadata) error

	// InsertIdentities bulk-writes identity rows and reports how many
	// were inserted. Used by the generator.
	InsertIdentities(ctx context.Context, ids []Identity) (int64, error)

	// UpsertCustomer replaces the customer row keyed by customer_id,
	// creating it when absent. Used by the generator.
	UpsertCustomer(ctx context.Context, c Customer) error

	// ClearStatus removes every progress row. Test helper.
	ClearStatus(ctx context.Context) error

	// DeleteStatusForCustomer removes all progress rows of one customer.
	// Test helper.
	DeleteStatusForCustomer(ctx context.Context, customerID int32) error

	// ClearCustomerHandledLeaks empties the handled_leaks array of the
	// customer carrying the given api key. Test helper.
	ClearCustomerHandledLeaks(ctx context.Context, apiKey string) error

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Disconnect closes the underlying client and all open cursors.
	Disconnect(ctx context.Context) error
}

type mongoStore struct {
	client     *mongo.Client
	metadata   *mongo.Collection
	identities *mongo.Collection
	customers  *mongo.Collection
	status     *mongo.Collection
	logger     *zap.Logger
}

// Connect dials MongoDB and returns a ready Store. Transient failures are
// retried up to three times with a fixed three second backoff before the
// error surfaces as ErrConnection.
func Connect(ctx context.Context, logger *zap.Logger, uri, dbName string) (Store, error) {
	var (
		client *mongo.Client
		err    error
	)

	for attempt := 0; ; attempt++ {
		client, err = connectOnce(ctx, uri)
		if err == nil {
			break
		}
		if attempt >= connectRetries {
			logger.Error("giving up on mongo connection",
				zap.Int("retries", connectRetries),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}

		logger.Info("mongo connection failed, retrying",
			zap.Duration("backoff", connectBackoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrConnection, ctx.Err())
		case <-time.After(connectBackoff):
		}
	}

	db := client.Database(dbName)

	return &mongoStore{
		client:     client,
		metadata:   db.Collection("metadata"),
		identities: db.Collection("identities"),
		customers:  db.Collection("customers"),
		status:     db.Collection("status"),
		logger:     logger,
	}, nil
}

func connectOnce(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// ── Filters ───────────────────────────────────────────────────────────────

// nonEmptyArray matches documents where the field exists and holds at
// least one element.
func nonEmptyArray() bson.D {
	return bson.D{
		{Key: "$exists", Value: true},
		{Key: "$ne", Value: bson.A{}},
	}
}

// identityFilter selects the deliverable identities of one leak, optionally
// restricted to object ids strictly greater than after.
func identityFilter(leakID string, after *primitive.ObjectID) bson.D {
	filter := bson.D{
		{Key: "leak_id", Value: leakID},
		{Key: "password", Value: nonEmptyArray()},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "email", Value: nonEmptyArray()}},
			bson.D{{Key: "phone", Value: nonEmptyArray()}},
		}},
	}
	if after != nil {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$gt", Value: *after}}})
	}
	return filter
}

// statusFilter keys the progress collection by (customer, leak).
func statusFilter(customerID int32, leakID string) bson.M {
	return bson.M{
		"customer_id":     customerID,
		"current_leak_id": leakID,
	}
}

// ── Identities ────────────────────────────────────────────────────────────

func (s *mongoStore) OpenIdentityStream(ctx context.Context, leakID string, after *primitive.ObjectID) (IdentityCursor, error) {
	filter := identityFilter(leakID, after)

	s.logger.Debug("opening identity stream",
		zap.String("leak_id", leakID),
		zap.Bool("resumed", after != nil))

	cur, err := s.identities.Find(ctx, filter)
	if err != nil {
		s.logger.Error("finding identities failed", zap.String("leak_id", leakID), zap.Error(err))
		return nil, fmt.Errorf("%w: finding identities: %v", ErrConnection, err)
	}

	return newIdentityCursor(cur), nil
}

func (s *mongoStore) InsertIdentities(ctx context.Context, ids []Identity) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(ids))
	for i := range ids {
		docs[i] = ids[i]
	}

	res, err := s.identities.InsertMany(ctx, docs)
	if err != nil {
		s.logger.Error("inserting identities failed", zap.Error(err))
		return 0, fmt.Errorf("%w: inserting identities: %v", ErrInsertFailed, err)
	}
	return int64(len(res.InsertedIDs)), nil
}

// ── Metadata ──────────────────────────────────────────────────────────────

func (s *mongoStore) LatestUnhandledMetadata(ctx context.Context, customerID int32) (*Metadata, error) {
	handled, err := s.GetHandledLeaks(ctx, customerID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"status":  LeakStatusFinished,
		"leak_id": bson.M{"$nin": handled},
	}

	var md Metadata
	err = s.metadata.FindOne(ctx, filter).Decode(&md)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("finding unhandled metadata failed",
			zap.Int32("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: finding unhandled metadata: %v", ErrConnection, err)
	}
	return &md, nil
}

func (s *mongoStore) GetMetadata(ctx context.Context, leakID string) (*Metadata, error) {
	var md Metadata
	err := s.metadata.FindOne(ctx, bson.M{"leak_id": leakID}).Decode(&md)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: metadata for leak %s", ErrEmptyResult, leakID)
	}
	if err != nil {
		s.logger.Error("finding metadata failed", zap.String("leak_id", leakID), zap.Error(err))
		return nil, fmt.Errorf("%w: finding metadata: %v", ErrConnection, err)
	}
	return &md, nil
}

func (s *mongoStore) InsertMetadata(ctx context.Context, md Metadata) error {
	if _, err := s.metadata.InsertOne(ctx, md); err != nil {
		s.logger.Error("inserting metadata failed", zap.String("leak_id", md.LeakID), zap.Error(err))
		return fmt.Errorf("%w: inserting metadata: %v", ErrInsertFailed, err)
	}
	return nil
}

func (s *mongoStore) CountMetadataByStatus(ctx context.Context) (map[LeakStatus]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := s.metadata.Aggregate(ctx, pipeline)
	if err != nil {
		s.logger.Error("aggregating metadata counts failed", zap.Error(err))
		return nil, fmt.Errorf("%w: aggregating metadata: %v", ErrConnection, err)
	}

	var rows []struct {
		Status LeakStatus `bson:"_id"`
		Count  int64      `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%w: collecting metadata counts: %v", ErrCollectFailed, err)
	}

	counts := make(map[LeakStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ── Customers ─────────────────────────────────────────────────────────────

func (s *mongoStore) CustomerIDFromToken(ctx context.Context, apiKey string) (int32, error) {
	var c Customer
	err := s.customers.FindOne(ctx, bson.M{"api_key": apiKey}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("%w: no customer for api key", ErrEmptyResult)
	}
	if err != nil {
		s.logger.Error("finding customer by api key failed", zap.Error(err))
		return 0, fmt.Errorf("%w: finding customer: %v", ErrConnection, err)
	}
	return c.CustomerID, nil
}

func (s *mongoStore) GetCustomerSalt(ctx context.Context, customerID int32) (string, error) {
	var c Customer
	err := s.customers.FindOne(ctx, bson.M{"customer_id": customerID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("%w: no salt for customer %d", ErrEmptyResult, customerID)
	}
	if err != nil {
		s.logger.Error("finding customer salt failed",
			zap.Int32("customer_id", customerID),
			zap.Error(err))
		return "", fmt.Errorf("%w: finding customer salt: %v", ErrConnection, err)
	}
	return c.CustomerSalt, nil
}

func (s *mongoStore) GetHandledLeaks(ctx context.Context, customerID int32) ([]string, error) {
	var c Customer
	err := s.customers.FindOne(ctx, bson.M{"customer_id": customerID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
	}
	if err != nil {
		s.logger.Error("finding handled leaks failed",
			zap.Int32("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: finding handled leaks: %v", ErrConnection, err)
	}
	return c.HandledLeaks, nil
}

func (s *mongoStore) AppendHandledLeak(ctx context.Context, customerID int32, leakID string) error {
	update := bson.M{"$push": bson.M{"handled_leaks": leakID}}

	if _, err := s.customers.UpdateOne(ctx, bson.M{"customer_id": customerID}, update); err != nil {
		s.logger.Error("appending handled leak failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return fmt.Errorf("%w: appending handled leak: %v", ErrUpdateFailed, err)
	}
	return nil
}

func (s *mongoStore) UpsertCustomer(ctx context.Context, c Customer) error {
	opts := options.Replace().SetUpsert(true)

	if _, err := s.customers.ReplaceOne(ctx, bson.M{"customer_id": c.CustomerID}, c, opts); err != nil {
		s.logger.Error("upserting customer failed",
			zap.Int32("customer_id", c.CustomerID),
			zap.Error(err))
		return fmt.Errorf("%w: upserting customer: %v", ErrUpdateFailed, err)
	}
	return nil
}

func (s *mongoStore) ClearCustomerHandledLeaks(ctx context.Context, apiKey string) error {
	update := bson.M{"$set": bson.M{"handled_leaks": bson.A{}}}

	if _, err := s.customers.UpdateOne(ctx, bson.M{"api_key": apiKey}, update); err != nil {
		return fmt.Errorf("%w: clearing handled leaks: %v", ErrUpdateFailed, err)
	}
	return nil
}

// ── Status ────────────────────────────────────────────────────────────────

func (s *mongoStore) CreateStatus(ctx context.Context, customerID int32, leakID string, identitiesLeft int64) error {
	row := Status{
		CustomerID:     customerID,
		CurrentLeakID:  leakID,
		IdentitiesLeft: identitiesLeft,
		LeakStatus:     LeakStatusInProgress,
	}

	if _, err := s.status.InsertOne(ctx, row); err != nil {
		s.logger.Error("inserting status failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return fmt.Errorf("%w: inserting status: %v", ErrInsertFailed, err)
	}
	return nil
}

func (s *mongoStore) UpdateStatus(ctx context.Context, customerID int32, leakID string, lastSent *primitive.ObjectID, identitiesLeft int64, status LeakStatus) error {
	set := bson.M{
		"identities_left": identitiesLeft,
		"leak_status":     status,
	}
	if lastSent != nil {
		set["last_received_identity"] = *lastSent
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"customer_id":     customerID,
			"current_leak_id": leakID,
		},
	}
	opts := options.Update().SetUpsert(true)

	res, err := s.status.UpdateOne(ctx, statusFilter(customerID, leakID), update, opts)
	if err != nil {
		s.logger.Error("updating status failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return fmt.Errorf("%w: updating status: %v", ErrUpdateFailed, err)
	}

	s.logger.Debug("status updated",
		zap.Int32("customer_id", customerID),
		zap.String("leak_id", leakID),
		zap.Int64("identities_left", identitiesLeft),
		zap.Int64("upserted", res.UpsertedCount))
	return nil
}

func (s *mongoStore) SetLeakDone(ctx context.Context, customerID int32, leakID string) error {
	update := bson.M{"$set": bson.M{"leak_status": LeakStatusFinished}}

	if _, err := s.status.UpdateOne(ctx, statusFilter(customerID, leakID), update); err != nil {
		s.logger.Error("marking leak done failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return fmt.Errorf("%w: marking leak done: %v", ErrUpdateFailed, err)
	}
	return nil
}

func (s *mongoStore) UpdateResult(ctx context.Context, customerID int32, leakID string, receivedIdentities, numberOfMatches int64) error {
	update := bson.M{"$set": bson.M{
		"leak_result": LeakResult{
			IdentitiesReceived: receivedIdentities,
			FullMatches:        numberOfMatches,
		},
		"leak_status": LeakStatusFinished,
	}}

	if _, err := s.status.UpdateOne(ctx, statusFilter(customerID, leakID), update); err != nil {
		s.logger.Error("updating leak result failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return fmt.Errorf("%w: updating leak result: %v", ErrUpdateFailed, err)
	}
	return nil
}

func (s *mongoStore) GetIdentitiesLeft(ctx context.Context, customerID int32, leakID string) (int64, error) {
	var row Status
	err := s.status.FindOne(ctx, statusFilter(customerID, leakID)).Decode(&row)
	if err == nil {
		return row.IdentitiesLeft, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Error("finding status failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return 0, fmt.Errorf("%w: finding status: %v", ErrConnection, err)
	}

	// No progress row yet: the full leak is still outstanding.
	md, err := s.GetMetadata(ctx, leakID)
	if err != nil {
		return 0, err
	}
	return md.ParsedIdentities, nil
}

func (s *mongoStore) GetLastReceivedIdentity(ctx context.Context, customerID int32, leakID string) (*primitive.ObjectID, error) {
	var row Status
	err := s.status.FindOne(ctx, statusFilter(customerID, leakID)).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("finding last received identity failed",
			zap.Int32("customer_id", customerID),
			zap.String("leak_id", leakID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: finding status: %v", ErrConnection, err)
	}
	return row.LastReceivedIdentity, nil
}

func (s *mongoStore) ClearStatus(ctx context.Context) error {
	if _, err := s.status.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("%w: clearing status: %v", ErrUpdateFailed, err)
	}
	return nil
}

func (s *mongoStore) DeleteStatusForCustomer(ctx context.Context, customerID int32) error {
	if _, err := s.status.DeleteMany(ctx, bson.M{"customer_id": customerID}); err != nil {
		return fmt.Errorf("%w: deleting status for customer: %v", ErrUpdateFailed, err)
	}
	return nil
}

// ── Lifecycle ─────────────────────────────────────────────────────────────

func (s *mongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

func (s *mongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
