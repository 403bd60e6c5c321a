package repository

import "errors"

// Sentinel errors for the storage layer. Callers match these with
// errors.Is; the concrete mongo error stays attached via %w wrapping
// so logs keep the driver detail.
var (
	// ErrConnection covers failures to reach or query the database.
	ErrConnection = errors.New("database connection failed")

	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")

	// ErrInsertFailed is returned when a write of new documents fails.
	ErrInsertFailed = errors.New("insert failed")

	// ErrUpdateFailed is returned when an update or upsert fails.
	ErrUpdateFailed = errors.New("update failed")

	// ErrCollectFailed is returned when draining a cursor fails mid-stream.
	ErrCollectFailed = errors.New("collecting documents failed")

	// ErrEmptyResult is returned when a query succeeds but yields no
	// usable value, e.g. a customer without a salt on file.
	ErrEmptyResult = errors.New("empty result")
)
