package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Preallocation cap for batch slices; limit is caller-supplied.
const maxBatchPrealloc = 4096

// IdentityCursor is a forward-only stream of identity rows for one leak.
// Implementations are not safe for concurrent use; the cursor cache hands
// each cursor to at most one caller at a time.
//
//go:generate mockgen -source=cursor.go -destination=mock/cursor.go -package=mock
type IdentityCursor interface {
	// NextBatch reads up to limit identities from the stream. An empty
	// result signals that the stream is exhausted. A limit <= 0 reads
	// nothing and does not advance the stream.
	NextBatch(ctx context.Context, limit int64) ([]Identity, error)

	// Close releases the underlying database cursor.
	Close(ctx context.Context) error
}

type identityCursor struct {
	cur *mongo.Cursor
}

func newIdentityCursor(cur *mongo.Cursor) IdentityCursor {
	return &identityCursor{cur: cur}
}

func (c *identityCursor) NextBatch(ctx context.Context, limit int64) ([]Identity, error) {
	if limit <= 0 {
		return nil, nil
	}

	prealloc := limit
	if prealloc > maxBatchPrealloc {
		prealloc = maxBatchPrealloc
	}

	batch := make([]Identity, 0, prealloc)
	for int64(len(batch)) < limit {
		if !c.cur.Next(ctx) {
			if err := c.cur.Err(); err != nil {
				return nil, fmt.Errorf("%w: reading identity stream: %v", ErrCollectFailed, err)
			}
			break
		}

		var row Identity
		if err := c.cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%w: decoding identity: %v", ErrCollectFailed, err)
		}
		batch = append(batch, row)
	}

	return batch, nil
}

func (c *identityCursor) Close(ctx context.Context) error {
	return c.cur.Close(ctx)
}
