package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func streamOf(t *testing.T, n int) IdentityCursor {
	t.Helper()

	docs := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, Identity{
			ID:        primitive.NewObjectID(),
			LeakID:    "10efd8f2",
			Emails:    []string{fmt.Sprintf("user%d@example.com", i)},
			Passwords: []string{"hunter2"},
		})
	}

	cur, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)

	return newIdentityCursor(cur)
}

func TestNextBatch_ChunksUntilExhausted(t *testing.T) {
	stream := streamOf(t, 5)

	first, err := stream.NextBatch(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := stream.NextBatch(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	// Exhausted: every further read yields an empty batch.
	third, err := stream.NextBatch(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestNextBatch_NonPositiveLimitDoesNotAdvance(t *testing.T) {
	stream := streamOf(t, 2)

	batch, err := stream.NextBatch(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, batch)

	batch, err = stream.NextBatch(context.Background(), -7)
	require.NoError(t, err)
	assert.Empty(t, batch)

	all, err := stream.NextBatch(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNextBatch_PreservesDocumentOrder(t *testing.T) {
	docs := make([]interface{}, 0, 4)
	ids := make([]primitive.ObjectID, 0, 4)
	for i := 0; i < 4; i++ {
		id := primitive.NewObjectID()
		ids = append(ids, id)
		docs = append(docs, Identity{ID: id, LeakID: "10efd8f2", Passwords: []string{"pw"}})
	}

	cur, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)
	stream := newIdentityCursor(cur)

	first, err := stream.NextBatch(context.Background(), 2)
	require.NoError(t, err)
	second, err := stream.NextBatch(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.Equal(t, ids[0], first[0].ID)
	assert.Equal(t, ids[1], first[1].ID)
	assert.Equal(t, ids[2], second[0].ID)
	assert.Equal(t, ids[3], second[1].ID)
}
