package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIdentityFilter(t *testing.T) {
	got := identityFilter("10efd8f2", nil)

	want := bson.D{
		{Key: "leak_id", Value: "10efd8f2"},
		{Key: "password", Value: bson.D{
			{Key: "$exists", Value: true},
			{Key: "$ne", Value: bson.A{}},
		}},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "email", Value: bson.D{
				{Key: "$exists", Value: true},
				{Key: "$ne", Value: bson.A{}},
			}}},
			bson.D{{Key: "phone", Value: bson.D{
				{Key: "$exists", Value: true},
				{Key: "$ne", Value: bson.A{}},
			}}},
		}},
	}

	assert.Equal(t, want, got)
}

func TestIdentityFilter_Resume(t *testing.T) {
	after := primitive.NewObjectID()

	got := identityFilter("10efd8f2", &after)

	require.Len(t, got, 4)
	assert.Equal(t, bson.E{Key: "_id", Value: bson.D{{Key: "$gt", Value: after}}}, got[3])
}

func TestStatusFilter(t *testing.T) {
	got := statusFilter(2341, "10efd8f2")

	assert.Equal(t, bson.M{
		"customer_id":     int32(2341),
		"current_leak_id": "10efd8f2",
	}, got)
}
