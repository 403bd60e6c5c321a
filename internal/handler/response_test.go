package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kristi-balla/leakchef/internal/handler"
	"github.com/kristi-balla/leakchef/internal/service"
)

func TestResponse_MarshalNormalReply(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65b0a5f3e4b0c8d9e0f1a2b3")
	require.NoError(t, err)

	resp := handler.NewIdentitiesResponse(http.StatusOK, "Everything is fine", handler.NormalReply{
		CustomerID: 2341,
		LeakID:     testLeakID,
		Identities: []service.MappedIdentity{{
			ObjectID:    oid,
			Credentials: []service.Credential{{ID: "c2FsdGVk", Password: "hunter2"}},
		}},
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": 200,
		"message": "Everything is fine",
		"reply": {
			"NormalReply": {
				"customer_id": 2341,
				"leak_id": "`+testLeakID+`",
				"identities": [
					{"_id": "65b0a5f3e4b0c8d9e0f1a2b3", "credentials": [{"id": "c2FsdGVk", "password": "hunter2"}]}
				]
			}
		}
	}`, string(data))
}

func TestResponse_MarshalEmptyReply(t *testing.T) {
	data, err := json.Marshal(handler.NewEmptyResponse(http.StatusInternalServerError, "boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code": 500, "message": "boom", "reply": "Empty"}`, string(data))
}

func TestResponse_MarshalCustomerIDReply(t *testing.T) {
	data, err := json.Marshal(handler.NewCustomerIDResponse(http.StatusOK, "", 17))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code": 200, "message": "", "reply": {"CustomerId": 17}}`, string(data))
}

func TestResponse_NilIdentitiesBecomeEmptyArray(t *testing.T) {
	resp := handler.NewIdentitiesResponse(http.StatusOK, "", handler.NormalReply{
		CustomerID: 1,
		LeakID:     testLeakID,
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"identities":[]`)
}

func TestReply_UnmarshalVariants(t *testing.T) {
	var empty handler.Reply
	require.NoError(t, json.Unmarshal([]byte(`"Empty"`), &empty))
	assert.True(t, empty.Empty())

	var normal handler.Reply
	require.NoError(t, json.Unmarshal(
		[]byte(`{"NormalReply":{"customer_id":5,"leak_id":"`+testLeakID+`","identities":[]}}`), &normal))
	require.NotNil(t, normal.Normal)
	assert.Equal(t, int32(5), normal.Normal.CustomerID)
	assert.Equal(t, testLeakID, normal.Normal.LeakID)

	var customer handler.Reply
	require.NoError(t, json.Unmarshal([]byte(`{"CustomerId":99}`), &customer))
	require.NotNil(t, customer.CustomerID)
	assert.Equal(t, int32(99), *customer.CustomerID)
}

func TestReply_UnmarshalRejectsUnknownTag(t *testing.T) {
	var r handler.Reply
	assert.Error(t, json.Unmarshal([]byte(`"Surprise"`), &r))
}
