package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristi-balla/leakchef/pkg/client"
)

const (
	testAPIKey = "0ca40a77-37b8-4786-bcd3-a4cddb1269b6"
	testLeakID = "10efd8f2-7d67-4acd-805c-777f1d51d663"
)

// newTestClient points a client at the given handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return client.New(testAPIKey, u.Hostname(), u.Port())
}

func TestClient_SendsColonSeparatedBearer(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"hi","reply":"Empty"}`))
	})

	_, err := c.Hello(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer:"+testAPIKey, gotAuth)
}

func TestClient_Hello(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"Chuck Norris can divide by zero.","reply":"Empty"}`))
	})

	msg, err := c.Hello(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Chuck Norris can divide by zero.", msg)
}

func TestClient_GetLatestLeak(t *testing.T) {
	const filter = "FOM7YjPDhpwkquBaV7gIqE+K3KDYrmk6TPrBeVKpNLA="

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leak", r.URL.Path)
		assert.Equal(t, "EMAIL", r.URL.Query().Get("supported_identifiers"))
		assert.Equal(t, filter, r.URL.Query().Get("filter"))
		assert.Equal(t, "100000", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": 200,
			"message": "",
			"reply": {"NormalReply": {
				"customer_id": 1,
				"leak_id": "` + testLeakID + `",
				"identities": [
					{"_id": "65b0a5f3e4b0c8d9e0f1a2b3", "credentials": [{"id": "c2FsdGVk", "password": "hunter2"}]}
				]
			}}
		}`))
	})

	leakID, identities, err := c.GetLatestLeak(context.Background(), filter, 100000)
	require.NoError(t, err)
	assert.Equal(t, testLeakID, leakID)
	require.Len(t, identities, 1)
	assert.Equal(t, "65b0a5f3e4b0c8d9e0f1a2b3", identities[0].ID)
	assert.Equal(t, "hunter2", identities[0].Credentials[0].Password)
}

func TestClient_GetLatestLeak_EmptyReplyIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"","reply":"Empty"}`))
	})

	_, _, err := c.GetLatestLeak(context.Background(), "", 10)
	assert.ErrorIs(t, err, client.ErrUnexpectedReply)
}

func TestClient_GetLeak(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leak/"+testLeakID, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": 200,
			"message": "All identities for this leak have been received",
			"reply": {"NormalReply": {"customer_id": 1, "leak_id": "` + testLeakID + `", "identities": []}}
		}`))
	})

	identities, err := c.GetLeak(context.Background(), testLeakID, "", 100000)
	require.NoError(t, err)
	assert.Empty(t, identities)
}

func TestClient_SendResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/result", r.URL.Path)

		var body struct {
			LeakID             string `json:"leak_id"`
			ReceivedIdentities uint32 `json:"received_identities"`
			NumberOfMatches    uint32 `json:"number_of_matches"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, testLeakID, body.LeakID)
		assert.Equal(t, uint32(500000), body.ReceivedIdentities)
		assert.Equal(t, uint32(1337), body.NumberOfMatches)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"message":"Everything is fine","reply":"Empty"}`))
	})

	err := c.SendResult(context.Background(), testLeakID, 1337, 500000)
	require.NoError(t, err)
}

func TestClient_AuthRejectionSurfacesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"message":"missing authorization header","reply":"Empty"}`))
	})

	_, err := c.Hello(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server answered 400")
	assert.Contains(t, err.Error(), "missing authorization header")
}

func TestCountMatches(t *testing.T) {
	known := map[string]client.PlainPair{
		client.HashedCredentials{IDHash: "saltedA", DTEnc: "pw1"}.String(): {
			Identifier: "alice@example.com", Password: "pw1",
		},
		client.HashedCredentials{IDHash: "saltedB", DTEnc: "pw2"}.String(): {
			Identifier: "bob@example.com", Password: "pw2",
		},
	}

	received := []client.MappedIdentity{
		{ID: "1", Credentials: []client.Credential{
			{ID: "saltedA", Password: "pw1"},
			{ID: "saltedA", Password: "wrong"},
		}},
		{ID: "2", Credentials: []client.Credential{
			{ID: "unknown", Password: "pw2"},
		}},
	}

	matches := (&client.Client{}).CountMatches(known, received)
	require.Len(t, matches, 1)
	assert.Equal(t, "alice@example.com", matches[0].Identifier)
}
