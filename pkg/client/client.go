// Package client is the consumer-side SDK for the leak delivery server.
// It wraps the paging endpoints behind typed calls and knows how to
// count matches between delivered batches and a consumer's own records.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedReply means the server answered with something other than
// a batch, usually because the api key did not resolve to a customer.
var ErrUnexpectedReply = errors.New("unexpected reply variant, check that the api key is correct")

// Client talks to one leak delivery server on behalf of one customer.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// New builds a client for the server at ip:port. The api key is sent on
// every request using the server's colon-separated bearer scheme.
func New(apiKey, ip, port string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 5 * time.Minute
	rc.Logger = nil

	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%s", ip, port),
		authHeader: "Bearer:" + apiKey,
		httpClient: rc.StandardClient(),
	}
}

// Hello probes the server and returns whatever greeting it sends back.
func (c *Client) Hello(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, "/hello", nil)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// GetLatestLeak asks the server for a leak this customer has not handled
// yet and returns its id with the first batch. An empty leak id means
// nothing new is available.
func (c *Client) GetLatestLeak(ctx context.Context, filter string, limit int64) (string, []MappedIdentity, error) {
	resp, err := c.get(ctx, "/leak", leakQuery(filter, limit))
	if err != nil {
		return "", nil, err
	}
	if resp.Reply.Normal == nil {
		return "", nil, ErrUnexpectedReply
	}
	return resp.Reply.Normal.LeakID, resp.Reply.Normal.Identities, nil
}

// GetLeak fetches the next batch of the given leak. An empty batch means
// the leak is fully received.
func (c *Client) GetLeak(ctx context.Context, leakID, filter string, limit int64) ([]MappedIdentity, error) {
	resp, err := c.get(ctx, "/leak/"+url.PathEscape(leakID), leakQuery(filter, limit))
	if err != nil {
		return nil, err
	}
	if resp.Reply.Normal == nil {
		return nil, ErrUnexpectedReply
	}
	return resp.Reply.Normal.Identities, nil
}

// SendResult reports how many identities arrived and how many matched.
func (c *Client) SendResult(ctx context.Context, leakID string, numberOfMatches, receivedIdentities uint32) error {
	body, err := json.Marshal(map[string]any{
		"leak_id":             leakID,
		"received_identities": receivedIdentities,
		"number_of_matches":   numberOfMatches,
	})
	if err != nil {
		return fmt.Errorf("leak client: marshal result: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/result", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leak client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

// CountMatches crosses a delivered batch with the consumer's known
// identities. The known map is indexed by the canonical
// HashedCredentials string form; every hit yields the cleartext pair.
func (c *Client) CountMatches(known map[string]PlainPair, received []MappedIdentity) []PlainPair {
	var plains []PlainPair

	for _, identity := range received {
		for _, cred := range identity.Credentials {
			key := HashedCredentials{IDHash: cred.ID, DTEnc: cred.Password}.String()
			if pair, ok := known[key]; ok {
				plains = append(plains, pair)
			}
		}
	}

	return plains
}

func leakQuery(filter string, limit int64) url.Values {
	q := url.Values{}
	q.Set("supported_identifiers", "EMAIL")
	q.Set("filter", filter)
	q.Set("limit", strconv.FormatInt(limit, 10))
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("leak client: build request: %w", err)
	}

	return c.do(req)
}

// do executes the request with the auth header attached and decodes the
// envelope. The envelope is decoded even on non-2xx answers so callers
// see the server's message instead of a bare status code.
func (c *Client) do(req *http.Request) (*Response, error) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leak client: http do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leak client: read body: %w", err)
	}

	var envelope Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("leak client: unexpected status %d: %s", resp.StatusCode, string(raw))
		}
		return nil, fmt.Errorf("leak client: unmarshal response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("leak client: server answered %d: %s", envelope.Code, envelope.Message)
	}
	return &envelope, nil
}
