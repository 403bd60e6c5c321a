// Package handler exposes the HTTP surface of the leak delivery server:
// the paging endpoints, the result endpoint, the hello endpoint and the
// bearer-token middleware guarding all of them. Every reply is wrapped in
// the {code, message, reply} envelope the clients expect.
package handler

import (
	"encoding/json"
	"fmt"

	"github.com/kristi-balla/leakchef/internal/service"
)

// Response is the envelope wrapping every reply. Code mirrors the HTTP
// status so clients reading only the body still see the outcome.
type Response struct {
	Code    uint16 `json:"code"`
	Message string `json:"message"`
	Reply   Reply  `json:"reply"`
}

// NormalReply carries one delivered batch.
type NormalReply struct {
	CustomerID int32                    `json:"customer_id"`
	LeakID     string                   `json:"leak_id"`
	Identities []service.MappedIdentity `json:"identities"`
}

// Reply is a tagged union: exactly one of the variants is set. On the wire
// it serializes as {"NormalReply": {...}}, {"CustomerId": n} or the bare
// string "Empty".
type Reply struct {
	Normal     *NormalReply
	CustomerID *int32
}

const emptyReply = "Empty"

// Empty reports whether no variant is set.
func (r Reply) Empty() bool {
	return r.Normal == nil && r.CustomerID == nil
}

func (r Reply) MarshalJSON() ([]byte, error) {
	switch {
	case r.Normal != nil:
		return json.Marshal(map[string]*NormalReply{"NormalReply": r.Normal})
	case r.CustomerID != nil:
		return json.Marshal(map[string]int32{"CustomerId": *r.CustomerID})
	default:
		return json.Marshal(emptyReply)
	}
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != emptyReply {
			return fmt.Errorf("unknown reply variant %q", tag)
		}
		*r = Reply{}
		return nil
	}

	var variants struct {
		Normal     *NormalReply `json:"NormalReply"`
		CustomerID *int32       `json:"CustomerId"`
	}
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	*r = Reply{Normal: variants.Normal, CustomerID: variants.CustomerID}
	return nil
}

// NewIdentitiesResponse wraps a delivered batch. A nil identity slice is
// normalized to an empty one so the wire always carries an array.
func NewIdentitiesResponse(code uint16, message string, reply NormalReply) Response {
	if reply.Identities == nil {
		reply.Identities = []service.MappedIdentity{}
	}
	return Response{Code: code, Message: message, Reply: Reply{Normal: &reply}}
}

// NewEmptyResponse wraps a message with no payload, for errors and for
// endpoints that only talk.
func NewEmptyResponse(code uint16, message string) Response {
	return Response{Code: code, Message: message}
}

// NewCustomerIDResponse wraps a bare customer id.
func NewCustomerIDResponse(code uint16, message string, customerID int32) Response {
	return Response{Code: code, Message: message, Reply: Reply{CustomerID: &customerID}}
}
