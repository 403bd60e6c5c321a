package client

import (
	"encoding/json"
	"fmt"
)

// Response is the envelope every server endpoint answers with.
type Response struct {
	Code    uint16 `json:"code"`
	Message string `json:"message"`
	Reply   Reply  `json:"reply"`
}

// NormalReply carries one batch of identities.
type NormalReply struct {
	CustomerID int32            `json:"customer_id"`
	LeakID     string           `json:"leak_id"`
	Identities []MappedIdentity `json:"identities"`
}

// Reply is the union the server puts in the envelope: a batch, a bare
// customer id, or the string "Empty". Exactly one pointer is non-nil
// unless the reply was empty.
type Reply struct {
	Normal     *NormalReply
	CustomerID *int32
}

// Empty reports whether the server sent the "Empty" variant.
func (r Reply) Empty() bool {
	return r.Normal == nil && r.CustomerID == nil
}

func (r *Reply) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Empty" {
			return fmt.Errorf("unknown reply variant %q", s)
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

	r.Normal = variants.Normal
	r.CustomerID = variants.CustomerID
	return nil
}

// MappedIdentity is one delivered identity: the Mongo document id plus
// the salted credential pairs extracted from it.
type MappedIdentity struct {
	ID          string       `json:"_id"`
	Credentials []Credential `json:"credentials,omitempty"`
}

// Credential is one salted identifier with the password it leaked with.
type Credential struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// HashedCredentials is the lookup key a consumer derives from its own
// customer records: the salted identifier next to the password.
type HashedCredentials struct {
	IDHash string `json:"id_hash"`
	DTEnc  string `json:"dt_enc"`
}

// String renders the key in the canonical "<id_hash> <dt_enc>" form the
// known-identities maps are indexed by.
func (h HashedCredentials) String() string {
	return fmt.Sprintf("%s %s", h.IDHash, h.DTEnc)
}

// PlainPair is the cleartext identifier and password a consumer keeps on
// its side of the match.
type PlainPair struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}
