package service

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kristi-balla/leakchef/internal/repository"
)

// PartialIdentity is the slice of a raw identity row that the delivery
// path works on: the identifiers to salt, plus domains and passwords
// which pass through unchanged.
type PartialIdentity struct {
	ObjectID  primitive.ObjectID
	Emails    []string
	Phones    []string
	Domains   []string
	Passwords []string
}

// NewPartialIdentity projects a stored identity row.
func NewPartialIdentity(row repository.Identity) PartialIdentity {
	return PartialIdentity{
		ObjectID:  row.ID,
		Emails:    row.Emails,
		Phones:    row.Phones,
		Domains:   row.Domains,
		Passwords: row.Passwords,
	}
}

// Credential pairs one identifier with one password.
type Credential struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// MappedIdentity is the wire form of one delivered identity. The object
// id lets the customer refer back to the row when reporting matches.
type MappedIdentity struct {
	ObjectID    primitive.ObjectID `json:"_id"`
	Credentials []Credential       `json:"credentials,omitempty"`
}

// Flatten expands the password list against the combined identifier list
// into (identifier, password) pairs. A password of the form
// "prefix:real" is paired with every identifier that does not start
// with the prefix; a plain password is paired with every identifier.
// No identifiers means no credentials.
func (p PartialIdentity) Flatten() MappedIdentity {
	ids := make([]string, 0, len(p.Emails)+len(p.Phones))
	ids = append(ids, p.Emails...)
	ids = append(ids, p.Phones...)

	if len(ids) == 0 {
		return MappedIdentity{ObjectID: p.ObjectID}
	}

	credentials := make([]Credential, 0, len(p.Passwords))
	for _, pw := range p.Passwords {
		prefix, real, prefixed := strings.Cut(pw, ":")
		if !prefixed {
			for _, id := range ids {
				credentials = append(credentials, Credential{ID: id, Password: pw})
			}
			continue
		}
		for _, id := range ids {
			if !strings.HasPrefix(id, prefix) {
				credentials = append(credentials, Credential{ID: id, Password: real})
			}
		}
	}

	return MappedIdentity{ObjectID: p.ObjectID, Credentials: credentials}
}
