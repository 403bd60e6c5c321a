package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kristi-balla/leakchef/internal/crypto"
)

var (
	// ErrUnknownIdentifier rejects a supported_identifiers value outside
	// the EMAIL/PHONE vocabulary.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrCrypto aborts a delivery when hashing an identifier fails.
	ErrCrypto = errors.New("applying salt failed")
)

// Identifier is a kind of personal identifier a customer can receive.
type Identifier string

const (
	IdentifierEmail Identifier = "EMAIL"
	IdentifierPhone Identifier = "PHONE"
)

// ParseIdentifiers parses the comma separated supported_identifiers
// query parameter. Only the exact spellings EMAIL and PHONE are
// accepted; anything else fails the whole parse.
func ParseIdentifiers(raw string) ([]Identifier, error) {
	parts := strings.Split(raw, ",")
	out := make([]Identifier, 0, len(parts))
	for _, part := range parts {
		switch Identifier(part) {
		case IdentifierEmail:
			out = append(out, IdentifierEmail)
		case IdentifierPhone:
			out = append(out, IdentifierPhone)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownIdentifier, part)
		}
	}
	return out, nil
}

// SaltIdentities hashes the enabled identifier kinds of every partial
// identity under the customer's salt and flattens the results into wire
// form. Identifier kinds the customer did not ask for are dropped;
// domains and passwords pass through unchanged.
func SaltIdentities(identities []PartialIdentity, supported []Identifier, salt string) ([]MappedIdentity, error) {
	saltBytes := []byte(salt)

	out := make([]MappedIdentity, 0, len(identities))
	for _, identity := range identities {
		salted := PartialIdentity{
			ObjectID:  identity.ObjectID,
			Domains:   identity.Domains,
			Passwords: identity.Passwords,
		}

		if slices.Contains(supported, IdentifierEmail) {
			emails, err := saltValues(identity.Emails, saltBytes)
			if err != nil {
				return nil, err
			}
			salted.Emails = emails
		}

		if slices.Contains(supported, IdentifierPhone) {
			phones, err := saltValues(identity.Phones, saltBytes)
			if err != nil {
				return nil, err
			}
			salted.Phones = phones
		}

		out = append(out, salted.Flatten())
	}
	return out, nil
}

func saltValues(values []string, salt []byte) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, value := range values {
		hashed, err := crypto.ApplySalt(value, salt)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
		}
		out = append(out, hashed)
	}
	return out, nil
}
