// Package crypto provides the keyed transform applied to identifiers before
// they leave the server. The transform is a BLAKE2b-256 MAC keyed with the
// customer's salt, encoded as standard base64, so the same identifier salted
// for two customers yields unrelated tokens.
package crypto

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ApplySalt computes the keyed digest of value under salt. The salt must be
// between 1 and 64 bytes, the key-size bounds of BLAKE2b. An empty salt is
// rejected rather than silently degrading to an unkeyed hash.
func ApplySalt(value string, salt []byte) (string, error) {
	if len(salt) == 0 {
		return "", fmt.Errorf("keyed hash init: empty salt")
	}
	h, err := blake2b.New256(salt)
	if err != nil {
		return "", fmt.Errorf("keyed hash init: %w", err)
	}
	h.Write([]byte(value))
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
