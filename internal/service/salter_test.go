package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kristi-balla/leakchef/internal/service"
)

func TestParseIdentifiers_EmailAndPhone(t *testing.T) {
	got, err := service.ParseIdentifiers("EMAIL,PHONE")

	require.NoError(t, err)
	assert.Equal(t, []service.Identifier{service.IdentifierEmail, service.IdentifierPhone}, got)
}

func TestParseIdentifiers_SingleKind(t *testing.T) {
	got, err := service.ParseIdentifiers("PHONE")

	require.NoError(t, err)
	assert.Equal(t, []service.Identifier{service.IdentifierPhone}, got)
}

func TestParseIdentifiers_UnknownKindFailsWholeParse(t *testing.T) {
	_, err := service.ParseIdentifiers("EMAIL,PASSPORT")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUnknownIdentifier))
}

func TestParseIdentifiers_SpellingIsStrict(t *testing.T) {
	for _, raw := range []string{"email", "Email", " EMAIL", "EMAIL "} {
		_, err := service.ParseIdentifiers(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestParseIdentifiers_EmptyInput(t *testing.T) {
	_, err := service.ParseIdentifiers("")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUnknownIdentifier))
}

func TestSaltIdentities_SaltsOnlyRequestedKinds(t *testing.T) {
	rowID := primitive.NewObjectID()
	identities := []service.PartialIdentity{{
		ObjectID:  rowID,
		Emails:    []string{"ida.winter@hotmail.com"},
		Phones:    []string{"+491701234567"},
		Passwords: []string{"hunter2"},
	}}

	out, err := service.SaltIdentities(identities, []service.Identifier{service.IdentifierEmail}, testSalt)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, rowID, out[0].ObjectID)

	// One credential: the salted email. The phone was not requested and
	// is gone entirely, hashed or not.
	require.Len(t, out[0].Credentials, 1)
	assert.Equal(t, mustSalt(t, "ida.winter@hotmail.com"), out[0].Credentials[0].ID)
	assert.Equal(t, "hunter2", out[0].Credentials[0].Password)
}

func TestSaltIdentities_PhonesWhenRequested(t *testing.T) {
	identities := []service.PartialIdentity{{
		ObjectID:  primitive.NewObjectID(),
		Phones:    []string{"+491701234567"},
		Passwords: []string{"pw"},
	}}

	out, err := service.SaltIdentities(identities, []service.Identifier{service.IdentifierPhone}, testSalt)

	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Credentials, 1)
	assert.Equal(t, mustSalt(t, "+491701234567"), out[0].Credentials[0].ID)
}

func TestSaltIdentities_IdentityWithoutRequestedKinds(t *testing.T) {
	identities := []service.PartialIdentity{{
		ObjectID:  primitive.NewObjectID(),
		Phones:    []string{"+491701234567"},
		Passwords: []string{"pw"},
	}}

	out, err := service.SaltIdentities(identities, []service.Identifier{service.IdentifierEmail}, testSalt)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Credentials)
}

func TestSaltIdentities_CryptoFailureAbortsBatch(t *testing.T) {
	identities := []service.PartialIdentity{{
		ObjectID:  primitive.NewObjectID(),
		Emails:    []string{"ben.sommer@hotmail.com"},
		Passwords: []string{"pw"},
	}}

	// Salts longer than the BLAKE2b key bound cannot be applied.
	_, err := service.SaltIdentities(identities, []service.Identifier{service.IdentifierEmail}, strings.Repeat("x", 65))

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrCrypto))
}
