package crypto_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristi-balla/leakchef/internal/crypto"
)

func TestApplySalt_Deterministic(t *testing.T) {
	a, err := crypto.ApplySalt("john.doe@hotmail.com", []byte("i55B613"))
	require.NoError(t, err)
	b, err := crypto.ApplySalt("john.doe@hotmail.com", []byte("i55B613"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestApplySalt_SaltSeparatesCustomers(t *testing.T) {
	a, err := crypto.ApplySalt("john.doe@hotmail.com", []byte("i55B613"))
	require.NoError(t, err)
	b, err := crypto.ApplySalt("john.doe@hotmail.com", []byte("ZZhUc2b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestApplySalt_ValueSeparatesIdentifiers(t *testing.T) {
	a, err := crypto.ApplySalt("john.doe@hotmail.com", []byte("i55B613"))
	require.NoError(t, err)
	b, err := crypto.ApplySalt("jane.doe@hotmail.com", []byte("i55B613"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestApplySalt_OutputIs256BitBase64(t *testing.T) {
	out, err := crypto.ApplySalt("+491701234567", []byte("i55B613"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestApplySalt_OversizedSalt(t *testing.T) {
	_, err := crypto.ApplySalt("john.doe@hotmail.com", []byte(strings.Repeat("x", 65)))
	require.Error(t, err)
}

func TestApplySalt_EmptySalt(t *testing.T) {
	_, err := crypto.ApplySalt("john.doe@hotmail.com", nil)
	require.Error(t, err)
}
