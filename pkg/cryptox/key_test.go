package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashKeyRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashKey("super-secret-admin-key")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyKey("super-secret-admin-key", hash))
	require.ErrorIs(t, VerifyKey("wrong-key", hash), ErrKeyMismatch)
}

func TestHashKeyUsesRandomSalt(t *testing.T) {
	t.Parallel()

	a, err := HashKey("same-key")
	require.NoError(t, err)
	b, err := HashKey("same-key")
	require.NoError(t, err)

	require.NotEqual(t, a, b, "two hashes of the same key must differ by salt")
	require.NoError(t, VerifyKey("same-key", a))
	require.NoError(t, VerifyKey("same-key", b))
}

func TestVerifyKeyRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plainhash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifyKey("anything", tc.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrKeyMismatch)
		})
	}
}
