package crypto

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	key := make([]byte, KeyLen)
	_, err := rand.Read(key)
	require.NoError(t, err)

	s, err := NewSealer(key)
	require.NoError(t, err)
	return s
}

func TestNewSealer_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{name: "nil key", key: nil},
		{name: "short key", key: make([]byte, 16)},
		{name: "long key", key: make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSealer(tt.key)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), "encryption key must be 32 bytes")
		})
	}
}

func TestSealer_SealOpen(t *testing.T) {
	s := newTestSealer(t)

	sealed, err := s.Seal("user.access_token", "eyJhbGciOi.payload.sig")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "payload")

	opened, err := s.Open("user.access_token", sealed)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi.payload.sig", opened)
}

func TestSealer_SealIsRandomized(t *testing.T) {
	s := newTestSealer(t)

	a, err := s.Seal("k", "same value")
	require.NoError(t, err)
	b, err := s.Seal("k", "same value")
	require.NoError(t, err)

	// Разные nonce дают разный шифротекст
	assert.NotEqual(t, a, b)
}

func TestSealer_OpenUnderOtherKeyFails(t *testing.T) {
	s := newTestSealer(t)

	sealed, err := s.Seal("user.access_token", "token")
	require.NoError(t, err)

	_, err = s.Open("admin.access_token", sealed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestSealer_OpenCorrupted(t *testing.T) {
	s := newTestSealer(t)

	tests := []struct {
		name   string
		sealed string
		errMsg string
	}{
		{name: "not base64", sealed: "%%%", errMsg: "failed to decode base64"},
		{name: "too short", sealed: "AAAA", errMsg: "encrypted data too short"},
		{name: "garbage", sealed: strings.Repeat("A", 64), errMsg: "failed to decrypt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open("k", tt.sealed)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPassphraseSealer_SameSaltSameKey(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)

	a, err := NewPassphraseSealer("correct horse", salt)
	require.NoError(t, err)
	b, err := NewPassphraseSealer("correct horse", salt)
	require.NoError(t, err)

	sealed, err := a.Seal("k", "v")
	require.NoError(t, err)
	opened, err := b.Open("k", sealed)
	require.NoError(t, err)
	assert.Equal(t, "v", opened)

	c, err := NewPassphraseSealer("wrong horse", salt)
	require.NoError(t, err)
	_, err = c.Open("k", sealed)
	assert.Error(t, err)
}

func TestDeriveKey_Validation(t *testing.T) {
	_, err := DeriveKey("", make([]byte, SaltSize))
	assert.EqualError(t, err, "passphrase cannot be empty")

	_, err = DeriveKey("pass", make([]byte, 4))
	assert.EqualError(t, err, "salt must be 16 bytes, got 4")

	key, err := DeriveKey("pass", make([]byte, SaltSize))
	require.NoError(t, err)
	assert.Len(t, key, KeyLen)
}
