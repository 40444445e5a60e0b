package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
const NonceSize = 12

// Sealer encrypts stored values with AES-256-GCM. The storage key is passed as
// additional data, so a sealed value only opens under the key it was written to.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer создает Sealer из ключа длиной KeyLen
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeyLen, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// NewPassphraseSealer derives the key from passphrase and salt and returns a Sealer
func NewPassphraseSealer(passphrase string, salt []byte) (*Sealer, error) {
	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	return NewSealer(key)
}

// Seal шифрует value и возвращает base64(nonce + ciphertext + auth_tag)
func (s *Sealer) Seal(key, value string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open дешифрует значение, созданное Seal для того же key
func (s *Sealer) Open(key, sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(raw) < NonceSize {
		return "", fmt.Errorf("encrypted data too short")
	}

	plaintext, err := s.aead.Open(nil, raw[:NonceSize], raw[NonceSize:], []byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: authentication failed or corrupted data: %w", err)
	}

	return string(plaintext), nil
}
