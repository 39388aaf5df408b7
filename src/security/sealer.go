// Package security seals and opens API credentials kept in env files.
package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

var (
	ErrOpenFailed = errors.New("security: sealed value could not be opened")
	// ErrKeyNotConfigured means EXCHANGE_CREDENTIALS_KEY is unset.
	ErrKeyNotConfigured = errors.New("security: EXCHANGE_CREDENTIALS_KEY is not set")
)

// Sealer wraps a secretbox key.
type Sealer struct {
	key [keySize]byte
}

// NewSealer decodes a base64 key that must be exactly 32 bytes long.
func NewSealer(keyB64 string) (*Sealer, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(keyB64))
	if err != nil {
		return nil, fmt.Errorf("security: decode key: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("security: key must be %d bytes, got %d", keySize, len(raw))
	}
	s := &Sealer{}
	copy(s.key[:], raw)
	return s, nil
}

// NewSealerFromEnv builds a Sealer from EXCHANGE_CREDENTIALS_KEY. An unset
// key is ErrKeyNotConfigured.
func NewSealerFromEnv() (*Sealer, error) {
	key := GetConfig().ExchangeCRKey
	if strings.TrimSpace(key) == "" {
		return nil, ErrKeyNotConfigured
	}
	return NewSealer(key)
}

// Seal encrypts plain and returns base64(nonce || box).
func (s *Sealer) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("security: read nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(sealed))
	if err != nil {
		return "", fmt.Errorf("security: decode sealed value: %w", err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrOpenFailed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrOpenFailed
	}
	return string(plain), nil
}

// EncryptString seals plain with the key from the environment.
func EncryptString(plain string) (string, error) {
	s, err := NewSealerFromEnv()
	if err != nil {
		return "", err
	}
	return s.Seal(plain)
}

// DecryptString opens a value produced by EncryptString.
func DecryptString(sealed string) (string, error) {
	s, err := NewSealerFromEnv()
	if err != nil {
		return "", err
	}
	return s.Open(sealed)
}
