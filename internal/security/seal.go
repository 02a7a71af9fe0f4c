// Package security seals store values at rest so tokens and remembered
// credentials are not readable from a plain file dump of the device.
package security

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltLength = 16

var ErrCiphertextTooShort = errors.New("security: ciphertext too short")

// Sealer encrypts and decrypts small blobs with a key derived from the
// device keystore secret.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives an XChaCha20-Poly1305 key from secret and salt using
// argon2id and returns a Sealer bound to it.
func NewSealer(secret, salt []byte) (*Sealer, error) {
	cfg := argon2.DefaultConfig()
	cfg.HashLength = chacha20poly1305.KeySize

	raw, err := cfg.Hash(secret, salt)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(raw.Hash)
	if err != nil {
		return nil, err
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext with a fresh random nonce prepended to the output.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func (s *Sealer) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < s.aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce, sealed := ciphertext[:s.aead.NonceSize()], ciphertext[s.aead.NonceSize():]
	return s.aead.Open(nil, nonce, sealed, nil)
}

// NewSalt returns a fresh random salt for key derivation.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}
