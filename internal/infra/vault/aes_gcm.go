// Package vault implements the encryption boundary protecting stored
// platform credentials using AES-256-GCM.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"

	"creatorkit/config"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/errors"
)

const (
	keySize   = 32 // AES-256
	nonceSize = 12
	tagSize   = 16
)

// ErrIntegrity is the vault's integrity failure sentinel, shared with the
// domain layer so usecases can react without importing this package.
var ErrIntegrity = service.ErrVaultIntegrity

// aesGCMVault is a concrete implementation of service.TokenVault.
//
// Stored blob layout: base64(nonce(12) || authTag(16) || ciphertext). The
// layout is a persistence contract; existing rows were written in it.
type aesGCMVault struct {
	aead cipher.AEAD
}

// New parses the configured hex key and builds the vault. A missing or
// malformed key is a construction error, which fails process startup.
func New(cfg *config.Config) (service.TokenVault, error) {
	if cfg.Vault == nil || cfg.Vault.KeyHex == "" {
		return nil, errors.New("vault key is not configured")
	}

	key, err := hex.DecodeString(cfg.Vault.KeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "vault key is not valid hex")
	}
	if len(key) != keySize {
		return nil, errors.Errorf("vault key must be %d bytes, got %d", keySize, len(key))
	}

	return NewWithKey(key)
}

// NewWithKey builds the vault from raw key bytes.
func NewWithKey(key []byte) (service.TokenVault, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize GCM")
	}

	return &aesGCMVault{aead: aead}, nil
}

// Encrypt seals a plaintext token with a fresh random nonce per call.
func (v *aesGCMVault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	// Seal appends the auth tag after the ciphertext; the stored layout
	// wants nonce || tag || ciphertext, so reorder before encoding.
	sealed := v.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	combined := make([]byte, 0, nonceSize+tagSize+len(ciphertext))
	combined = append(combined, nonce...)
	combined = append(combined, tag...)
	combined = append(combined, ciphertext...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Decrypt opens a blob produced by Encrypt.
func (v *aesGCMVault) Decrypt(blob string) (string, error) {
	combined, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", ErrIntegrity
	}
	if len(combined) < nonceSize+tagSize {
		return "", ErrIntegrity
	}

	nonce := combined[:nonceSize]
	tag := combined[nonceSize : nonceSize+tagSize]
	ciphertext := combined[nonceSize+tagSize:]

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := v.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrIntegrity
	}

	return string(plaintext), nil
}
