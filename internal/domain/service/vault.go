// Package service defines the interfaces for infrastructure-backed domain services.
package service

import "creatorkit/internal/errors"

// ErrVaultIntegrity is returned when a ciphertext blob fails authentication:
// tampered or truncated data, or a wrong key. Callers must hard-fail the
// enclosing operation or disconnect the account for re-authorization; this
// must never be swallowed.
var ErrVaultIntegrity = errors.New("credential ciphertext failed integrity check")

// TokenVault is the encryption boundary protecting stored platform credentials.
// Ciphertext blobs are opaque strings; plaintext tokens must never reach the
// persistence layer.
type TokenVault interface {
	// Encrypt seals a plaintext token into a storable ciphertext blob.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a ciphertext blob produced by Encrypt. Tampered or
	// corrupted blobs, or a wrong key, fail with ErrVaultIntegrity; callers
	// must never treat that as a soft miss.
	Decrypt(blob string) (string, error)
}
