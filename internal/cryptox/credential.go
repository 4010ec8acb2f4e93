// Package cryptox implements the on-disk credential format: a 32-byte random
// salt followed by a 32-byte PBKDF2-HMAC-SHA256 key derived from the password.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/wepost/internal/common"
)

const (
	// SaltSize is the number of random salt bytes at the start of a credential.
	SaltSize = 32
	// KeySize is the number of derived-key bytes at the end of a credential.
	KeySize = 32
	// CredentialSize is the total stored credential length, salt followed by key.
	CredentialSize = SaltSize + KeySize

	// kdfIterations is part of the stored credential format and must never
	// change: credentials carry no algorithm or iteration marker, so every
	// verifier has to recompute with exactly this count. 128 iterations is
	// far below current hardening recommendations; treat the format as a
	// compatibility constraint, not a security baseline.
	kdfIterations = 128
)

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, KeySize, sha256.New)
}

// DeriveCredential generates a fresh random salt, derives a key from the
// password and returns the 64-byte salt||key blob to store.
func DeriveCredential(password string) []byte {
	salt := common.GenerateRandByteArray(SaltSize)
	return append(salt, deriveKey(password, salt)...)
}

// VerifyCredential reports whether password matches the stored credential.
// The derived-key comparison is constant-time. A credential of the wrong
// length never matches.
func VerifyCredential(credential []byte, password string) bool {
	if len(credential) != CredentialSize {
		return false
	}
	salt, expected := credential[:SaltSize], credential[SaltSize:]
	key := deriveKey(password, salt)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
