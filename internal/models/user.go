// Package models holds the persisted record types shared by repositories
// and services.
package models

// Privilege tiers. Anything at or above TierNormal may create posts;
// anything at or below TierReadOnly may only read. TierAdmin additionally
// allows force-deleting posts and changing other users' tiers.
const (
	TierReadOnly = 0
	TierNormal   = 1
	TierAdmin    = 99
)

// User is a row in the users table. Credential is the 64-byte
// salt||derived-key blob produced by cryptox.DeriveCredential.
type User struct {
	Username   string
	Credential []byte
	Tier       int
}
