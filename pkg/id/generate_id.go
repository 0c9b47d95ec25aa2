// Package id mints the public identifiers the engine hands out. Tender,
// bidder, disqualification, and remediation request IDs all share the same
// shape: 32 lowercase hex characters, the format the HTTP layer validates
// as hex32.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 encodes 16 random bytes as 32 lowercase hex characters, with no
// separators or prefixes.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
