// Package id mints and checks the opaque identifiers the service hands out:
// upload ledger ids and client idempotency keys.
package id

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a random (v4) UUID as 32 lowercase hex characters.
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid accepts 32 lowercase hex characters or a hyphenated UUID in either
// case. Braced and urn: forms are rejected.
func Valid(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if reHex32.MatchString(s) {
		return true
	}
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
