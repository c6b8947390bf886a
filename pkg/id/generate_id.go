package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RefCode formats a numeric sequence as the human-readable reference shown
// on printed approval forms, e.g. RefCode(123) == "REQ-000123".
func RefCode(seq uint64) string {
	return fmt.Sprintf("REQ-%06d", seq)
}
