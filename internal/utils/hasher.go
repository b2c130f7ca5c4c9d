package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash generates a SHA-256 hash of the input string
func Hash(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ShortHash returns the first 16 hex characters of Hash, enough to key an article id
func ShortHash(input string) string {
	return Hash(input)[:16]
}

// LastSegment returns the part of s after the final "/", or "" when that is empty.
// Upstream identifiers such as "nyt://article/<uuid>" are shortened with it.
func LastSegment(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}
