package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// etagLength is the number of hex characters kept in an ETag
const etagLength = 16

// Hasher computes content digests
type Hasher struct{}

// DefaultHasher returns the SHA-256 hasher
func DefaultHasher() *Hasher {
	return &Hasher{}
}

// Hash computes a hex digest of data
func (h *Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFields computes a digest from multiple fields, independent of order
func (h *Hasher) HashFields(fields ...string) string {
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)
	return h.Hash([]byte(strings.Join(sorted, "|")))
}

// ETag returns a strong entity tag for data
func ETag(data []byte) string {
	return `"` + DefaultHasher().Hash(data)[:etagLength] + `"`
}

// ETagMatches reports whether an If-None-Match header value matches etag.
// Weak tags compare by their opaque value.
func ETagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
