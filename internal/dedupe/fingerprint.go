// Package dedupe gives cards a content fingerprint so repeated imports
// of the same document do not duplicate cards.
package dedupe

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/vocabrecall/vocabrecall/internal/domain"
)

// normalize cleans one field for hashing: lowercased, trimmed, with
// Windows line endings unified.
func normalize(part string) string {
	p := strings.ToLower(part)
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\r\n", "\n")
	return p
}

// Key returns the canonical content string for a candidate. Front and
// back are joined with a newline so "Hund"+"dog" can never collide with
// "Hun"+"ddog".
func Key(c domain.Candidate) string {
	return normalize(c.Front) + "\n" + normalize(c.Back)
}

// Fingerprint hashes a candidate's canonical content to a hex string.
// Two candidates that differ only in whitespace or casing share a
// fingerprint.
func Fingerprint(c domain.Candidate) string {
	sum := sha256.Sum256([]byte(Key(c)))
	return fmt.Sprintf("%x", sum)
}
