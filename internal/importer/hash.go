package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize canonicalizes a card's text so trivial formatting differences
// (case, surrounding whitespace, line endings) do not defeat deduplication.
func Normalize(question, answer string) string {
	clean := func(s string) string {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		return strings.ToLower(strings.TrimSpace(s))
	}
	return clean(question) + "\n" + clean(answer)
}

// Hash returns the hex SHA-256 of the normalized card text. Two cards with
// the same hash are the same card as far as the importer is concerned.
func Hash(question, answer string) string {
	sum := sha256.Sum256([]byte(Normalize(question, answer)))
	return hex.EncodeToString(sum[:])
}
