// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/anonymize"
)

// Mapping is a user-owned original name → pseudonym pair.
type Mapping struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	// Original is stored case-folded and trimmed; it is the lookup key.
	Original string `json:"original"`
	// Pseudonym is stored trimmed with its case preserved.
	Pseudonym string    `json:"pseudonym"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeOriginal returns the lookup key form of an original name.
func NormalizeOriginal(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePseudonym trims s without touching its case.
func NormalizePseudonym(s string) string {
	return strings.TrimSpace(s)
}

// Pairs converts mappings into transformer input.
func Pairs(ms []*Mapping) []anonymize.Pair {
	if len(ms) == 0 {
		return nil
	}
	pairs := make([]anonymize.Pair, 0, len(ms))
	for _, m := range ms {
		pairs = append(pairs, anonymize.Pair{Original: m.Original, Pseudonym: m.Pseudonym})
	}
	return pairs
}
