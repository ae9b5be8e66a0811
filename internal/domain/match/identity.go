package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minNameOverlap keeps one-letter abbreviations from matching every team name.
const minNameOverlap = 3

// IsSameTeam compares two teams by id, then team id, then slug, and finally by
// normalized name with a substring fallback. Either side nil means not equal.
func IsSameTeam(a, b *Team) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	if a.TeamID != "" && b.TeamID != "" {
		return a.TeamID == b.TeamID
	}
	if a.Slug != "" && b.Slug != "" {
		return strings.EqualFold(strings.TrimSpace(a.Slug), strings.TrimSpace(b.Slug))
	}
	return sameName(a.DisplayName(), b.DisplayName())
}

func sameName(left, right string) bool {
	l := NormalizeName(left)
	r := NormalizeName(right)
	if l == "" || r == "" {
		return false
	}
	if l == r {
		return true
	}
	if len(l) < minNameOverlap || len(r) < minNameOverlap {
		return false
	}
	return strings.Contains(l, r) || strings.Contains(r, l)
}

// NormalizeName folds a team name for comparison: lower case, no diacritics,
// punctuation collapsed into single spaces.
func NormalizeName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	stripped, _, err := transform.String(diacriticsFolder(), value)
	if err == nil {
		value = stripped
	}
	value = strings.ToLower(value)

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// A transform.Transformer carries state, so every call gets a fresh chain.
func diacriticsFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
