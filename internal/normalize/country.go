package normalize

import (
	"regexp"
	"strings"

	"github.com/riskibarqy/matchboard/internal/domain/match"
)

var trailingParenRegex = regexp.MustCompile(`\(([^()]+)\)\s*$`)

// ResolveCountryName derives the country a match is listed under. It never
// returns an empty string.
func ResolveCountryName(m match.Match) string {
	candidates := []string{
		m.Tournament.Country,
		m.Tournament.Category,
		m.Country,
	}
	if m.HomeTeam != nil {
		candidates = append(candidates, m.HomeTeam.Country)
	}
	if m.AwayTeam != nil {
		candidates = append(candidates, m.AwayTeam.Country)
	}
	if v := firstNonEmpty(candidates...); v != "" {
		return v
	}

	if found := trailingParenRegex.FindStringSubmatch(m.Tournament.Name); len(found) == 2 {
		if v := strings.TrimSpace(found[1]); v != "" {
			return v
		}
	}
	return match.UnknownCountry
}
