package match

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortByTime    SortKey = "time"
	SortByLeague  SortKey = "league"
	SortByCountry SortKey = "country"
	SortByStatus  SortKey = "status"
)

// ParseSortKey maps user input to a SortKey, defaulting to time order.
func ParseSortKey(v string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case SortByLeague:
		return SortByLeague
	case SortByCountry:
		return SortByCountry
	case SortByStatus:
		return SortByStatus
	default:
		return SortByTime
	}
}

// Filter narrows a fixture list. Zero value keeps everything.
type Filter struct {
	League   string
	Country  string
	Search   string
	LiveOnly bool
}

func (f Filter) IsZero() bool {
	return f.League == "" && f.Country == "" && strings.TrimSpace(f.Search) == "" && !f.LiveOnly
}

// Matches reports whether m passes every active criterion.
func (f Filter) Matches(m Match) bool {
	if f.League != "" && m.Tournament.Name != f.League {
		return false
	}
	if f.Country != "" && !strings.EqualFold(m.CountryName, f.Country) {
		return false
	}
	if f.LiveOnly && !m.IsLive() {
		return false
	}
	if query := strings.ToLower(strings.TrimSpace(f.Search)); query != "" {
		home := strings.ToLower(m.HomeName())
		away := strings.ToLower(m.AwayName())
		if !strings.Contains(home, query) && !strings.Contains(away, query) {
			return false
		}
	}
	return true
}

// ApplyFilter returns the matches passing f in their original order.
func ApplyFilter(matches []Match, f Filter) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// SortBy orders a copy of matches. Ties and unknown kickoffs keep input order,
// unknown kickoffs sort last.
func SortBy(matches []Match, key SortKey) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)

	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case SortByLeague:
			if li, lj := out[i].Tournament.Name, out[j].Tournament.Name; li != lj {
				return li < lj
			}
		case SortByCountry:
			if ci, cj := out[i].CountryName, out[j].CountryName; ci != cj {
				return ci < cj
			}
		case SortByStatus:
			if si, sj := out[i].Status.Description, out[j].Status.Description; si != sj {
				return si < sj
			}
		}
		return kickoffLess(out[i], out[j])
	})
	return out
}

func kickoffLess(a, b Match) bool {
	switch {
	case a.StartTimestamp == nil:
		return false
	case b.StartTimestamp == nil:
		return true
	default:
		return *a.StartTimestamp < *b.StartTimestamp
	}
}

// Leagues lists the distinct non-empty tournament names, sorted.
func Leagues(matches []Match) []string {
	return distinct(matches, func(m Match) string { return m.Tournament.Name })
}

// Countries lists the distinct derived country names, sorted.
func Countries(matches []Match) []string {
	return distinct(matches, func(m Match) string { return m.CountryName })
}

func distinct(matches []Match, pick func(Match) string) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, 16)
	for _, m := range matches {
		v := strings.TrimSpace(pick(m))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
