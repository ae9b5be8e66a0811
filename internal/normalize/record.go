package normalize

import (
	"runtime"

	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/matchboard/internal/domain/match"
)

// parallelBatchThreshold is the batch size from which NormalizeRecords fans out.
const parallelBatchThreshold = 64

var matchIDKeys = []string{"id", "eventId", "event_id", "matchId", "match_id"}

// NormalizeMatchRecord maps a raw match object to the canonical form. It only
// reports false when raw is not a JSON object; missing data leaves fields empty.
func NormalizeMatchRecord(raw any) (match.Match, bool) {
	obj, ok := asMap(raw)
	if !ok {
		return match.Match{}, false
	}

	extra := make(map[string]any, len(obj))
	for key, value := range obj {
		extra[key] = value
	}

	m := match.Match{
		Tournament: tournamentFrom(obj),
		Country:    nestedName(obj["country"]),
		HomeTeam:   ResolveTeam(obj, SideHome),
		AwayTeam:   ResolveTeam(obj, SideAway),
		HomeScore:  ResolveScoreFromMatch(obj, SideHome),
		AwayScore:  ResolveScoreFromMatch(obj, SideAway),
		Status:     statusFrom(obj["status"]),
		Extra:      extra,
	}
	for _, key := range matchIDKeys {
		if id := idString(obj[key]); id != "" {
			m.ID = id
			break
		}
	}
	if ts, ok := ExtractTimestamp(obj); ok {
		m.StartTimestamp = &ts
	}

	m.CountryName = getString(obj, "countryName")
	if m.CountryName == "" {
		m.CountryName = ResolveCountryName(m)
	}
	return m, true
}

func tournamentFrom(obj map[string]any) match.Tournament {
	for _, key := range []string{"tournament", "league", "competition"} {
		var t match.Tournament
		switch typed := obj[key].(type) {
		case string:
			t.Name = typed
		case map[string]any:
			t = match.Tournament{
				Name:     firstString(typed, "name", "title"),
				Country:  nestedName(typed["country"]),
				Category: nestedName(typed["category"]),
			}
		}
		t.Name = firstNonEmpty(t.Name)
		if t != (match.Tournament{}) {
			return t
		}
	}
	return match.Tournament{}
}

func statusFrom(raw any) match.Status {
	switch typed := raw.(type) {
	case string:
		return match.Status{Description: firstNonEmpty(typed)}
	case map[string]any:
		return match.Status{
			Description: firstString(typed, "description", "name", "long", "short"),
			Type:        firstString(typed, "type", "state", "code"),
		}
	default:
		return match.Status{}
	}
}

// NormalizeRecords normalizes a batch keeping input order. Large batches are
// spread over the available CPUs.
func NormalizeRecords(raws []map[string]any) []match.Match {
	normalizeOne := func(raw *map[string]any) match.Match {
		m, _ := NormalizeMatchRecord(*raw)
		return m
	}

	if len(raws) < parallelBatchThreshold {
		out := make([]match.Match, 0, len(raws))
		for i := range raws {
			out = append(out, normalizeOne(&raws[i]))
		}
		return out
	}

	mapper := iter.Mapper[map[string]any, match.Match]{MaxGoroutines: runtime.GOMAXPROCS(0)}
	return mapper.Map(raws, normalizeOne)
}
