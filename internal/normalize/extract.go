package normalize

import (
	"math"
	"strings"
	"time"
)

// Side selects one competitor of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// millisecondThreshold separates millisecond epochs from second epochs.
const millisecondThreshold = 1e12

var timestampKeys = []string{
	"startTimestamp", "start_timestamp",
	"startTime", "start_time",
	"start", "timestamp",
	"eventTimestamp", "event_timestamp",
	"startDate", "start_date", "date",
	"utcStartTimestamp", "utc_start_timestamp",
	"kickoff", "kickoff_time", "kickoffAt",
	"startAt", "start_at",
	"matchTimestamp", "match_timestamp",
	"starting_at", "datetime", "dateTime", "time",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02.01.2006 15:04",
	"02.01.2006",
	time.RFC1123Z,
	time.RFC1123,
}

var teamNameKeys = []string{
	"name", "shortName", "short_name",
	"teamName", "team_name",
	"title", "fullName", "full_name",
	"abbreviation", "slug",
}

// ExtractTimestamp returns the kickoff as Unix seconds from the first candidate
// field holding a usable value. false means the time is unknown.
func ExtractTimestamp(raw map[string]any) (int64, bool) {
	for _, key := range timestampKeys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		if ts, ok := timestampValue(value); ok {
			return ts, true
		}
	}
	return 0, false
}

func timestampValue(value any) (int64, bool) {
	if n, ok := asNumber(value); ok {
		return epochSeconds(n)
	}

	text, ok := value.(string)
	if !ok {
		return 0, false
	}
	parsed := parseDateTime(text)
	if parsed == nil {
		return 0, false
	}
	return parsed.Unix(), true
}

// epochSeconds rejects values whose rounded seconds do not fit an int64.
func epochSeconds(v float64) (int64, bool) {
	if v > millisecondThreshold {
		v /= 1000
	}
	r := math.Round(v)
	if r < math.MinInt64 || r >= -math.MinInt64 {
		return 0, false
	}
	return int64(r), true
}

func parseDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	for _, layout := range dateTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

// ExtractScore resolves one side's score from a number, a string such as "2:1"
// or "3 (pen)", a [home, away] pair, or an object carrying one of the known
// score fields. Unknown shapes give nil.
func ExtractScore(raw any, side Side) *int {
	return scoreAt(raw, side, 0)
}

func scoreAt(raw any, side Side, depth int) *int {
	if raw == nil || depth > maxDepth {
		return nil
	}

	switch typed := raw.(type) {
	case bool:
		return nil
	case string:
		return scoreFromString(typed, side)
	case []any:
		idx := 0
		if side == SideAway {
			idx = 1
		}
		if idx >= len(typed) {
			return nil
		}
		if _, ok := asMap(typed[idx]); ok {
			return scoreAt(typed[idx], side, depth+1)
		}
		return plainScore(typed[idx])
	case map[string]any:
		return scoreFromObject(typed, side, depth)
	}

	if n, ok := asNumber(raw); ok {
		return roundInt(n)
	}
	return nil
}

func scoreFromObject(obj map[string]any, side Side, depth int) *int {
	sideKey := string(side)
	for _, key := range []string{sideKey, sideKey + "Score", sideKey + "_score"} {
		if v := scoreAt(obj[key], side, depth+1); v != nil {
			return v
		}
	}
	if points, ok := asMap(obj["points"]); ok {
		if v := scoreAt(points[sideKey], side, depth+1); v != nil {
			return v
		}
	}
	for _, key := range []string{"score", "value", "current", "final", "total", "goals", "display"} {
		if v := scoreAt(obj[key], side, depth+1); v != nil {
			return v
		}
	}
	return nil
}

func scoreFromString(raw string, side Side) *int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	if home, away, ok := splitScorePair(value); ok {
		if side == SideAway {
			return leadingInt(away)
		}
		return leadingInt(home)
	}
	if n, ok := asNumber(value); ok {
		return roundInt(n)
	}
	return leadingInt(value)
}

// splitScorePair splits "2:1" or "2 - 1". A leading minus is a sign, not a separator.
func splitScorePair(value string) (string, string, bool) {
	if home, away, ok := strings.Cut(value, ":"); ok {
		return home, away, true
	}
	if idx := strings.Index(value, "-"); idx > 0 {
		return value[:idx], value[idx+1:], true
	}
	return "", "", false
}

func plainScore(value any) *int {
	if text, ok := value.(string); ok {
		if n, ok := asNumber(text); ok {
			return roundInt(n)
		}
		return leadingInt(text)
	}
	if n, ok := asNumber(value); ok {
		return roundInt(n)
	}
	return nil
}

// leadingInt parses the integer prefix of s, e.g. "3 (pen)" gives 3.
func leadingInt(s string) *int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}
	n, ok := asNumber(s[:end])
	if !ok {
		return nil
	}
	return roundInt(n)
}

// ExtractTeamName returns a display name for a raw team value, or "".
func ExtractTeamName(team any) string {
	switch typed := team.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		return firstString(typed, teamNameKeys...)
	default:
		return ""
	}
}
