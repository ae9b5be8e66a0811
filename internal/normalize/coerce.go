package normalize

import (
	"strings"

	"github.com/riskibarqy/matchboard/internal/domain/match"
)

var (
	homeTeamKeys = []string{
		"homeTeam", "home_team", "home", "homeCompetitor",
		"team1", "localteam", "homeName", "home_name", "homeTeamName",
	}
	awayTeamKeys = []string{
		"awayTeam", "away_team", "away", "awayCompetitor",
		"team2", "visitorteam", "awayName", "away_name", "awayTeamName",
	}

	competitorListKeys = []string{"competitors", "participants"}
	qualifierKeys      = []string{"qualifier", "homeAway", "home_away", "side", "location", "type", "role"}
	scoreContainerKeys = []string{
		"score", "scores", "result", "results",
		"fullScore", "full_score", "finalScore", "final_score",
	}
	scoreContainerNested = []string{"current", "final", "fullTime", "full_time", "ft", "display"}

	homeTokens = map[string]struct{}{"home": {}, "1": {}, "h": {}, "host": {}}
	awayTokens = map[string]struct{}{"away": {}, "2": {}, "a": {}, "guest": {}}
)

// CoerceTeam returns the first candidate that carries any team identity.
func CoerceTeam(candidates ...any) *match.Team {
	for _, candidate := range candidates {
		if team := teamFrom(candidate); team.HasIdentity() {
			return team
		}
	}
	return nil
}

func teamFrom(candidate any) *match.Team {
	switch typed := candidate.(type) {
	case string:
		name := strings.TrimSpace(typed)
		if name == "" {
			return nil
		}
		return &match.Team{Name: name}
	case map[string]any:
		for _, key := range []string{"team", "entity"} {
			if nested, ok := asMap(typed[key]); ok {
				if team := buildTeam(nested); team.HasIdentity() {
					return team
				}
			}
		}
		return buildTeam(typed)
	default:
		return nil
	}
}

func buildTeam(obj map[string]any) *match.Team {
	return &match.Team{
		ID:        idString(obj["id"]),
		TeamID:    firstNonEmpty(idString(obj["teamId"]), idString(obj["team_id"])),
		Slug:      getString(obj, "slug"),
		Name:      ExtractTeamName(obj),
		ShortName: firstString(obj, "shortName", "short_name", "abbreviation"),
		Country:   nestedName(obj["country"]),
	}
}

// ResolveTeam returns the team of one side. A present canonical homeTeam or
// awayTeam field is authoritative even when it carries no identity; the other
// candidates only fill a missing or null field.
func ResolveTeam(raw map[string]any, side Side) *match.Team {
	if v, ok := raw[canonicalTeamKey(side)]; ok && v != nil {
		return CoerceTeam(v)
	}
	return CoerceTeam(TeamCandidates(raw, side)...)
}

func canonicalTeamKey(side Side) string {
	if side == SideAway {
		return awayTeamKeys[0]
	}
	return homeTeamKeys[0]
}

// TeamCandidates lists every raw value that may describe the given side, in
// lookup order: direct fields, teams.{side}, then qualified competitor entries.
func TeamCandidates(raw map[string]any, side Side) []any {
	keys := homeTeamKeys
	if side == SideAway {
		keys = awayTeamKeys
	}

	out := make([]any, 0, len(keys)+2)
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			out = append(out, v)
		}
	}
	if teams, ok := asMap(raw["teams"]); ok {
		if v, ok := teams[string(side)]; ok && v != nil {
			out = append(out, v)
		}
	}
	for _, entry := range competitorsFor(raw, side) {
		out = append(out, entry)
	}
	return out
}

func competitorsFor(raw map[string]any, side Side) []map[string]any {
	var out []map[string]any
	for _, key := range competitorListKeys {
		items, ok := asSlice(raw[key])
		if !ok {
			continue
		}
		for _, entry := range objectElements(items) {
			if qualified, ok := QualifierSide(entry); ok && qualified == side {
				out = append(out, entry)
			}
		}
	}
	return out
}

// QualifierSide reads the home/away tag of a competitor entry.
func QualifierSide(entry map[string]any) (Side, bool) {
	for _, key := range qualifierKeys {
		if side, ok := sideToken(entry[key]); ok {
			return side, true
		}
	}
	if meta, ok := asMap(entry["meta"]); ok {
		if side, ok := sideToken(meta["location"]); ok {
			return side, true
		}
	}
	for _, key := range []string{"isHome", "is_home"} {
		if flag, ok := entry[key].(bool); ok {
			if flag {
				return SideHome, true
			}
			return SideAway, true
		}
	}
	return "", false
}

func sideToken(value any) (Side, bool) {
	token := strings.ToLower(idString(value))
	if token == "" {
		return "", false
	}
	if _, ok := homeTokens[token]; ok {
		return SideHome, true
	}
	if _, ok := awayTokens[token]; ok {
		return SideAway, true
	}
	return "", false
}

// ResolveScoreFromMatch searches a raw match for one side's score: direct
// fields, then score containers, then the qualified competitor entry.
func ResolveScoreFromMatch(raw map[string]any, side Side) *int {
	sideKey := string(side)
	directKeys := []string{sideKey + "Score", sideKey + "_score"}

	for _, key := range directKeys {
		if v := ExtractScore(raw[key], side); v != nil {
			return v
		}
	}

	probeKeys := append([]string{sideKey}, directKeys...)
	for _, key := range scoreContainerKeys {
		if v := scoreFromContainer(raw[key], side, probeKeys); v != nil {
			return v
		}
	}

	for _, entry := range competitorsFor(raw, side) {
		if v := ExtractScore(entry["score"], side); v != nil {
			return v
		}
	}
	return nil
}

func scoreFromContainer(container any, side Side, probeKeys []string) *int {
	switch typed := container.(type) {
	case string, []any:
		return ExtractScore(typed, side)
	case map[string]any:
		for _, key := range probeKeys {
			if v := ExtractScore(typed[key], side); v != nil {
				return v
			}
		}
		for _, key := range scoreContainerNested {
			nested := typed[key]
			if obj, ok := asMap(nested); ok {
				for _, probe := range probeKeys {
					if v := ExtractScore(obj[probe], side); v != nil {
						return v
					}
				}
				continue
			}
			switch nested.(type) {
			case string, []any:
				if v := ExtractScore(nested, side); v != nil {
					return v
				}
			}
		}
	}
	return nil
}
