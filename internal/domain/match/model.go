package match

import (
	"strings"
	"time"
)

// UnknownCountry is the CountryName of a match whose country could not be derived.
const UnknownCountry = "unknown"

// Team is one side of a match as resolved from upstream payloads.
type Team struct {
	ID        string
	TeamID    string
	Slug      string
	Name      string
	ShortName string
	Country   string
}

// HasIdentity reports whether the team carries anything it can be compared by.
func (t *Team) HasIdentity() bool {
	if t == nil {
		return false
	}
	return t.ID != "" || t.TeamID != "" || t.Slug != "" || strings.TrimSpace(t.Name) != ""
}

// DisplayName returns the best human label for the team.
func (t *Team) DisplayName() string {
	if t == nil {
		return ""
	}
	for _, v := range []string{t.Name, t.ShortName, t.Slug} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

type Tournament struct {
	Name     string
	Country  string
	Category string
}

type Status struct {
	Description string
	Type        string
}

// Match is the canonical fixture record consumed by filtering, sorting and statistics.
type Match struct {
	ID             string
	StartTimestamp *int64
	Tournament     Tournament
	Country        string
	HomeTeam       *Team
	AwayTeam       *Team
	HomeScore      *int
	AwayScore      *int
	Status         Status
	CountryName    string

	// Extra holds every upstream field as received.
	Extra map[string]any
}

// StartTime returns the kickoff in UTC, or false when it is unknown.
func (m Match) StartTime() (time.Time, bool) {
	if m.StartTimestamp == nil {
		return time.Time{}, false
	}
	return time.Unix(*m.StartTimestamp, 0).UTC(), true
}

// HasScore reports whether both sides have a resolved score.
func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) IsLive() bool {
	if strings.Contains(strings.ToLower(m.Status.Description), "live") {
		return true
	}
	return strings.Contains(strings.ToLower(m.Status.Type), "inprogress")
}

func (m Match) HomeName() string {
	return m.HomeTeam.DisplayName()
}

func (m Match) AwayName() string {
	return m.AwayTeam.DisplayName()
}

// Record renders the match back into the canonical JSON object form. Upstream
// fields are kept and canonical keys override them.
func (m Match) Record() map[string]any {
	out := make(map[string]any, len(m.Extra)+10)
	for k, v := range m.Extra {
		out[k] = v
	}

	if m.ID != "" {
		out["id"] = m.ID
	}
	if m.StartTimestamp != nil {
		out["startTimestamp"] = *m.StartTimestamp
	} else {
		delete(out, "startTimestamp")
	}

	tournament := map[string]any{"name": m.Tournament.Name}
	if m.Tournament.Country != "" {
		tournament["country"] = map[string]any{"name": m.Tournament.Country}
	}
	if m.Tournament.Category != "" {
		tournament["category"] = map[string]any{"name": m.Tournament.Category}
	}
	out["tournament"] = tournament

	if m.Country != "" {
		out["country"] = map[string]any{"name": m.Country}
	} else {
		delete(out, "country")
	}

	out["homeTeam"] = teamRecord(m.HomeTeam)
	out["awayTeam"] = teamRecord(m.AwayTeam)
	out["homeScore"] = scoreRecord(m.HomeScore)
	out["awayScore"] = scoreRecord(m.AwayScore)
	out["status"] = map[string]any{
		"description": m.Status.Description,
		"type":        m.Status.Type,
	}
	out["countryName"] = m.CountryName
	return out
}

// teamRecord renders an unknown team as an empty object, so a second pass does
// not fall back to the raw side fields still present in Extra.
func teamRecord(t *Team) any {
	out := map[string]any{}
	if t == nil {
		return out
	}
	if t.ID != "" {
		out["id"] = t.ID
	}
	if t.TeamID != "" {
		out["teamId"] = t.TeamID
	}
	if t.Slug != "" {
		out["slug"] = t.Slug
	}
	if t.Name != "" {
		out["name"] = t.Name
	}
	if t.ShortName != "" {
		out["shortName"] = t.ShortName
	}
	if t.Country != "" {
		out["country"] = map[string]any{"name": t.Country}
	}
	return out
}

func scoreRecord(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
