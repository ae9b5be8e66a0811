package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/matchboard/internal/domain/match"
)

// FixtureProvider fetches normalized fixtures and match-center data.
type FixtureProvider interface {
	FetchFixtures(ctx context.Context, date time.Time) ([]match.Match, error)
	FetchMatchCenter(ctx context.Context, query MatchCenterQuery) (MatchCenterData, error)
}

// MatchCenterQuery identifies the selected match and both teams. Team names
// are only sent upstream when the matching id is unknown.
type MatchCenterQuery struct {
	MatchID  string
	HomeID   string
	HomeName string
	AwayID   string
	AwayName string
}

// QueryForMatch builds the match-center query for m.
func QueryForMatch(m match.Match) MatchCenterQuery {
	q := MatchCenterQuery{MatchID: m.ID}
	if m.HomeTeam != nil {
		q.HomeID = teamKey(m.HomeTeam)
		q.HomeName = m.HomeTeam.DisplayName()
	}
	if m.AwayTeam != nil {
		q.AwayID = teamKey(m.AwayTeam)
		q.AwayName = m.AwayTeam.DisplayName()
	}
	return q
}

func teamKey(t *match.Team) string {
	if t.ID != "" {
		return t.ID
	}
	return t.TeamID
}

// MatchCenterData holds the three normalized role lists.
type MatchCenterData struct {
	HeadToHead []match.Match
	HomeRecent []match.Match
	AwayRecent []match.Match
}
