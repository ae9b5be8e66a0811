package match

// Outcome is the result of a match seen from one team.
type Outcome string

const (
	OutcomeUnknown Outcome = ""
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeDraw    Outcome = "draw"
)

// DrawLabel is what ResolveWinner reports for a level score.
const DrawLabel = "Draw"

// Letter is the one-character form used in recent-form strips.
func (o Outcome) Letter() string {
	switch o {
	case OutcomeWin:
		return "W"
	case OutcomeLoss:
		return "L"
	case OutcomeDraw:
		return "D"
	default:
		return "-"
	}
}

// DetermineOutcome returns the result for the reference side. isReferenceHome
// must be definite (non-nil) and both scores known, otherwise OutcomeUnknown.
func DetermineOutcome(m Match, isReferenceHome *bool) Outcome {
	if !m.HasScore() || isReferenceHome == nil {
		return OutcomeUnknown
	}

	home, away := *m.HomeScore, *m.AwayScore
	if home == away {
		return OutcomeDraw
	}

	own, other := home, away
	if !*isReferenceHome {
		own, other = away, home
	}
	if own > other {
		return OutcomeWin
	}
	return OutcomeLoss
}

// ReferenceSide tells whether ref played at home (true), away (false) or is not
// a participant (nil).
func ReferenceSide(m Match, ref *Team) *bool {
	switch {
	case IsSameTeam(m.HomeTeam, ref):
		v := true
		return &v
	case IsSameTeam(m.AwayTeam, ref):
		v := false
		return &v
	default:
		return nil
	}
}

// ResolveWinner names the winner of m using the reference teams a and b for the
// label when they match the winning side. The bool is false when a score is
// missing.
func ResolveWinner(m Match, a, b *Team) (string, bool) {
	if !m.HasScore() {
		return "", false
	}
	if *m.HomeScore == *m.AwayScore {
		return DrawLabel, true
	}

	winner := m.AwayTeam
	if *m.HomeScore > *m.AwayScore {
		winner = m.HomeTeam
	}

	switch {
	case IsSameTeam(winner, a):
		return a.DisplayName(), true
	case IsSameTeam(winner, b):
		return b.DisplayName(), true
	default:
		return winner.DisplayName(), true
	}
}

// FormEntry is one match of a team's recent history.
type FormEntry struct {
	Match   Match
	IsHome  *bool
	Outcome Outcome
}

// Form evaluates every match relative to team, keeping the input order.
func Form(matches []Match, team *Team) []FormEntry {
	out := make([]FormEntry, 0, len(matches))
	for _, m := range matches {
		side := ReferenceSide(m, team)
		out = append(out, FormEntry{
			Match:   m,
			IsHome:  side,
			Outcome: DetermineOutcome(m, side),
		})
	}
	return out
}

// FormString joins the outcome letters, e.g. "WDL-W".
func FormString(entries []FormEntry) string {
	b := make([]byte, 0, len(entries))
	for _, e := range entries {
		b = append(b, e.Outcome.Letter()...)
	}
	return string(b)
}
