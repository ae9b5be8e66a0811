package match

import "math"

// HeadToHeadStats aggregates a set of meetings between two reference teams.
// Home/Away refer to the reference teams passed to ComputeHeadToHeadStats, not to
// the side each team occupied in a given match.
type HeadToHeadStats struct {
	Total      int
	Evaluated  int
	HomeWins   int
	AwayWins   int
	Draws      int
	AvgTotal   *float64
	AvgHome    *float64
	AvgAway    *float64
	HomeWinPct *int
	AwayWinPct *int
}

// FilterHeadToHead keeps the matches in which both a and b took part.
func FilterHeadToHead(matches []Match, a, b *Team) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		aHome := IsSameTeam(m.HomeTeam, a)
		aAway := IsSameTeam(m.AwayTeam, a)
		bHome := IsSameTeam(m.HomeTeam, b)
		bAway := IsSameTeam(m.AwayTeam, b)
		if (aHome && bAway) || (aAway && bHome) {
			out = append(out, m)
		}
	}
	return out
}

// ComputeHeadToHeadStats expects matches already filtered to meetings of home
// and away. Wins are attributed per match to whichever reference team held the
// winning side. A scored match in which neither reference team can be found
// counts towards Total only.
func ComputeHeadToHeadStats(matches []Match, home, away *Team) HeadToHeadStats {
	stats := HeadToHeadStats{Total: len(matches)}

	var goalsTotal, goalsHome, goalsAway int
	for _, m := range matches {
		if !m.HasScore() {
			continue
		}
		homeSideIsRefHome, ok := referenceHomeOrientation(m, home, away)
		if !ok {
			continue
		}
		stats.Evaluated++

		refHomeGoals, refAwayGoals := *m.HomeScore, *m.AwayScore
		if !homeSideIsRefHome {
			refHomeGoals, refAwayGoals = refAwayGoals, refHomeGoals
		}

		goalsTotal += refHomeGoals + refAwayGoals
		goalsHome += refHomeGoals
		goalsAway += refAwayGoals

		switch {
		case refHomeGoals > refAwayGoals:
			stats.HomeWins++
		case refAwayGoals > refHomeGoals:
			stats.AwayWins++
		default:
			stats.Draws++
		}
	}

	if stats.Evaluated == 0 {
		return stats
	}

	n := float64(stats.Evaluated)
	stats.AvgTotal = roundedAverage(goalsTotal, n)
	stats.AvgHome = roundedAverage(goalsHome, n)
	stats.AvgAway = roundedAverage(goalsAway, n)
	stats.HomeWinPct = percentage(stats.HomeWins, n)
	stats.AwayWinPct = percentage(stats.AwayWins, n)
	return stats
}

// referenceHomeOrientation reports whether the match's home side is the
// reference home team. ok is false when neither reference team is found.
func referenceHomeOrientation(m Match, home, away *Team) (homeSideIsRefHome, ok bool) {
	switch {
	case IsSameTeam(m.HomeTeam, home), IsSameTeam(m.AwayTeam, away):
		return true, true
	case IsSameTeam(m.AwayTeam, home), IsSameTeam(m.HomeTeam, away):
		return false, true
	default:
		return false, false
	}
}

func roundedAverage(sum int, n float64) *float64 {
	v := math.Round(float64(sum)/n*10) / 10
	return &v
}

// math.Round rounds half away from zero.
func percentage(count int, n float64) *int {
	v := int(math.Round(float64(count) / n * 100))
	return &v
}
