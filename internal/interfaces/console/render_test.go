package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/matchboard/internal/domain/match"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

func intPtr(v int) *int { return &v }

func ts(v int64) *int64 { return &v }

func moscow(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return loc
}

func sampleMatch() match.Match {
	return match.Match{
		ID:             "m1",
		StartTimestamp: ts(1714590000),
		Tournament:     match.Tournament{Name: "Serie A"},
		HomeTeam:       &match.Team{ID: "10", Name: "Lazio"},
		AwayTeam:       &match.Team{ID: "20", Name: "Roma"},
		HomeScore:      intPtr(2),
		Status:         match.Status{Description: "2nd half", Type: "inprogress"},
		CountryName:    "Italy",
	}
}

func TestScoreCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		home *int
		away *int
		want string
	}{
		{name: "both", home: intPtr(2), away: intPtr(0), want: "2 : 0"},
		{name: "home missing", away: intPtr(3), want: "- : 3"},
		{name: "none", want: "- : -"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ScoreCell(match.Match{HomeScore: tc.home, AwayScore: tc.away}))
		})
	}
}

func TestRenderer_Kickoff(t *testing.T) {
	t.Parallel()

	r := NewRenderer(moscow(t))
	assert.Equal(t, "01.05.2024, 22:00:00", r.Kickoff(sampleMatch()))
	assert.Empty(t, r.Kickoff(match.Match{}))
	assert.Equal(t, "01.05.2024, 19:00:00", NewRenderer(nil).Kickoff(sampleMatch()))
}

func TestRenderer_FixturesStates(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		view usecase.BoardView
		want []string
		not  []string
	}{
		{
			name: "loading",
			view: usecase.BoardView{Date: day, Loading: true, Matches: []match.Match{sampleMatch()}},
			want: []string{"Fixtures 01.05.2024", "Loading..."},
			not:  []string{"Lazio"},
		},
		{
			name: "error",
			view: usecase.BoardView{Date: day, Err: errors.New("fetch fixtures: fixtures api returned status 503")},
			want: []string{"Error: fetch fixtures: fixtures api returned status 503"},
		},
		{
			name: "empty",
			view: usecase.BoardView{Date: day, Total: 4, Options: usecase.ViewOptions{League: "Serie A", LiveOnly: true}},
			want: []string{"0 of 4 matches [league=Serie A, live]", "No matches"},
		},
		{
			name: "rows",
			view: usecase.BoardView{Date: day, Total: 1, Matches: []match.Match{sampleMatch()}},
			want: []string{"TIME", "01.05.2024, 22:00:00", "Serie A", "Lazio", "2 : -", "Roma", "2nd half"},
			not:  []string{"No matches", "Loading..."},
		},
	}

	r := NewRenderer(moscow(t))
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			require.NoError(t, r.Fixtures(&out, tc.view))
			for _, want := range tc.want {
				assert.Contains(t, out.String(), want)
			}
			for _, not := range tc.not {
				assert.NotContains(t, out.String(), not)
			}
		})
	}
}

func TestRenderer_MatchCenter(t *testing.T) {
	t.Parallel()

	selected := sampleMatch()
	h2h := []match.Match{
		{HomeTeam: selected.HomeTeam, AwayTeam: selected.AwayTeam, HomeScore: intPtr(3), AwayScore: intPtr(1)},
		{HomeTeam: selected.AwayTeam, AwayTeam: selected.HomeTeam, HomeScore: intPtr(1), AwayScore: intPtr(1)},
	}
	center := usecase.BuildMatchCenter(selected, usecase.MatchCenterData{
		HeadToHead: h2h,
		HomeRecent: []match.Match{{HomeTeam: selected.HomeTeam, AwayTeam: &match.Team{Name: "Milan"}, HomeScore: intPtr(0), AwayScore: intPtr(1)}},
	})

	var out bytes.Buffer
	r := NewRenderer(moscow(t))
	require.NoError(t, r.MatchCenter(&out, usecase.BoardView{Selected: &selected, Center: &center}))

	text := out.String()
	assert.Contains(t, text, "Lazio 2 : - Roma  (Serie A, 01.05.2024, 22:00:00, 2nd half)")
	assert.Contains(t, text, "Head to head: 2 meetings, 2 with a result")
	assert.Contains(t, text, "Lazio wins: 1 (50%)  Draws: 1  Roma wins: 0 (0%)")
	assert.Contains(t, text, "Avg goals: 3.0 total, 2.0 Lazio, 1.0 Roma")
	assert.Contains(t, text, "Lazio recent form: L")
	assert.Contains(t, text, "Roma recent form: no matches")
	assert.Contains(t, text, "Draw")

	out.Reset()
	require.NoError(t, r.MatchCenter(&out, usecase.BoardView{Selected: &selected, CenterLoading: true}))
	assert.Contains(t, out.String(), "Loading...")

	out.Reset()
	require.NoError(t, r.MatchCenter(&out, usecase.BoardView{Selected: &selected, CenterErr: errors.New("boom")}))
	assert.Contains(t, out.String(), "Error: boom")

	out.Reset()
	require.NoError(t, r.MatchCenter(&out, usecase.BoardView{}))
	assert.Equal(t, "No match selected\n", out.String())
}

func TestRenderer_Week(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	days := []usecase.DaySchedule{
		{Date: day, Matches: []match.Match{sampleMatch()}, Live: 1, Leagues: []string{"Serie A"}},
		{Date: day.AddDate(0, 0, 1), Err: errors.New("status 502")},
		{Date: day.AddDate(0, 0, 2)},
	}

	var out bytes.Buffer
	require.NoError(t, NewRenderer(moscow(t)).Week(&out, days))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "01.05.2024")
	assert.Contains(t, lines[1], "01.05.2024, 22:00:00")
	assert.Contains(t, lines[2], "Error: status 502")
	assert.Contains(t, lines[3], "-")
}

func TestRenderer_List(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, NewRenderer(nil).List(&out, "Leagues", []string{"Premier League", "Serie A"}))
	assert.Equal(t, "Leagues (2)\n  Premier League\n  Serie A\n", out.String())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: "", want: today},
		{raw: "Today", want: today},
		{raw: "tomorrow", want: today.AddDate(0, 0, 1)},
		{raw: "yesterday", want: today.AddDate(0, 0, -1)},
		{raw: "+3", want: today.AddDate(0, 0, 3)},
		{raw: "-1", want: today.AddDate(0, 0, -1)},
		{raw: "2024-12-31", want: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{raw: "31.12.2024", want: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{raw: "31/12/2024", want: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{raw: "+x", wantErr: true},
		{raw: "next week", wantErr: true},
		{raw: "2024-13-01", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseDate(tc.raw, today)
		if tc.wantErr {
			assert.True(t, errors.Is(err, usecase.ErrInvalidInput), "raw=%q", tc.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.True(t, tc.want.Equal(got), "raw=%q got=%s", tc.raw, got)
	}
}
