package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractScore_HomeRepresentations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
	}{
		{name: "number", raw: float64(5)},
		{name: "int", raw: 5},
		{name: "numeric string", raw: "5"},
		{name: "colon pair", raw: "5:3"},
		{name: "current", raw: map[string]any{"current": float64(5)}},
		{name: "final", raw: map[string]any{"final": float64(5)}},
		{name: "pair array", raw: []any{float64(5), float64(3)}},
		{name: "side key", raw: map[string]any{"home": float64(5), "away": float64(3)}},
		{name: "points", raw: map[string]any{"points": map[string]any{"home": "5"}}},
		{name: "display", raw: map[string]any{"display": "5 - 3"}},
		{name: "suffix", raw: "5 (pen)"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractScore(tc.raw, SideHome)
			if got == nil || *got != 5 {
				t.Fatalf("ExtractScore(%v, home)=%v want 5", tc.raw, got)
			}
		})
	}
}

func TestExtractScore_AwaySide(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, *ExtractScore("5:3", SideAway))
	assert.Equal(t, 3, *ExtractScore([]any{float64(5), float64(3)}, SideAway))
	assert.Equal(t, 1, *ExtractScore("2 - 1", SideAway))
	assert.Equal(t, 0, *ExtractScore(map[string]any{"display": "2:0"}, SideAway))
	assert.Equal(t, 4, *ExtractScore(map[string]any{"points": map[string]any{"away": float64(4)}}, SideAway))
	assert.Equal(t, 2, *ExtractScore(map[string]any{"awayScore": map[string]any{"current": float64(2)}}, SideAway))
	assert.Nil(t, ExtractScore([]any{float64(5)}, SideAway))
}

func TestExtractScore_Unresolvable(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{
		nil,
		true,
		"",
		"-",
		"abc",
		"x:y",
		map[string]any{},
		map[string]any{"label": "final"},
		[]any{},
		struct{}{},
	} {
		assert.Nil(t, ExtractScore(raw, SideHome), "raw=%#v", raw)
	}
}

func TestExtractScore_RoundsHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, *ExtractScore(2.5, SideHome))
	assert.Equal(t, -3, *ExtractScore(-2.5, SideHome))
	assert.Equal(t, -1, *ExtractScore("-1", SideHome))
}

func TestExtractScore_OutOfRange(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{1e30, -1e30, math.MaxFloat64, "1e300", "99999999999999999999"} {
		assert.Nil(t, ExtractScore(raw, SideHome), "raw=%#v", raw)
	}
	assert.Equal(t, 4, *ExtractScore(map[string]any{"home": 1e30, "current": float64(4)}, SideHome))
}

func TestExtractScore_DeepNestingIsBounded(t *testing.T) {
	t.Parallel()

	var raw any = float64(1)
	for i := 0; i < 50; i++ {
		raw = map[string]any{"score": raw}
	}
	assert.Nil(t, ExtractScore(raw, SideHome))
}

func TestExtractTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
		want int64
		ok   bool
	}{
		{name: "seconds", raw: map[string]any{"startTimestamp": float64(1700000000)}, want: 1700000000, ok: true},
		{name: "milliseconds", raw: map[string]any{"timestamp": float64(1700000000000)}, want: 1700000000, ok: true},
		{name: "milliseconds round down", raw: map[string]any{"timestamp": float64(1700000000499)}, want: 1700000000, ok: true},
		{name: "milliseconds round up", raw: map[string]any{"timestamp": float64(1700000000500)}, want: 1700000001, ok: true},
		{name: "threshold kept", raw: map[string]any{"start": float64(1e12)}, want: 1000000000000, ok: true},
		{name: "numeric string ms", raw: map[string]any{"start_time": "1700000000000"}, want: 1700000000, ok: true},
		{name: "rfc3339", raw: map[string]any{"date": "2023-11-14T22:13:20Z"}, want: 1700000000, ok: true},
		{name: "offset", raw: map[string]any{"startDate": "2023-11-15T01:13:20+03:00"}, want: 1700000000, ok: true},
		{name: "provider layout", raw: map[string]any{"starting_at": "2023-11-14 22:13:20"}, want: 1700000000, ok: true},
		{name: "dotted date", raw: map[string]any{"date": "14.11.2023"}, want: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC).Unix(), ok: true},
		{name: "slashed date", raw: map[string]any{"date": "14/11/2023"}, want: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC).Unix(), ok: true},
		{name: "garbage falls through", raw: map[string]any{"startTimestamp": "soon", "kickoff": float64(1700000000)}, want: 1700000000, ok: true},
		{name: "out of range seconds", raw: map[string]any{"startTimestamp": 1e30}, ok: false},
		{name: "max float", raw: map[string]any{"startTimestamp": math.MaxFloat64}, ok: false},
		{name: "out of range falls through", raw: map[string]any{"startTimestamp": -1e30, "kickoff": float64(1700000000)}, want: 1700000000, ok: true},
		{name: "nothing usable", raw: map[string]any{"date": "tbd", "time": "20:45"}, ok: false},
		{name: "empty", raw: map[string]any{}, ok: false},
		{name: "nil map", raw: nil, ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ExtractTimestamp(tc.raw)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestExtractTeamName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Roma", ExtractTeamName(" Roma "))
	assert.Equal(t, "JUV", ExtractTeamName(map[string]any{"shortName": "JUV"}))
	assert.Equal(t, "Inter", ExtractTeamName(map[string]any{"name": "", "team_name": "Inter"}))
	assert.Equal(t, "ac-milan", ExtractTeamName(map[string]any{"slug": "ac-milan"}))
	assert.Empty(t, ExtractTeamName(float64(5)))
	assert.Empty(t, ExtractTeamName(nil))
}
