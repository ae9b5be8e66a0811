package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(v int64) *int64 { return &v }

func fixtureList() []Match {
	return []Match{
		{
			ID:             "1",
			StartTimestamp: ts(300),
			Tournament:     Tournament{Name: "Serie A"},
			CountryName:    "Italy",
			HomeTeam:       &Team{Name: "Lazio"},
			AwayTeam:       &Team{Name: "Roma"},
			Status:         Status{Description: "Not started", Type: "notstarted"},
		},
		{
			ID:             "2",
			StartTimestamp: ts(100),
			Tournament:     Tournament{Name: "LaLiga"},
			CountryName:    "Spain",
			HomeTeam:       &Team{Name: "Girona"},
			AwayTeam:       &Team{Name: "Sevilla"},
			Status:         Status{Description: "2nd half", Type: "inprogress"},
		},
		{
			ID:          "3",
			Tournament:  Tournament{Name: "Serie A"},
			CountryName: "Italy",
			HomeTeam:    &Team{Name: "Torino"},
			AwayTeam:    &Team{Name: "Juventus"},
			Status:      Status{Description: "Live"},
		},
		{
			ID:             "4",
			StartTimestamp: ts(200),
			Tournament:     Tournament{Name: "Ligue 1"},
			CountryName:    "France",
			HomeTeam:       &Team{Name: "Lyon"},
			AwayTeam:       &Team{Name: "Nice"},
			Status:         Status{Description: "Ended", Type: "finished"},
		},
	}
}

func ids(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	t.Parallel()

	list := fixtureList()

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(ApplyFilter(list, Filter{})))
	assert.Equal(t, []string{"1", "3"}, ids(ApplyFilter(list, Filter{League: "Serie A"})))
	assert.Equal(t, []string{"2", "3"}, ids(ApplyFilter(list, Filter{LiveOnly: true})))
	assert.Equal(t, []string{"3"}, ids(ApplyFilter(list, Filter{LiveOnly: true, League: "Serie A"})))
	assert.Equal(t, []string{"1"}, ids(ApplyFilter(list, Filter{Search: "ROM"})))
	assert.Equal(t, []string{"4"}, ids(ApplyFilter(list, Filter{Country: "france"})))
	assert.Empty(t, ApplyFilter(list, Filter{Search: "nobody"}))
}

func TestSortBy(t *testing.T) {
	t.Parallel()

	list := fixtureList()

	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(SortBy(list, SortByTime)))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(SortBy(list, SortByLeague)))
	assert.Equal(t, []string{"4", "1", "3", "2"}, ids(SortBy(list, SortByCountry)))
	// input must be left untouched
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(list))
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SortByLeague, ParseSortKey(" League "))
	assert.Equal(t, SortByTime, ParseSortKey("bogus"))
	assert.Equal(t, SortByTime, ParseSortKey(""))
}

func TestLeaguesAndCountries(t *testing.T) {
	t.Parallel()

	list := fixtureList()
	list = append(list, Match{Tournament: Tournament{Name: "  "}})

	require.Equal(t, []string{"LaLiga", "Ligue 1", "Serie A"}, Leagues(list))
	require.Equal(t, []string{"France", "Italy", "Spain"}, Countries(list))
}

func TestMatchIsLive(t *testing.T) {
	t.Parallel()

	assert.True(t, Match{Status: Status{Description: "LIVE"}}.IsLive())
	assert.True(t, Match{Status: Status{Type: "inProgress"}}.IsLive())
	assert.False(t, Match{Status: Status{Description: "Ended", Type: "finished"}}.IsLive())
}
