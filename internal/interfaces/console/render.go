package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/matchboard/internal/domain/match"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

const (
	// KickoffLayout renders kickoff times, e.g. "01.05.2024, 21:00:00".
	KickoffLayout = "02.01.2006, 15:04:05"
	DayLayout     = "02.01.2006"

	loadingRow = "Loading..."
	emptyRow   = "No matches"
)

// Renderer draws board state as plain-text tables.
type Renderer struct {
	location *time.Location
}

func NewRenderer(location *time.Location) *Renderer {
	if location == nil {
		location = time.UTC
	}
	return &Renderer{location: location}
}

// Kickoff formats the start time in the display zone, or "" when unknown.
func (r *Renderer) Kickoff(m match.Match) string {
	start, ok := m.StartTime()
	if !ok {
		return ""
	}
	return start.In(r.location).Format(KickoffLayout)
}

// ScoreCell renders "h : a" with "-" for a side without a score.
func ScoreCell(m match.Match) string {
	return scoreText(m.HomeScore) + " : " + scoreText(m.AwayScore)
}

func scoreText(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func ErrorRow(err error) string {
	return "Error: " + err.Error()
}

// Fixtures renders the visible list of a board snapshot.
func (r *Renderer) Fixtures(w io.Writer, view usecase.BoardView) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "Fixtures %s: %d of %d matches%s\n",
		view.Date.Format(DayLayout), len(view.Matches), view.Total, optionsSummary(view.Options))

	switch {
	case view.Loading:
		buf.WriteString(loadingRow + "\n")
	case view.Err != nil:
		buf.WriteString(ErrorRow(view.Err) + "\n")
	case len(view.Matches) == 0:
		buf.WriteString(emptyRow + "\n")
	default:
		tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tTIME\tLEAGUE\tHOME\tSCORE\tAWAY\tSTATUS")
		for i, m := range view.Matches {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1,
				r.Kickoff(m),
				cell(m.Tournament.Name),
				cell(m.HomeName()),
				ScoreCell(m),
				cell(m.AwayName()),
				cell(m.Status.Description),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := w.Write(buf.B)
	return err
}

func optionsSummary(opts usecase.ViewOptions) string {
	parts := make([]string, 0, 5)
	if opts.League != "" {
		parts = append(parts, "league="+opts.League)
	}
	if opts.Country != "" {
		parts = append(parts, "country="+opts.Country)
	}
	if opts.Search != "" {
		parts = append(parts, "search="+opts.Search)
	}
	if opts.LiveOnly {
		parts = append(parts, "live")
	}
	if opts.Sort != "" && match.ParseSortKey(opts.Sort) != match.SortByTime {
		parts = append(parts, "sort="+opts.Sort)
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

// List renders a titled list of names, one per line.
func (r *Renderer) List(w io.Writer, title string, names []string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "%s (%d)\n", title, len(names))
	for _, name := range names {
		buf.WriteString("  " + name + "\n")
	}
	_, err := w.Write(buf.B)
	return err
}

// MatchCenter renders the detail of the selected match.
func (r *Renderer) MatchCenter(w io.Writer, view usecase.BoardView) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if view.Selected == nil {
		buf.WriteString("No match selected\n")
		_, err := w.Write(buf.B)
		return err
	}

	m := *view.Selected
	home, away := teamLabel(m.HomeName(), "Home"), teamLabel(m.AwayName(), "Away")
	fmt.Fprintf(buf, "%s %s %s", home, ScoreCell(m), away)
	if details := joinNonEmpty(", ", m.Tournament.Name, r.Kickoff(m), m.Status.Description); details != "" {
		fmt.Fprintf(buf, "  (%s)", details)
	}
	buf.WriteString("\n")

	switch {
	case view.CenterLoading:
		buf.WriteString(loadingRow + "\n")
	case view.CenterErr != nil:
		buf.WriteString(ErrorRow(view.CenterErr) + "\n")
	case view.Center != nil:
		if err := r.writeCenter(buf, *view.Center, home, away); err != nil {
			return err
		}
	}

	_, err := w.Write(buf.B)
	return err
}

func (r *Renderer) writeCenter(buf *bytebufferpool.ByteBuffer, center usecase.MatchCenter, home, away string) error {
	stats := center.Stats
	fmt.Fprintf(buf, "\nHead to head: %d meetings, %d with a result\n", stats.Total, stats.Evaluated)
	if stats.Evaluated > 0 {
		fmt.Fprintf(buf, "  %s wins: %d (%s)  Draws: %d  %s wins: %d (%s)\n",
			home, stats.HomeWins, percentText(stats.HomeWinPct),
			stats.Draws,
			away, stats.AwayWins, percentText(stats.AwayWinPct),
		)
		fmt.Fprintf(buf, "  Avg goals: %s total, %s %s, %s %s\n",
			averageText(stats.AvgTotal),
			averageText(stats.AvgHome), home,
			averageText(stats.AvgAway), away,
		)
	}
	if len(center.HeadToHead) > 0 {
		tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
		for _, m := range center.HeadToHead {
			winner, ok := match.ResolveWinner(m, center.Match.HomeTeam, center.Match.AwayTeam)
			if !ok {
				winner = "-"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", r.Kickoff(m), cell(m.HomeName()), ScoreCell(m), cell(m.AwayName()), winner)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if err := r.writeForm(buf, home, center.HomeForm); err != nil {
		return err
	}
	return r.writeForm(buf, away, center.AwayForm)
}

func (r *Renderer) writeForm(buf *bytebufferpool.ByteBuffer, team string, entries []match.FormEntry) error {
	fmt.Fprintf(buf, "\n%s recent form: %s\n", team, formText(entries))
	if len(entries) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
			e.Outcome.Letter(), r.Kickoff(e.Match), cell(e.Match.HomeName()), ScoreCell(e.Match), cell(e.Match.AwayName()))
	}
	return tw.Flush()
}

// Week renders a multi-day overview.
func (r *Renderer) Week(w io.Writer, days []usecase.DaySchedule) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tMATCHES\tLIVE\tLEAGUES\tFIRST KICKOFF")
	for _, day := range days {
		if day.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\n", day.Date.Format(DayLayout), ErrorRow(day.Err))
			continue
		}
		first := "-"
		if len(day.Matches) > 0 {
			if kickoff := r.Kickoff(day.Matches[0]); kickoff != "" {
				first = kickoff
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", day.Date.Format(DayLayout), len(day.Matches), day.Live, len(day.Leagues), first)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := w.Write(buf.B)
	return err
}

func formText(entries []match.FormEntry) string {
	if len(entries) == 0 {
		return "no matches"
	}
	return match.FormString(entries)
}

func percentText(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + "%"
}

func averageText(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// cell keeps tabs and newlines from upstream text out of the table layout.
func cell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func teamLabel(name, fallback string) string {
	if name = cell(name); name != "" {
		return name
	}
	return fallback
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
