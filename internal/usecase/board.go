package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/matchboard/internal/domain/match"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
	"github.com/riskibarqy/matchboard/internal/platform/sequence"
)

// ViewOptions are the user-facing list controls.
type ViewOptions struct {
	League   string `validate:"max=200"`
	Country  string `validate:"max=100"`
	Search   string `validate:"max=100"`
	LiveOnly bool
	Sort     string `validate:"omitempty,oneof=time league country status"`
}

func (o ViewOptions) filter() match.Filter {
	return match.Filter{
		League:   strings.TrimSpace(o.League),
		Country:  strings.TrimSpace(o.Country),
		Search:   strings.TrimSpace(o.Search),
		LiveOnly: o.LiveOnly,
	}
}

// MatchCenter is the detail view of one selected match.
type MatchCenter struct {
	Match      match.Match
	HeadToHead []match.Match
	Stats      match.HeadToHeadStats
	HomeForm   []match.FormEntry
	AwayForm   []match.FormEntry
}

// BuildMatchCenter derives the detail view from the fetched role lists. The
// head-to-head list is narrowed to meetings of the two teams unless that would
// leave nothing, in which case the upstream list is trusted as is.
func BuildMatchCenter(m match.Match, data MatchCenterData) MatchCenter {
	h2h := match.FilterHeadToHead(data.HeadToHead, m.HomeTeam, m.AwayTeam)
	if len(h2h) == 0 {
		h2h = data.HeadToHead
	}
	return MatchCenter{
		Match:      m,
		HeadToHead: h2h,
		Stats:      match.ComputeHeadToHeadStats(h2h, m.HomeTeam, m.AwayTeam),
		HomeForm:   match.Form(data.HomeRecent, m.HomeTeam),
		AwayForm:   match.Form(data.AwayRecent, m.AwayTeam),
	}
}

// BoardView is a consistent copy of the board state for rendering.
type BoardView struct {
	Date      time.Time
	Loaded    bool
	Loading   bool
	Err       error
	Options   ViewOptions
	Total     int
	Matches   []match.Match
	Leagues   []string
	Countries []string

	Selected      *match.Match
	Center        *MatchCenter
	CenterLoading bool
	CenterErr     error
}

type BoardConfig struct {
	Provider FixtureProvider
	Logger   *logging.Logger
	Location *time.Location
	Now      func() time.Time
}

// Board owns the fixture list, the list controls and the match-center detail.
// Fixtures and detail are independent request flows; each response is applied
// only while its sequence token is current.
type Board struct {
	provider  FixtureProvider
	logger    *logging.Logger
	validator *validator.Validate
	location  *time.Location
	now       func() time.Time

	fixturesSeq sequence.Counter
	centerSeq   sequence.Counter

	mu              sync.RWMutex
	date            time.Time
	fixtures        []match.Match
	options         ViewOptions
	fixturesLoaded  bool
	fixturesLoading bool
	fixturesErr     error

	selected      *match.Match
	center        *MatchCenter
	centerLoading bool
	centerErr     error
}

func NewBoard(cfg BoardConfig) *Board {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	b := &Board{
		provider:  cfg.Provider,
		logger:    logger.Named("board"),
		validator: validator.New(),
		location:  location,
		now:       now,
	}
	b.date = b.Today()
	return b
}

// Today is the current calendar day in the board's time zone.
func (b *Board) Today() time.Time {
	return b.dayOf(b.now())
}

func (b *Board) dayOf(t time.Time) time.Time {
	y, m, d := t.In(b.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.location)
}

func (b *Board) Date() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.date
}

// SetDate switches the board to the day of date and loads its fixtures.
func (b *Board) SetDate(ctx context.Context, date time.Time) error {
	load, err := b.PrepareDate(ctx, date)
	if err != nil {
		return err
	}
	return load()
}

// PrepareDate switches the board to the day of date and supersedes every
// earlier fixtures request. The returned func performs the fetch and must be
// called exactly once, possibly on another goroutine.
func (b *Board) PrepareDate(ctx context.Context, date time.Time) (func() error, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	day := b.dayOf(date)
	return b.beginFixtures(ctx, &day), nil
}

// Refresh reloads the fixtures of the current date.
func (b *Board) Refresh(ctx context.Context) error {
	return b.PrepareRefresh(ctx)()
}

// PrepareRefresh is Refresh split like PrepareDate.
func (b *Board) PrepareRefresh(ctx context.Context) func() error {
	return b.beginFixtures(ctx, nil)
}

func (b *Board) beginFixtures(ctx context.Context, day *time.Time) func() error {
	ctx, span := startUsecaseSpan(ctx, "usecase.Board.loadFixtures")

	b.mu.Lock()
	if day != nil {
		b.date = *day
	}
	date := b.date
	reqCtx, token := b.fixturesSeq.Begin(ctx)
	b.fixturesLoading = true
	b.fixturesErr = nil
	b.mu.Unlock()

	return func() error {
		defer span.End()
		defer b.fixturesSeq.Finish(token)

		matches, err := b.provider.FetchFixtures(reqCtx, date)
		return b.applyFixtures(ctx, token, date, matches, err)
	}
}

func (b *Board) applyFixtures(ctx context.Context, token sequence.Token, date time.Time, matches []match.Match, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.fixturesSeq.IsCurrent(token) {
		b.logger.DebugContext(ctx, "discarding stale fixtures response",
			"token", uint64(token),
			"current", uint64(b.fixturesSeq.Current()),
			"date", date.Format(time.DateOnly),
		)
		return nil
	}

	b.fixturesLoading = false
	if err != nil {
		b.fixturesErr = fmt.Errorf("fetch fixtures: %w", err)
		b.logger.WarnContext(ctx, "fixtures fetch failed", "date", date.Format(time.DateOnly), "error", err)
		return b.fixturesErr
	}

	b.fixtures = matches
	b.fixturesLoaded = true
	b.logger.InfoContext(ctx, "fixtures loaded", "date", date.Format(time.DateOnly), "matches", len(matches))
	return nil
}

func (b *Board) Options() ViewOptions {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.options
}

// SetOptions replaces the list controls. Nothing is refetched.
func (b *Board) SetOptions(ctx context.Context, opts ViewOptions) error {
	if err := b.validator.StructCtx(ctx, opts); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	opts.Sort = string(match.ParseSortKey(opts.Sort))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.options = opts
	return nil
}

// Visible returns the filtered and sorted fixtures.
func (b *Board) Visible() []match.Match {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visibleLocked()
}

func (b *Board) visibleLocked() []match.Match {
	return match.SortBy(match.ApplyFilter(b.fixtures, b.options.filter()), match.ParseSortKey(b.options.Sort))
}

// OpenMatch selects a match of the current list and loads its match center.
// ref is the match id, or the 1-based row of the visible list prefixed with '#'.
func (b *Board) OpenMatch(ctx context.Context, ref string) error {
	load, err := b.PrepareOpen(ctx, ref)
	if err != nil {
		return err
	}
	return load()
}

// PrepareOpen selects the match synchronously and supersedes any detail
// request in flight. The returned func performs the fetch.
func (b *Board) PrepareOpen(ctx context.Context, ref string) (func() error, error) {
	ref = strings.TrimSpace(ref)
	if err := b.validator.VarCtx(ctx, ref, "required,max=64"); err != nil {
		return nil, fmt.Errorf("%w: match reference: %v", ErrInvalidInput, err)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.Board.loadCenter")

	b.mu.Lock()
	m, ok := b.lookupLocked(ref)
	if !ok {
		b.mu.Unlock()
		span.End()
		return nil, fmt.Errorf("%w: match=%s", ErrMatchNotFound, ref)
	}
	reqCtx, token := b.centerSeq.Begin(ctx)
	selected := m
	b.selected = &selected
	b.center = nil
	b.centerLoading = true
	b.centerErr = nil
	b.mu.Unlock()

	return func() error {
		defer span.End()
		defer b.centerSeq.Finish(token)

		data, err := b.provider.FetchMatchCenter(reqCtx, QueryForMatch(m))
		return b.applyCenter(ctx, token, m, data, err)
	}, nil
}

func (b *Board) lookupLocked(ref string) (match.Match, bool) {
	if row, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(row)
		visible := b.visibleLocked()
		if err != nil || n < 1 || n > len(visible) {
			return match.Match{}, false
		}
		return visible[n-1], true
	}
	for _, m := range b.fixtures {
		if m.ID != "" && m.ID == ref {
			return m, true
		}
	}
	return match.Match{}, false
}

func (b *Board) applyCenter(ctx context.Context, token sequence.Token, m match.Match, data MatchCenterData, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.centerSeq.IsCurrent(token) {
		b.logger.DebugContext(ctx, "discarding stale match center response",
			"token", uint64(token),
			"current", uint64(b.centerSeq.Current()),
			"match_id", m.ID,
		)
		return nil
	}

	b.centerLoading = false
	if err != nil {
		b.centerErr = fmt.Errorf("fetch match center: %w", err)
		b.logger.WarnContext(ctx, "match center fetch failed", "match_id", m.ID, "error", err)
		return b.centerErr
	}

	view := BuildMatchCenter(m, data)
	b.center = &view
	return nil
}

// CloseMatch drops the detail view. A response still in flight is discarded.
func (b *Board) CloseMatch() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.centerSeq.Invalidate()
	b.selected = nil
	b.center = nil
	b.centerLoading = false
	b.centerErr = nil
}

// MatchCenter returns the loaded detail view.
func (b *Board) MatchCenter() (MatchCenter, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch {
	case b.selected == nil:
		return MatchCenter{}, ErrNoMatchSelected
	case b.centerErr != nil:
		return MatchCenter{}, b.centerErr
	case b.center == nil:
		return MatchCenter{Match: *b.selected}, nil
	default:
		return *b.center, nil
	}
}

func (b *Board) Snapshot() BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	view := BoardView{
		Date:          b.date,
		Loaded:        b.fixturesLoaded,
		Loading:       b.fixturesLoading,
		Err:           b.fixturesErr,
		Options:       b.options,
		Total:         len(b.fixtures),
		Matches:       b.visibleLocked(),
		Leagues:       match.Leagues(b.fixtures),
		Countries:     match.Countries(b.fixtures),
		CenterLoading: b.centerLoading,
		CenterErr:     b.centerErr,
	}
	if b.selected != nil {
		selected := *b.selected
		view.Selected = &selected
	}
	if b.center != nil {
		center := *b.center
		view.Center = &center
	}
	return view
}
