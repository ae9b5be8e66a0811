// Package console is the interactive terminal front-end of the board.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/riskibarqy/matchboard/internal/platform/logging"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

const (
	prompt          = "> "
	defaultWeekDays = 7
)

const helpText = `Commands:
  date [YYYY-MM-DD|DD.MM.YYYY|today|+N|-N]  load fixtures of a day
  refresh                                  reload the current day
  league [name]                            filter by league, empty clears
  country [name]                           filter by country, empty clears
  search [text]                            filter by team name, empty clears
  live [on|off]                            only matches in progress
  sort [time|league|country|status]        change the order
  list                                     show the fixture list
  leagues                                  list leagues of the day
  countries                                list countries of the day
  open <row|id>                            open the match center
  close                                    close the match center
  week [days]                              overview of the coming days
  help                                     show this help
  quit                                     leave
`

type Config struct {
	Board    *usecase.Board
	Schedule *usecase.ScheduleService
	Renderer *Renderer
	In       io.Reader
	Out      io.Writer
	Logger   *logging.Logger

	// Background runs fetches on goroutines so the prompt stays responsive.
	Background bool
}

type Console struct {
	board      *usecase.Board
	schedule   *usecase.ScheduleService
	renderer   *Renderer
	in         io.Reader
	logger     *logging.Logger
	background bool

	outMu sync.Mutex
	out   io.Writer

	inflight sync.WaitGroup
}

func New(cfg Config) *Console {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NewRenderer(nil)
	}
	return &Console{
		board:      cfg.Board,
		schedule:   cfg.Schedule,
		renderer:   renderer,
		in:         cfg.In,
		out:        cfg.Out,
		logger:     logger.Named("console"),
		background: cfg.Background,
	}
}

// Run loads today's fixtures and then reads commands until quit or EOF.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		// pending fetches still render; cancelling ctx aborts them early
		c.inflight.Wait()
		cancel()
	}()

	c.print("matchboard: type help for commands\n")
	if err := c.fetchFixtures(func() (func() error, error) {
		return c.board.PrepareRefresh(ctx), nil
	}); err != nil {
		c.reportError(err)
	}

	scanner := bufio.NewScanner(c.in)
	for {
		c.print(prompt)
		if !scanner.Scan() {
			break
		}
		quit, err := c.Execute(ctx, scanner.Text())
		if err != nil {
			c.reportError(err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// Execute runs one command line. It reports true when the user asked to quit.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	c.logger.DebugContext(ctx, "console command", "command", name)

	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		c.print(helpText)
		return false, nil
	case "date":
		day, err := ParseDate(rest, c.board.Today())
		if err != nil {
			return false, err
		}
		return false, c.fetchFixtures(func() (func() error, error) {
			return c.board.PrepareDate(ctx, day)
		})
	case "refresh":
		return false, c.fetchFixtures(func() (func() error, error) {
			return c.board.PrepareRefresh(ctx), nil
		})
	case "league", "country", "search":
		opts := c.board.Options()
		switch name {
		case "league":
			opts.League = rest
		case "country":
			opts.Country = rest
		default:
			opts.Search = rest
		}
		return false, c.applyOptions(ctx, opts)
	case "live":
		opts := c.board.Options()
		switch strings.ToLower(rest) {
		case "":
			opts.LiveOnly = !opts.LiveOnly
		case "on", "true", "yes", "1":
			opts.LiveOnly = true
		case "off", "false", "no", "0":
			opts.LiveOnly = false
		default:
			return false, fmt.Errorf("%w: live expects on or off", usecase.ErrInvalidInput)
		}
		return false, c.applyOptions(ctx, opts)
	case "sort":
		opts := c.board.Options()
		opts.Sort = strings.ToLower(rest)
		return false, c.applyOptions(ctx, opts)
	case "list":
		return false, c.renderFixtures()
	case "leagues":
		return false, c.render(func(w io.Writer) error {
			return c.renderer.List(w, "Leagues", c.board.Snapshot().Leagues)
		})
	case "countries":
		return false, c.render(func(w io.Writer) error {
			return c.renderer.List(w, "Countries", c.board.Snapshot().Countries)
		})
	case "open":
		return false, c.openMatch(ctx, rest)
	case "close":
		c.board.CloseMatch()
		return false, c.renderFixtures()
	case "week":
		return false, c.week(ctx, rest)
	default:
		return false, fmt.Errorf("%w: unknown command %q, try help", usecase.ErrInvalidInput, name)
	}
}

func (c *Console) applyOptions(ctx context.Context, opts usecase.ViewOptions) error {
	if err := c.board.SetOptions(ctx, opts); err != nil {
		return err
	}
	return c.renderFixtures()
}

// fetchFixtures runs a prepared load and renders the list. Fetch failures are
// part of the board state and show up as the error row, so only input errors
// are returned.
func (c *Console) fetchFixtures(prepare func() (func() error, error)) error {
	return c.run(prepare, func() error {
		view := c.board.Snapshot()
		if c.background && view.Loading {
			// a newer request is still running and will render
			return nil
		}
		return c.render(func(w io.Writer) error { return c.renderer.Fixtures(w, view) })
	})
}

// openMatch accepts a row of the visible list or a match id.
func (c *Console) openMatch(ctx context.Context, ref string) error {
	if ref == "" {
		return fmt.Errorf("%w: open expects a row number or match id", usecase.ErrInvalidInput)
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.board.Visible()) {
		ref = "#" + ref
	}

	return c.run(func() (func() error, error) {
		return c.board.PrepareOpen(ctx, ref)
	}, func() error {
		view := c.board.Snapshot()
		if c.background && (view.CenterLoading || view.Selected == nil) {
			return nil
		}
		return c.render(func(w io.Writer) error { return c.renderer.MatchCenter(w, view) })
	})
}

func (c *Console) week(ctx context.Context, rest string) error {
	if c.schedule == nil {
		return fmt.Errorf("%w: week overview is not available", usecase.ErrInvalidInput)
	}
	days := defaultWeekDays
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("%w: week expects a number of days", usecase.ErrInvalidInput)
		}
		days = n
	}

	from := c.board.Date()
	var (
		overview    []usecase.DaySchedule
		overviewErr error
	)
	return c.run(func() (func() error, error) {
		return func() error {
			overview, overviewErr = c.schedule.Overview(ctx, from, days)
			return nil
		}, nil
	}, func() error {
		if overviewErr != nil {
			return overviewErr
		}
		return c.render(func(w io.Writer) error { return c.renderer.Week(w, overview) })
	})
}

// run prepares a load on the calling goroutine, so requests are ordered the way
// commands were typed, then executes it, in the background when configured,
// and finally calls show. Errors the board keeps as state are not reported
// twice.
func (c *Console) run(prepare func() (func() error, error), show func() error) error {
	load, err := prepare()
	if err != nil {
		return err
	}
	task := func() error {
		if err := load(); err != nil && !isStateError(err) {
			return err
		}
		return show()
	}

	if !c.background {
		return task()
	}

	c.print(loadingRow + "\n")
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if err := task(); err != nil && !errors.Is(err, context.Canceled) {
			c.reportError(err)
		}
	}()
	return nil
}

// isStateError reports upstream failures, which the board records per flow.
func isStateError(err error) bool {
	return !errors.Is(err, usecase.ErrInvalidInput) &&
		!errors.Is(err, usecase.ErrMatchNotFound) &&
		!errors.Is(err, context.Canceled)
}

func (c *Console) renderFixtures() error {
	view := c.board.Snapshot()
	return c.render(func(w io.Writer) error { return c.renderer.Fixtures(w, view) })
}

func (c *Console) render(fn func(io.Writer) error) error {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	return fn(c.out)
}

func (c *Console) print(s string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) reportError(err error) {
	c.print(ErrorRow(err) + "\n")
}
