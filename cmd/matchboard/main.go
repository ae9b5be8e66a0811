package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/matchboard/internal/app"
	"github.com/riskibarqy/matchboard/internal/config"
	"github.com/riskibarqy/matchboard/internal/interfaces/console"
	"github.com/riskibarqy/matchboard/internal/observability"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `usage: matchboard <command> [flags]

Commands:
  fixtures     print the fixtures of a day
  center       print the match center of one match
  week         print an overview of several days
  interactive  start the interactive console (default)

Run "matchboard <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	command := "interactive"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	if command == "help" || command == "-h" || command == "--help" {
		fmt.Fprint(stdout, usage)
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitFailure
	}

	logger := logging.New(stderr, cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return exitFailure
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return exitFailure
	}

	switch command {
	case "fixtures":
		err = runFixtures(ctx, a, args, stdout, stderr)
	case "center":
		err = runCenter(ctx, a, args, stdout, stderr)
	case "week":
		err = runWeek(ctx, a, args, stdout, stderr)
	case "interactive":
		err = runInteractive(ctx, a, stdin, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", command, usage)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	default:
		fmt.Fprintln(stderr, console.ErrorRow(err))
		return exitFailure
	}
}

var errUsage = errors.New("usage error")

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %s", errUsage, strings.Join(fs.Args(), " "))
	}
	return nil
}

func loadDay(ctx context.Context, a *app.App, raw string) error {
	day, err := console.ParseDate(raw, a.Board.Today())
	if err != nil {
		return err
	}
	return a.Board.SetDate(ctx, day)
}

func runFixtures(ctx context.Context, a *app.App, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("fixtures", stderr)
	date := fs.String("date", "today", "day to load: YYYY-MM-DD, DD.MM.YYYY, today, +N or -N")
	league := fs.String("league", "", "only this league")
	country := fs.String("country", "", "only this country")
	search := fs.String("search", "", "only teams whose name contains this text")
	live := fs.Bool("live", false, "only matches in progress")
	sortKey := fs.String("sort", "time", "order: time, league, country or status")
	listLeagues := fs.Bool("leagues", false, "print the leagues of the day instead of the matches")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := a.Board.SetOptions(ctx, usecase.ViewOptions{
		League:   *league,
		Country:  *country,
		Search:   *search,
		LiveOnly: *live,
		Sort:     *sortKey,
	}); err != nil {
		return err
	}
	if err := loadDay(ctx, a, *date); err != nil {
		return err
	}

	view := a.Board.Snapshot()
	if *listLeagues {
		return a.Renderer.List(stdout, "Leagues", view.Leagues)
	}
	return a.Renderer.Fixtures(stdout, view)
}

func runCenter(ctx context.Context, a *app.App, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("center", stderr)
	date := fs.String("date", "today", "day the match is played on")
	ref := fs.String("match", "", "match id, or #N for row N of the day's list")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*ref) == "" {
		return fmt.Errorf("%w: -match is required", errUsage)
	}

	if err := loadDay(ctx, a, *date); err != nil {
		return err
	}
	if err := a.Board.OpenMatch(ctx, *ref); err != nil {
		return err
	}
	return a.Renderer.MatchCenter(stdout, a.Board.Snapshot())
}

func runWeek(ctx context.Context, a *app.App, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("week", stderr)
	date := fs.String("date", "today", "first day of the overview")
	days := fs.Int("days", 7, "number of days")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	from, err := console.ParseDate(*date, a.Board.Today())
	if err != nil {
		return err
	}
	overview, err := a.Schedule.Overview(ctx, from, *days)
	if err != nil {
		return err
	}
	return a.Renderer.Week(stdout, overview)
}

func runInteractive(ctx context.Context, a *app.App, stdin io.Reader, stdout io.Writer) error {
	stopProfiling, err := observability.InitPyroscope(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			a.Logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	err = a.Console(stdin, stdout).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
