package app

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/matchboard/external/fixtureapi"
	"github.com/riskibarqy/matchboard/internal/config"
	"github.com/riskibarqy/matchboard/internal/interfaces/console"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
	"github.com/riskibarqy/matchboard/internal/platform/resilience"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

// App holds the wired components shared by every command.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Provider usecase.FixtureProvider
	Board    *usecase.Board
	Schedule *usecase.ScheduleService
	Renderer *console.Renderer
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.FixturesBaseURL) == "" {
		return nil, fmt.Errorf("fixtures base url cannot be empty")
	}

	client := fixtureapi.NewClient(fixtureapi.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FixturesTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:            cfg.FixturesBaseURL,
		MatchCenterBaseURL: cfg.MatchCenterBaseURL,
		MaxRetries:         cfg.FixturesMaxRetries,
		Logger:             logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FixturesCircuitEnabled,
			FailureThreshold: cfg.FixturesCircuitFailureCount,
			OpenTimeout:      cfg.FixturesCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FixturesCircuitHalfOpenMaxReq,
		},
		Vocabulary: cfg.Vocabulary,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Provider: client,
		Board: usecase.NewBoard(usecase.BoardConfig{
			Provider: client,
			Logger:   logger,
			Location: cfg.DisplayLocation,
		}),
		Schedule: usecase.NewScheduleService(client, cfg.Workers, cfg.DisplayLocation, logger),
		Renderer: console.NewRenderer(cfg.DisplayLocation),
	}, nil
}

// Console builds the interactive front-end. Fetches run in the background so
// a slow upstream never blocks the prompt.
func (a *App) Console(in io.Reader, out io.Writer) *console.Console {
	return console.New(console.Config{
		Board:      a.Board,
		Schedule:   a.Schedule,
		Renderer:   a.Renderer,
		In:         in,
		Out:        out,
		Logger:     a.Logger,
		Background: true,
	})
}
