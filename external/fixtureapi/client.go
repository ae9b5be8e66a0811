// Package fixtureapi fetches fixtures and match-center payloads over HTTP and
// hands back normalized matches.
package fixtureapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/matchboard/internal/domain/match"
	"github.com/riskibarqy/matchboard/internal/normalize"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
	"github.com/riskibarqy/matchboard/internal/platform/resilience"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

const (
	// DateLayout is the date format the fixtures endpoint expects.
	DateLayout = "02/01/2006"

	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 6 << 20
	modeMatchCenter  = "match-center"
)

var errUpstreamTransient = crerr.New("fixtures api transient failure")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fixtures api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("fixtures api returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return isRetryableStatus(e.StatusCode)
}

type ClientConfig struct {
	HTTPClient         *http.Client
	BaseURL            string
	MatchCenterBaseURL string
	Timeout            time.Duration
	MaxRetries         int
	RetryBackoff       time.Duration
	Logger             *logging.Logger
	CircuitBreaker     resilience.CircuitBreakerConfig
	Vocabulary         normalize.Vocabulary
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	centerURL      string
	maxRetries     int
	retryBackoff   time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	vocab          normalize.Vocabulary
	flight         singleflight.Group
}

var _ usecase.FixtureProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("fixtureapi")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	centerURL := strings.TrimSpace(cfg.MatchCenterBaseURL)
	if centerURL == "" {
		centerURL = baseURL
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	vocab := cfg.Vocabulary
	if vocab == nil {
		vocab = normalize.DefaultVocabulary()
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("fixtures api circuit breaker changed state", "from", from, "to", to)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		centerURL:      centerURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   backoff,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		vocab:          vocab,
	}
}

// FetchFixtures loads and normalizes the fixtures of one calendar day.
func (c *Client) FetchFixtures(ctx context.Context, date time.Time) ([]match.Match, error) {
	values := url.Values{}
	values.Set("date", date.Format(DateLayout))

	var payload any
	if err := c.doJSON(ctx, c.baseURL, values, &payload); err != nil {
		return nil, err
	}

	raws := normalize.UnwrapFixtures(payload)
	matches := normalize.NormalizeRecords(raws)
	c.logger.DebugContext(ctx, "fixtures fetched", "date", values.Get("date"), "records", len(raws), "matches", len(matches))
	return matches, nil
}

// FetchMatchCenter loads the head-to-head and recent-form lists for a match.
func (c *Client) FetchMatchCenter(ctx context.Context, query usecase.MatchCenterQuery) (usecase.MatchCenterData, error) {
	var payload any
	if err := c.doJSON(ctx, c.centerURL, matchCenterValues(query), &payload); err != nil {
		return usecase.MatchCenterData{}, err
	}

	center := normalize.UnwrapMatchCenter(payload, c.vocab)
	return usecase.MatchCenterData{
		HeadToHead: normalize.NormalizeRecords(center.HeadToHead),
		HomeRecent: normalize.NormalizeRecords(center.HomeRecent),
		AwayRecent: normalize.NormalizeRecords(center.AwayRecent),
	}, nil
}

func matchCenterValues(query usecase.MatchCenterQuery) url.Values {
	values := url.Values{}
	values.Set("mode", modeMatchCenter)
	setIfPresent(values, "matchId", query.MatchID)
	if id := strings.TrimSpace(query.HomeID); id != "" {
		values.Set("homeId", id)
	} else {
		setIfPresent(values, "homeName", query.HomeName)
	}
	if id := strings.TrimSpace(query.AwayID); id != "" {
		values.Set("awayId", id)
	} else {
		setIfPresent(values, "awayName", query.AwayName)
	}
	return values
}

func setIfPresent(values url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		values.Set(key, value)
	}
}

// doJSON coalesces identical in-flight requests. The shared request runs
// detached from any single caller so that a superseded caller does not fail
// the ones still waiting; each caller stops waiting when its own ctx ends.
func (c *Client) doJSON(ctx context.Context, baseURL string, values url.Values, target any) error {
	fullURL := baseURL
	if encoded := values.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(baseURL, "?") {
			sep = "&"
		}
		fullURL += sep + encoded
	}

	detached := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(fullURL, func() (any, error) {
		return c.fetch(detached, fullURL)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return res.Err
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", res.Val)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode fixtures api payload (%s)", abbreviateBody(raw))
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if !c.circuitEnabled {
		return c.executeRequest(ctx, fullURL)
	}

	var raw []byte
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, isCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "fixtures api circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: fixtures provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(fmt.Errorf("%w: send request: %w", usecase.ErrDependencyUnavailable, err), errUpstreamTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(fmt.Errorf("%w: read response body: %w", usecase.ErrDependencyUnavailable, readErr), errUpstreamTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				statusErr := &StatusError{StatusCode: resp.StatusCode, Body: abbreviateBody(raw)}
				if !statusErr.Temporary() {
					c.logger.WarnContext(ctx, "fixtures api rejected request", "url", fullURL, "status", resp.StatusCode)
					return nil, statusErr
				}
				lastErr = crerr.Mark(statusErr, errUpstreamTransient)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("fixtures api request failed")
	}
	c.logger.WarnContext(ctx, "fixtures api request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errUpstreamTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const maxLen = 240
	body := strings.TrimSpace(string(raw))
	if len(body) <= maxLen {
		return body
	}
	return body[:maxLen] + "..."
}
