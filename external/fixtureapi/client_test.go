package fixtureapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/matchboard/internal/platform/logging"
	"github.com/riskibarqy/matchboard/internal/platform/resilience"
	"github.com/riskibarqy/matchboard/internal/usecase"
)

var testJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := testJSON.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, configure func(*ClientConfig)) (*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		HTTPClient:   srv.Client(),
		BaseURL:      srv.URL + "/api/fixtures",
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
	}
	if configure != nil {
		configure(&cfg)
	}
	return NewClient(cfg), &calls
}

func TestFetchFixtures_SendsDateAndNormalizes(t *testing.T) {
	t.Parallel()

	var gotDate, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("date")
		writeJSON(t, w, http.StatusOK, map[string]any{
			"events": []any{
				map[string]any{
					"id":             101,
					"startTimestamp": 1700000000,
					"tournament":     map[string]any{"name": "Serie A (Italy)"},
					"homeTeam":       map[string]any{"id": 1, "name": "Lazio"},
					"awayTeam":       map[string]any{"id": 2, "name": "Roma"},
					"homeScore":      map[string]any{"current": 2},
					"awayScore":      map[string]any{"current": 0},
					"status":         map[string]any{"description": "Ended", "type": "finished"},
				},
			},
		})
	}, nil)

	matches, err := client.FetchFixtures(context.Background(), time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "/api/fixtures", gotPath)
	assert.Equal(t, "05/03/2024", gotDate)
	require.Len(t, matches, 1)
	assert.Equal(t, "101", matches[0].ID)
	assert.Equal(t, "Italy", matches[0].CountryName)
	assert.Equal(t, "Lazio", matches[0].HomeName())
	require.NotNil(t, matches[0].HomeScore)
	assert.Equal(t, 2, *matches[0].HomeScore)
}

func TestFetchFixtures_UnknownShapeIsEmpty(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "nothing today"})
	}, nil)

	matches, err := client.FetchFixtures(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFetchFixtures_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		maxRetries int
		wantCalls  int32
		transient  bool
	}{
		{name: "not found is not retried", status: http.StatusNotFound, maxRetries: 2, wantCalls: 1},
		{name: "server error without retries", status: http.StatusServiceUnavailable, wantCalls: 1, transient: true},
		{name: "server error retried", status: http.StatusBadGateway, maxRetries: 2, wantCalls: 3, transient: true},
		{name: "rate limit retried", status: http.StatusTooManyRequests, maxRetries: 1, wantCalls: 2, transient: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tc.status, map[string]any{"error": "upstream says no"})
			}, func(cfg *ClientConfig) {
				cfg.MaxRetries = tc.maxRetries
			})

			_, err := client.FetchFixtures(context.Background(), time.Now())
			require.Error(t, err)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr), "error %v is not a StatusError", err)
			assert.Equal(t, tc.status, statusErr.StatusCode)
			assert.Contains(t, err.Error(), strconv.Itoa(tc.status))
			assert.Contains(t, statusErr.Body, "upstream says no")
			assert.Equal(t, tc.transient, statusErr.Temporary())
			assert.Equal(t, tc.wantCalls, calls.Load())
		})
	}
}

func TestFetchFixtures_InvalidJSON(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}, nil)

	_, err := client.FetchFixtures(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode fixtures api payload")
}

func TestFetchFixtures_NetworkFailureIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(ClientConfig{BaseURL: baseURL, Timeout: time.Second, Logger: logging.NewNop()})
	_, err := client.FetchFixtures(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.True(t, isCircuitFailure(err))
}

func TestFetchFixtures_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"error": "boom"})
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchFixtures(context.Background(), time.Now())
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
	}

	_, err := client.FetchFixtures(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, resilience.CircuitStateOpen, client.breaker.State())
}

func TestFetchFixtures_ClientErrorsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{"error": "bad date"})
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}
	})

	for i := 0; i < 3; i++ {
		_, err := client.FetchFixtures(context.Background(), time.Now())
		require.Error(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, resilience.CircuitStateClosed, client.breaker.State())
}

func TestFetchFixtures_CallerCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		writeJSON(t, w, http.StatusOK, []any{})
	}, nil)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.FetchFixtures(ctx, time.Now())
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not return after cancellation")
	}
}

func TestFetchMatchCenter_QueryAndRoles(t *testing.T) {
	t.Parallel()

	var query map[string][]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"h2h": []any{
					map[string]any{"id": 1, "homeTeam": map[string]any{"id": 10, "name": "Lazio"}, "awayTeam": map[string]any{"name": "Roma"}, "homeScore": 1, "awayScore": 1},
				},
				"homeLastMatches": map[string]any{
					"events": []any{
						map[string]any{"id": 2, "homeTeam": map[string]any{"id": 10, "name": "Lazio"}, "awayTeam": map[string]any{"name": "Milan"}},
						map[string]any{"id": 3, "homeTeam": map[string]any{"name": "Inter"}, "awayTeam": map[string]any{"id": 10, "name": "Lazio"}},
					},
				},
				"awayForm": []any{
					map[string]any{"id": 4, "homeTeam": map[string]any{"name": "Roma"}, "awayTeam": map[string]any{"name": "Napoli"}},
				},
			},
		})
	}, func(cfg *ClientConfig) {
		cfg.MatchCenterBaseURL = cfg.BaseURL + "?source=web"
	})

	data, err := client.FetchMatchCenter(context.Background(), usecase.MatchCenterQuery{
		MatchID:  "55",
		HomeID:   "10",
		HomeName: "Lazio",
		AwayName: "Roma",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"match-center"}, query["mode"])
	assert.Equal(t, []string{"web"}, query["source"])
	assert.Equal(t, []string{"55"}, query["matchId"])
	assert.Equal(t, []string{"10"}, query["homeId"])
	assert.NotContains(t, query, "homeName")
	assert.NotContains(t, query, "awayId")
	assert.Equal(t, []string{"Roma"}, query["awayName"])

	require.Len(t, data.HeadToHead, 1)
	require.Len(t, data.HomeRecent, 2)
	require.Len(t, data.AwayRecent, 1)
	assert.Equal(t, "3", data.HomeRecent[1].ID)
	assert.Equal(t, "Napoli", data.AwayRecent[0].AwayName())
}
