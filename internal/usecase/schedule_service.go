package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/matchboard/internal/domain/match"
	"github.com/riskibarqy/matchboard/internal/platform/logging"
)

const maxOverviewDays = 14

// DaySchedule is the fixture list of one day of an overview. Err is set when
// that day could not be fetched; the other days are unaffected.
type DaySchedule struct {
	Date     time.Time
	Matches  []match.Match
	Live     int
	Leagues  []string
	Duration time.Duration
	Err      error
}

// ScheduleService fetches several days at once. It never touches Board state.
type ScheduleService struct {
	provider FixtureProvider
	workers  int
	location *time.Location
	logger   *logging.Logger
}

func NewScheduleService(provider FixtureProvider, workers int, location *time.Location, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}
	return &ScheduleService{
		provider: provider,
		workers:  max(workers, 1),
		location: location,
		logger:   logger.Named("schedule"),
	}
}

// Overview returns days consecutive days starting at from, in date order.
func (s *ScheduleService) Overview(ctx context.Context, from time.Time, days int) ([]DaySchedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Overview")
	defer span.End()

	if from.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}
	if days < 1 || days > maxOverviewDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, maxOverviewDays)
	}

	y, m, d := from.In(s.location).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.location)

	out := make([]DaySchedule, days)
	for i := range out {
		out[i].Date = start.AddDate(0, 0, i)
	}

	pool, err := ants.NewPool(min(s.workers, days))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range out {
		row := &out[i]
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			s.fetchDay(ctx, row)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, row := range out {
		if row.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "schedule overview completed", "from", start.Format(time.DateOnly), "days", days, "failed", failed)
	return out, nil
}

func (s *ScheduleService) fetchDay(ctx context.Context, row *DaySchedule) {
	started := time.Now()
	matches, err := s.provider.FetchFixtures(ctx, row.Date)
	row.Duration = time.Since(started)
	if err != nil {
		row.Err = fmt.Errorf("fetch fixtures for %s: %w", row.Date.Format(time.DateOnly), err)
		s.logger.WarnContext(ctx, "schedule day failed", "date", row.Date.Format(time.DateOnly), "error", err)
		return
	}

	row.Matches = match.SortBy(matches, match.SortByTime)
	row.Leagues = match.Leagues(matches)
	for _, m := range matches {
		if m.IsLive() {
			row.Live++
		}
	}
}
