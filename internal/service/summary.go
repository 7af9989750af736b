package service

import (
	"fmt"
	"time"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/cache"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/model"
)

// LogSource is the read capability the summary service needs from the
// persistence layer. Both queries take a half-open [from, to) interval.
type LogSource interface {
	FetchLogs(userID int64, from, to time.Time) ([]model.MealLogEntry, error)
	FetchAggregateTotals(userID int64, from, to time.Time) (model.MacroTotals, error)
}

// TargetProvider resolves a user's daily macro targets, falling back to a
// system default when the user has none.
type TargetProvider interface {
	TargetsFor(userID int64) (model.MacroTotals, error)
}

// DefaultCacheTTL bounds how long an identical (user, range) summary is
// served without recomputing.
const DefaultCacheTTL = time.Minute

// Service composes range resolution, log fetching, aggregation, and the
// summary cache. The cache is injected, never a package-level singleton,
// so callers and tests own its lifecycle.
type Service struct {
	source  LogSource
	targets TargetProvider
	cache   *cache.Cache

	// TTL and Now are settable before first use; tests pin Now to get
	// deterministic "today" resolution.
	TTL time.Duration
	Now func() time.Time
}

func NewService(source LogSource, targets TargetProvider, c *cache.Cache) *Service {
	return &Service{
		source:  source,
		targets: targets,
		cache:   c,
		TTL:     DefaultCacheTTL,
		Now:     time.Now,
	}
}

// GetDashboardSummary resolves the requested period in the caller's
// timezone and returns the cached or freshly aggregated summary. A range
// resolution failure aborts before any I/O; data-source failures
// propagate unchanged and nothing partial is ever cached.
func (s *Service) GetDashboardSummary(userID int64, period, timezone, from, to string) (*model.DashboardSummary, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id must be > 0")
	}
	rng, err := ResolveRange(s.Now(), period, timezone, from, to)
	if err != nil {
		return nil, err
	}

	key := cache.Key{UserID: userID, Fragment: rng.CacheKey()}
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.DashboardSummary), nil
	}

	logs, err := s.source.FetchLogs(userID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	// "Today" is always fetched for the user's current day, independent
	// of the requested range, even when the range already covers today.
	todayRng, err := ResolveRange(s.Now(), PeriodToday, timezone, "", "")
	if err != nil {
		return nil, err
	}
	todayTotals, err := s.source.FetchAggregateTotals(userID, todayRng.From, todayRng.To)
	if err != nil {
		return nil, err
	}

	targets, err := s.targets.TargetsFor(userID)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(logs, rng, targets, todayTotals)
	summary.GeneratedAt = s.Now()

	s.cache.Set(key, summary, s.TTL)
	return summary, nil
}

// GetCalorieTrend returns the gap-filled daily calorie series for the
// mode's span. Trends are cheap single-metric passes and are not cached.
func (s *Service) GetCalorieTrend(userID int64, mode, timezone, locale string, dailyTarget float64) (*model.CalorieTrend, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id must be > 0")
	}
	span, err := ResolveTrendSpan(s.Now(), mode, timezone)
	if err != nil {
		return nil, err
	}

	logs, err := s.source.FetchLogs(userID, span.From, span.To)
	if err != nil {
		return nil, err
	}

	target := dailyTarget
	if target <= 0 {
		t, err := s.targets.TargetsFor(userID)
		if err != nil {
			return nil, err
		}
		target = t.Calories
	}

	trend := ResampleCalorieTrend(logs, span, locale, target)
	return &trend, nil
}

// InvalidateSummaryCache evicts cached summaries after a write path
// mutates logs. A zero userID clears the whole cache; otherwise eviction
// is scoped to the affected user.
func (s *Service) InvalidateSummaryCache(userID int64) {
	if userID == 0 {
		s.cache.Clear()
		return
	}
	s.cache.InvalidateUser(userID)
}
