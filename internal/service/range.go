package service

import (
	"fmt"
	"strings"
	"time"
)

const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodThisWeek  = "thisWeek"
	PeriodLastWeek  = "lastWeek"
	PeriodCustom    = "custom"
)

const (
	TrendModeDaily   = "daily"
	TrendModeWeekly  = "weekly"
	TrendModeMonthly = "monthly"
)

const dateLayout = "2006-01-02"

// maxCustomRangeDays bounds how much a single custom summary may scan.
const maxCustomRangeDays = 31

// InvalidRangeError reports a request that could never resolve to a valid
// interval: bad period key, malformed or missing custom dates, end before
// start, or a span over the custom limit. It is surfaced to the caller
// verbatim and never retried or cached.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid range: " + e.Reason
}

func invalidRangef(format string, args ...any) *InvalidRangeError {
	return &InvalidRangeError{Reason: fmt.Sprintf(format, args...)}
}

// ResolvedRange is a half-open [From, To) instant interval whose bounds
// are local midnights in Location. Day buckets derived downstream line up
// exactly with these bounds.
type ResolvedRange struct {
	Period   string
	From     time.Time
	To       time.Time
	Location *time.Location
}

// CacheKey is the deterministic per-range fragment of a summary cache
// key. Custom ranges embed their dates so two different explicit spans
// never collide; the timezone is included because the same period key
// resolves to different instants per timezone.
func (r ResolvedRange) CacheKey() string {
	if r.Period == PeriodCustom {
		return fmt.Sprintf("custom:%s:%s:%s", r.From.Format(dateLayout), r.To.Format(dateLayout), r.Location.String())
	}
	return r.Period + ":" + r.Location.String()
}

// Days counts the local calendar days covered by the range.
func (r ResolvedRange) Days() int {
	days := 0
	for day := r.From; day.Before(r.To); day = day.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// ResolveRange turns a period key plus timezone (and, for custom, a pair
// of YYYY-MM-DD dates) into an absolute interval. "now" is projected into
// the requested timezone first, so two users asking for "today" at the
// same instant can legitimately receive different calendar days. Weeks
// start on Monday.
func ResolveRange(now time.Time, period, timezone, from, to string) (ResolvedRange, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return ResolvedRange{}, err
	}

	localNow := now.In(loc)
	today := beginningOfDay(localNow)

	switch strings.TrimSpace(period) {
	case PeriodToday:
		return ResolvedRange{Period: PeriodToday, From: today, To: today.AddDate(0, 0, 1), Location: loc}, nil
	case PeriodYesterday:
		return ResolvedRange{Period: PeriodYesterday, From: today.AddDate(0, 0, -1), To: today, Location: loc}, nil
	case PeriodThisWeek:
		start := beginningOfWeek(localNow)
		return ResolvedRange{Period: PeriodThisWeek, From: start, To: start.AddDate(0, 0, 7), Location: loc}, nil
	case PeriodLastWeek:
		start := beginningOfWeek(localNow).AddDate(0, 0, -7)
		return ResolvedRange{Period: PeriodLastWeek, From: start, To: start.AddDate(0, 0, 7), Location: loc}, nil
	case PeriodCustom:
		return resolveCustomRange(loc, from, to)
	default:
		return ResolvedRange{}, invalidRangef("unrecognized period %q", period)
	}
}

func resolveCustomRange(loc *time.Location, from, to string) (ResolvedRange, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return ResolvedRange{}, invalidRangef("custom period requires both from and to dates")
	}
	start, err := time.ParseInLocation(dateLayout, from, loc)
	if err != nil {
		return ResolvedRange{}, invalidRangef("invalid from date %q (expected YYYY-MM-DD)", from)
	}
	endDate, err := time.ParseInLocation(dateLayout, to, loc)
	if err != nil {
		return ResolvedRange{}, invalidRangef("invalid to date %q (expected YYYY-MM-DD)", to)
	}
	if endDate.Before(start) {
		return ResolvedRange{}, invalidRangef("to date %s is before from date %s", to, from)
	}
	// The end date is inclusive as requested; the interval is made
	// half-open by stepping to the following midnight.
	end := endDate.AddDate(0, 0, 1)

	rng := ResolvedRange{Period: PeriodCustom, From: start, To: end, Location: loc}
	if days := rng.Days(); days > maxCustomRangeDays {
		return ResolvedRange{}, invalidRangef("custom range spans %d days, maximum is %d", days, maxCustomRangeDays)
	}
	return rng, nil
}

// ResolveTrendSpan derives the calorie-trend window for a mode: daily and
// weekly use the trailing 7 days ending today inclusive, monthly uses the
// current calendar month.
func ResolveTrendSpan(now time.Time, mode, timezone string) (ResolvedRange, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return ResolvedRange{}, err
	}

	localNow := now.In(loc)
	today := beginningOfDay(localNow)

	switch strings.TrimSpace(mode) {
	case TrendModeDaily, TrendModeWeekly:
		return ResolvedRange{Period: mode, From: today.AddDate(0, 0, -6), To: today.AddDate(0, 0, 1), Location: loc}, nil
	case TrendModeMonthly:
		start := time.Date(localNow.Year(), localNow.Month(), 1, 0, 0, 0, 0, loc)
		return ResolvedRange{Period: TrendModeMonthly, From: start, To: start.AddDate(0, 1, 0), Location: loc}, nil
	default:
		return ResolvedRange{}, invalidRangef("unrecognized trend mode %q", mode)
	}
}

func loadLocation(timezone string) (*time.Location, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, invalidRangef("unknown timezone %q", timezone)
	}
	return loc, nil
}

func beginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func beginningOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
}
