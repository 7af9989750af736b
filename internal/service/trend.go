package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/model"
)

// Weekday abbreviations for trend labels, indexed by time.Weekday
// (Sunday first). Unknown locales fall back to English.
var weekdayAbbrevs = map[string][7]string{
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"ja": {"日", "月", "火", "水", "木", "金", "土"},
}

const defaultLocale = "en"

// ResampleCalorieTrend buckets logs into a calories-only daily series
// over the span, emitting exactly one point per day with unseen days
// zero-filled. Labels are display-only; Value never depends on locale.
func ResampleCalorieTrend(logs []model.MealLogEntry, span ResolvedRange, locale string, dailyTarget float64) model.CalorieTrend {
	days := int(math.Round(span.To.Sub(span.From).Hours() / 24))
	if days < 1 {
		days = 1
	}

	byDate := make(map[string]float64)
	for _, e := range logs {
		if e.ConsumedAt.IsZero() {
			continue
		}
		byDate[e.ConsumedAt.In(span.Location).Format(dateLayout)] += e.Calories
	}

	target := dailyTarget
	if target <= 0 {
		target = model.DefaultTargets.Calories
	}

	points := make([]model.CalorieTrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := span.From.AddDate(0, 0, i)
		date := day.Format(dateLayout)
		points = append(points, model.CalorieTrendPoint{
			Date:  date,
			Label: trendLabel(day, locale),
			Value: int(math.Round(byDate[date])),
		})
	}

	return model.CalorieTrend{
		TargetCalories: int(math.Round(target)),
		Points:         points,
	}
}

// trendLabel renders "month/day (weekday)" in the requested locale,
// e.g. "11/1 (Sat)" or "11/1 (土)".
func trendLabel(day time.Time, locale string) string {
	names, ok := weekdayAbbrevs[normalizeLocale(locale)]
	if !ok {
		names = weekdayAbbrevs[defaultLocale]
	}
	return fmt.Sprintf("%d/%d (%s)", int(day.Month()), day.Day(), names[day.Weekday()])
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	if locale == "" {
		return defaultLocale
	}
	for _, sep := range []string{"-", "_"} {
		if i := strings.Index(locale, sep); i > 0 {
			locale = locale[:i]
		}
	}
	return locale
}
