package service

import (
	"math"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/model"
)

// Per-field decimal precision applied once when totals leave the
// aggregator. All four fields round to whole numbers today; the table
// keeps the precision a per-field decision.
const (
	caloriesPrecision = 0
	proteinPrecision  = 0
	carbsPrecision    = 0
	fatPrecision      = 0
)

func roundTo(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}

func roundMacros(m model.MacroTotals) model.MacroTotals {
	m.Calories = roundTo(m.Calories, caloriesPrecision)
	m.ProteinG = roundTo(m.ProteinG, proteinPrecision)
	m.CarbsG = roundTo(m.CarbsG, carbsPrecision)
	m.FatG = roundTo(m.FatG, fatPrecision)
	return m
}

// BuildSummary aggregates fetched logs over a resolved range into the
// dashboard summary. Pure: no I/O, no mutation of the input logs.
//
// Each log is projected into the range's timezone to pick its bucket.
// Logs with a zero timestamp are skipped entirely; logs whose local date
// falls outside [From, To) are dropped from the daily series rather than
// mis-bucketed. Grand totals sum every valid log field-wise, then round
// once. Delta uses the already-rounded operands so totals, targets, and
// delta stay mutually consistent.
func BuildSummary(logs []model.MealLogEntry, rng ResolvedRange, targets, todayTotals model.MacroTotals) *model.DashboardSummary {
	daily := make([]model.DailyBucket, 0, rng.Days())
	index := make(map[string]int)
	for day := rng.From; day.Before(rng.To); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		index[date] = len(daily)
		daily = append(daily, model.DailyBucket{Date: date})
	}

	var totals model.MacroTotals
	for _, e := range logs {
		if e.ConsumedAt.IsZero() {
			continue
		}
		totals = totals.Add(e)

		date := e.ConsumedAt.In(rng.Location).Format(dateLayout)
		i, ok := index[date]
		if !ok {
			continue
		}
		daily[i].Calories += e.Calories
		daily[i].ProteinG += e.ProteinG
		daily[i].CarbsG += e.CarbsG
		daily[i].FatG += e.FatG
		daily[i].ByPeriod.Add(e.MealPeriod, e.Calories)
	}

	roundedTotals := roundMacros(totals)
	roundedTargets := roundMacros(targets)

	return &model.DashboardSummary{
		Period: rng.Period,
		Range: model.RangeInfo{
			From:     rng.From,
			To:       rng.To,
			Timezone: rng.Location.String(),
		},
		Daily:          daily,
		RemainingToday: roundedTargets.Sub(roundMacros(todayTotals)).ClampNonNegative(),
		Totals:         roundedTotals,
		Targets:        roundedTargets,
		Delta:          roundedTotals.Sub(roundedTargets),
	}
}
