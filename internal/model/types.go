package model

import (
	"strings"
	"time"
)

// MealPeriod is the closed set of meal slots a log entry can belong to.
// Anything a caller sends that is not recognized normalizes to
// MealPeriodUnknown; there is no other fallback path.
type MealPeriod string

const (
	MealPeriodBreakfast MealPeriod = "breakfast"
	MealPeriodLunch     MealPeriod = "lunch"
	MealPeriodDinner    MealPeriod = "dinner"
	MealPeriodSnack     MealPeriod = "snack"
	MealPeriodUnknown   MealPeriod = "unknown"
)

// MealPeriods lists every period in display order.
var MealPeriods = []MealPeriod{
	MealPeriodBreakfast,
	MealPeriodLunch,
	MealPeriodDinner,
	MealPeriodSnack,
	MealPeriodUnknown,
}

func NormalizeMealPeriod(value string) MealPeriod {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "breakfast":
		return MealPeriodBreakfast
	case "lunch":
		return MealPeriodLunch
	case "dinner":
		return MealPeriodDinner
	case "snack", "snacks":
		return MealPeriodSnack
	default:
		return MealPeriodUnknown
	}
}

// MealLogEntry is a single logged meal as read from storage. Entries are
// immutable once fetched; aggregation never writes back to them.
type MealLogEntry struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Calories   float64    `json:"calories"`
	ProteinG   float64    `json:"protein_g"`
	CarbsG     float64    `json:"carbs_g"`
	FatG       float64    `json:"fat_g"`
	MealPeriod MealPeriod `json:"meal_period"`
	ConsumedAt time.Time  `json:"consumed_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// MacroTotals is a calorie + macronutrient vector.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// DefaultTargets is the system-wide fallback target vector used when a
// user has not stored their own.
var DefaultTargets = MacroTotals{
	Calories: 2000,
	ProteinG: 120,
	CarbsG:   250,
	FatG:     60,
}

func (m MacroTotals) Add(e MealLogEntry) MacroTotals {
	m.Calories += e.Calories
	m.ProteinG += e.ProteinG
	m.CarbsG += e.CarbsG
	m.FatG += e.FatG
	return m
}

func (m MacroTotals) Sub(other MacroTotals) MacroTotals {
	m.Calories -= other.Calories
	m.ProteinG -= other.ProteinG
	m.CarbsG -= other.CarbsG
	m.FatG -= other.FatG
	return m
}

func (m MacroTotals) ClampNonNegative() MacroTotals {
	if m.Calories < 0 {
		m.Calories = 0
	}
	if m.ProteinG < 0 {
		m.ProteinG = 0
	}
	if m.CarbsG < 0 {
		m.CarbsG = 0
	}
	if m.FatG < 0 {
		m.FatG = 0
	}
	return m
}

// PeriodCalories is the per-meal-period calorie breakdown of one day.
type PeriodCalories struct {
	Breakfast float64 `json:"breakfast"`
	Lunch     float64 `json:"lunch"`
	Dinner    float64 `json:"dinner"`
	Snack     float64 `json:"snack"`
	Unknown   float64 `json:"unknown"`
}

func (p *PeriodCalories) Add(period MealPeriod, calories float64) {
	switch period {
	case MealPeriodBreakfast:
		p.Breakfast += calories
	case MealPeriodLunch:
		p.Lunch += calories
	case MealPeriodDinner:
		p.Dinner += calories
	case MealPeriodSnack:
		p.Snack += calories
	default:
		p.Unknown += calories
	}
}

func (p PeriodCalories) Total() float64 {
	return p.Breakfast + p.Lunch + p.Dinner + p.Snack + p.Unknown
}

// DailyBucket holds one local calendar day of the dashboard series.
type DailyBucket struct {
	Date     string         `json:"date"`
	Calories float64        `json:"calories"`
	ProteinG float64        `json:"protein_g"`
	CarbsG   float64        `json:"carbs_g"`
	FatG     float64        `json:"fat_g"`
	ByPeriod PeriodCalories `json:"by_period"`
}

type RangeInfo struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Timezone string    `json:"timezone"`
}

type DashboardSummary struct {
	Period         string        `json:"period"`
	Range          RangeInfo     `json:"range"`
	Daily          []DailyBucket `json:"daily"`
	RemainingToday MacroTotals   `json:"remaining_today"`
	Totals         MacroTotals   `json:"totals"`
	Targets        MacroTotals   `json:"targets"`
	Delta          MacroTotals   `json:"delta"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

type CalorieTrendPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type CalorieTrend struct {
	TargetCalories int                 `json:"target_calories"`
	Points         []CalorieTrendPoint `json:"points"`
}
