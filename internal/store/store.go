package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/model"
)

// Store reads and writes meal logs and per-user targets. Timestamps are
// persisted as UTC RFC3339 strings so lexicographic range predicates stay
// chronologically correct regardless of the client timezone.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type CreateLogInput struct {
	UserID     int64
	Name       string
	Calories   float64
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	MealPeriod string
	ConsumedAt time.Time
}

func (s *Store) CreateLog(in CreateLogInput) (int64, error) {
	if in.UserID <= 0 {
		return 0, fmt.Errorf("user id must be > 0")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("log name is required")
	}
	if err := validateNonNegative("calories", in.Calories); err != nil {
		return 0, err
	}
	if err := validateNonNegative("protein", in.ProteinG); err != nil {
		return 0, err
	}
	if err := validateNonNegative("carbs", in.CarbsG); err != nil {
		return 0, err
	}
	if err := validateNonNegative("fat", in.FatG); err != nil {
		return 0, err
	}
	if in.ConsumedAt.IsZero() {
		in.ConsumedAt = time.Now()
	}
	period := model.NormalizeMealPeriod(in.MealPeriod)

	res, err := s.db.Exec(`
INSERT INTO meal_logs(user_id, name, calories, protein_g, carbs_g, fat_g, meal_period, consumed_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, in.UserID, in.Name, in.Calories, in.ProteinG, in.CarbsG, in.FatG, string(period), in.ConsumedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert meal log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted log id: %w", err)
	}
	return id, nil
}

// FetchLogs returns the user's logs with consumed_at in [from, to).
// Rows whose stored timestamp no longer parses are skipped; one corrupt
// row must not fail a whole summary.
func (s *Store) FetchLogs(userID int64, from, to time.Time) ([]model.MealLogEntry, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, name, calories, protein_g, carbs_g, fat_g, meal_period, consumed_at, created_at
FROM meal_logs
WHERE user_id = ? AND consumed_at >= ? AND consumed_at < ?
ORDER BY consumed_at ASC
`, userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query meal logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.MealLogEntry, 0)
	for rows.Next() {
		var e model.MealLogEntry
		var period, consumedAtRaw string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Calories, &e.ProteinG, &e.CarbsG, &e.FatG, &period, &consumedAtRaw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		consumedAt, err := time.Parse(time.RFC3339, consumedAtRaw)
		if err != nil {
			continue
		}
		e.ConsumedAt = consumedAt
		e.MealPeriod = model.NormalizeMealPeriod(period)
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal logs: %w", err)
	}
	return logs, nil
}

// FetchAggregateTotals sums the user's macros over [from, to) in SQL
// without materializing the rows.
func (s *Store) FetchAggregateTotals(userID int64, from, to time.Time) (model.MacroTotals, error) {
	var totals model.MacroTotals
	err := s.db.QueryRow(`
SELECT IFNULL(SUM(calories), 0), IFNULL(SUM(protein_g), 0), IFNULL(SUM(carbs_g), 0), IFNULL(SUM(fat_g), 0)
FROM meal_logs
WHERE user_id = ? AND consumed_at >= ? AND consumed_at < ?
`, userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339)).
		Scan(&totals.Calories, &totals.ProteinG, &totals.CarbsG, &totals.FatG)
	if err != nil {
		return model.MacroTotals{}, fmt.Errorf("aggregate meal log totals: %w", err)
	}
	return totals, nil
}

type ListLogsFilter struct {
	UserID int64
	From   time.Time
	To     time.Time
	Limit  int
}

func (s *Store) ListLogs(f ListLogsFilter) ([]model.MealLogEntry, error) {
	query := `
SELECT id, user_id, name, calories, protein_g, carbs_g, fat_g, meal_period, consumed_at, created_at
FROM meal_logs
WHERE user_id = ?`
	args := []any{f.UserID}

	if !f.From.IsZero() {
		query += ` AND consumed_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		query += ` AND consumed_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY consumed_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.MealLogEntry, 0)
	for rows.Next() {
		var e model.MealLogEntry
		var period, consumedAtRaw string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Calories, &e.ProteinG, &e.CarbsG, &e.FatG, &period, &consumedAtRaw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		consumedAt, err := time.Parse(time.RFC3339, consumedAtRaw)
		if err != nil {
			continue
		}
		e.ConsumedAt = consumedAt
		e.MealPeriod = model.NormalizeMealPeriod(period)
		logs = append(logs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal logs: %w", err)
	}
	return logs, nil
}

func (s *Store) DeleteLog(userID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("log id must be > 0")
	}
	res, err := s.db.Exec(`DELETE FROM meal_logs WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal log %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for log %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("meal log %d not found", id)
	}
	return nil
}

// TargetsFor returns the user's stored target vector, or the system
// default when none has been set.
func (s *Store) TargetsFor(userID int64) (model.MacroTotals, error) {
	var t model.MacroTotals
	err := s.db.QueryRow(`
SELECT calories, protein_g, carbs_g, fat_g FROM targets WHERE user_id = ?
`, userID).Scan(&t.Calories, &t.ProteinG, &t.CarbsG, &t.FatG)
	if err == sql.ErrNoRows {
		return model.DefaultTargets, nil
	}
	if err != nil {
		return model.MacroTotals{}, fmt.Errorf("targets for user %d: %w", userID, err)
	}
	return t, nil
}

func (s *Store) SetTargets(userID int64, t model.MacroTotals) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be > 0")
	}
	if err := validateNonNegative("calories", t.Calories); err != nil {
		return err
	}
	if err := validateNonNegative("protein", t.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegative("carbs", t.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegative("fat", t.FatG); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO targets(user_id, calories, protein_g, carbs_g, fat_g, updated_at)
VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  updated_at=excluded.updated_at
`, userID, t.Calories, t.ProteinG, t.CarbsG, t.FatG)
	if err != nil {
		return fmt.Errorf("set targets for user %d: %w", userID, err)
	}
	return nil
}

func validateNonNegative(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}
