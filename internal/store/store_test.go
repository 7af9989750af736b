package store_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/db"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/model"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meallog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load Asia/Tokyo: %v", err)
	}
	return loc
}

func TestCreateLogValidation(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))

	if _, err := st.CreateLog(store.CreateLogInput{UserID: 0, Name: "x", Calories: 1}); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if _, err := st.CreateLog(store.CreateLogInput{UserID: 1, Name: "  "}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := st.CreateLog(store.CreateLogInput{UserID: 1, Name: "x", Calories: -10}); err == nil {
		t.Fatalf("expected error for negative calories")
	}
}

func TestFetchLogsRespectsTimezoneLocalRange(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))
	loc := tokyo(t)

	// 08:30 JST on Jan 1 is 23:30 UTC on Dec 31.
	consumed := time.Date(2025, 1, 1, 8, 30, 0, 0, loc)
	if _, err := st.CreateLog(store.CreateLogInput{
		UserID: 1, Name: "rice bowl", Calories: 550, ProteinG: 20, CarbsG: 80, FatG: 12,
		MealPeriod: "breakfast", ConsumedAt: consumed,
	}); err != nil {
		t.Fatalf("create log: %v", err)
	}

	jstFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, loc)
	logs, err := st.FetchLogs(1, jstFrom, jstFrom.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch jst day: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log in JST Jan 1, got %d", len(logs))
	}
	if logs[0].MealPeriod != model.MealPeriodBreakfast {
		t.Fatalf("meal period = %q, want breakfast", logs[0].MealPeriod)
	}
	if !logs[0].ConsumedAt.Equal(consumed) {
		t.Fatalf("consumed at = %v, want same instant as %v", logs[0].ConsumedAt, consumed)
	}

	utcFrom := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	logs, err = st.FetchLogs(1, utcFrom, utcFrom.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch utc day: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected 0 logs in UTC Jan 1 (instant is Dec 31 UTC), got %d", len(logs))
	}
}

func TestFetchLogsScopedToUser(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	for user := int64(1); user <= 2; user++ {
		if _, err := st.CreateLog(store.CreateLogInput{
			UserID: user, Name: "lunch", Calories: 600, MealPeriod: "lunch", ConsumedAt: at,
		}); err != nil {
			t.Fatalf("create log for user %d: %v", user, err)
		}
	}

	logs, err := st.FetchLogs(1, at.AddDate(0, 0, -1), at.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch logs: %v", err)
	}
	if len(logs) != 1 || logs[0].UserID != 1 {
		t.Fatalf("expected only user 1 logs, got %+v", logs)
	}
}

func TestFetchLogsSkipsUnparsableTimestamps(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	st := store.New(sqldb)
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	if _, err := st.CreateLog(store.CreateLogInput{
		UserID: 1, Name: "good", Calories: 400, MealPeriod: "dinner", ConsumedAt: at,
	}); err != nil {
		t.Fatalf("create good log: %v", err)
	}
	// Inside the lexicographic range but not RFC3339 (missing zone).
	if _, err := sqldb.Exec(`
INSERT INTO meal_logs(user_id, name, calories, protein_g, carbs_g, fat_g, meal_period, consumed_at)
VALUES(1, 'corrupt', 999, 0, 0, 0, 'dinner', '2025-05-01T13:00:00')
`); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	logs, err := st.FetchLogs(1, from, from.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("fetch logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Name != "good" {
		t.Fatalf("expected the corrupt row to be skipped, got %+v", logs)
	}
}

func TestFetchAggregateTotals(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	seed := []store.CreateLogInput{
		{UserID: 1, Name: "a", Calories: 500, ProteinG: 30, CarbsG: 60, FatG: 10, ConsumedAt: day.Add(8 * time.Hour)},
		{UserID: 1, Name: "b", Calories: 700, ProteinG: 40, CarbsG: 70, FatG: 20, ConsumedAt: day.Add(13 * time.Hour)},
		{UserID: 1, Name: "outside", Calories: 999, ConsumedAt: day.AddDate(0, 0, 1)},
	}
	for _, in := range seed {
		if _, err := st.CreateLog(in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	totals, err := st.FetchAggregateTotals(1, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("aggregate totals: %v", err)
	}
	want := model.MacroTotals{Calories: 1200, ProteinG: 70, CarbsG: 130, FatG: 30}
	if totals != want {
		t.Fatalf("totals = %+v, want %+v", totals, want)
	}

	empty, err := st.FetchAggregateTotals(1, day.AddDate(0, 0, -7), day.AddDate(0, 0, -6))
	if err != nil {
		t.Fatalf("aggregate empty range: %v", err)
	}
	if empty != (model.MacroTotals{}) {
		t.Fatalf("expected zero totals for empty range, got %+v", empty)
	}
}

func TestListLogsOrderAndLimit(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))
	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := st.CreateLog(store.CreateLogInput{
			UserID: 1, Name: "meal", Calories: 100, ConsumedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("create log %d: %v", i, err)
		}
	}

	logs, err := st.ListLogs(store.ListLogsFilter{UserID: 1, Limit: 3})
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].ConsumedAt.After(logs[i-1].ConsumedAt) {
			t.Fatalf("expected newest-first ordering")
		}
	}
}

func TestDeleteLog(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))

	id, err := st.CreateLog(store.CreateLogInput{
		UserID: 1, Name: "meal", Calories: 100, ConsumedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if err := st.DeleteLog(1, id); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if err := st.DeleteLog(1, id); err == nil {
		t.Fatalf("expected error deleting missing log")
	}
	// Deleting someone else's log is a not-found, not a cross-user delete.
	id2, err := st.CreateLog(store.CreateLogInput{
		UserID: 2, Name: "meal", Calories: 100, ConsumedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create log for user 2: %v", err)
	}
	if err := st.DeleteLog(1, id2); err == nil {
		t.Fatalf("expected not-found deleting another user's log")
	}
}

func TestTargetsDefaultAndUpsert(t *testing.T) {
	t.Parallel()
	st := store.New(newTestDB(t))

	got, err := st.TargetsFor(1)
	if err != nil {
		t.Fatalf("targets for new user: %v", err)
	}
	if got != model.DefaultTargets {
		t.Fatalf("expected system default targets, got %+v", got)
	}

	want := model.MacroTotals{Calories: 1800, ProteinG: 140, CarbsG: 180, FatG: 55}
	if err := st.SetTargets(1, want); err != nil {
		t.Fatalf("set targets: %v", err)
	}
	got, err = st.TargetsFor(1)
	if err != nil {
		t.Fatalf("targets after set: %v", err)
	}
	if got != want {
		t.Fatalf("targets = %+v, want %+v", got, want)
	}

	want.Calories = 1900
	if err := st.SetTargets(1, want); err != nil {
		t.Fatalf("update targets: %v", err)
	}
	got, err = st.TargetsFor(1)
	if err != nil {
		t.Fatalf("targets after update: %v", err)
	}
	if got.Calories != 1900 {
		t.Fatalf("expected upsert to overwrite, got %+v", got)
	}

	if err := st.SetTargets(1, model.MacroTotals{Calories: -1}); err == nil {
		t.Fatalf("expected error for negative target")
	}
}
