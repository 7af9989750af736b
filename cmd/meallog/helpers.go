package meallog

import (
	"database/sql"
	"os"
	"strings"
	"time"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/app"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/cache"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/config"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/db"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/service"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/store"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := strings.TrimSpace(os.Getenv("MEALLOG_DB")); env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func withService(run func(*service.Service, *store.Store, config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return withDB(func(sqldb *sql.DB) error {
		st := store.New(sqldb)
		svc := service.NewService(st, st, cache.New())
		svc.TTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
		return run(svc, st, cfg)
	})
}
