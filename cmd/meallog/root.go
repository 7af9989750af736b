package meallog

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath string
	userID int64
)

var rootCmd = &cobra.Command{
	Use:   "meallog",
	Short: "meallog tracks meals and serves nutrition dashboards from your terminal",
	Long:  "meallog is a local-first meal logging CLI with timezone-aware dashboard summaries, calorie trend charts, and per-user macro targets.",
}

func Execute() {
	// A .env in the working directory may carry MEALLOG_* overrides;
	// absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().Int64Var(&userID, "user", 1, "User id to operate on")
}
