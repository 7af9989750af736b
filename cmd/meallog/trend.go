package meallog

import (
	"encoding/json"
	"fmt"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/config"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/model"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/service"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/store"
	"github.com/spf13/cobra"
)

var (
	trendMode   string
	trendTZ     string
	trendLocale string
	trendTarget float64
	trendJSON   bool
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Calorie trend chart data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			tz := trendTZ
			if tz == "" {
				tz = cfg.Timezone
			}
			locale := trendLocale
			if locale == "" {
				locale = cfg.Locale
			}
			trend, err := svc.GetCalorieTrend(userID, trendMode, tz, locale, trendTarget)
			if err != nil {
				return err
			}
			if trendJSON {
				b, err := json.MarshalIndent(trend, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal trend json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printTrendTable(cmd, trend)
			return nil
		})
	},
}

func printTrendTable(cmd *cobra.Command, t *model.CalorieTrend) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Daily target: %d kcal\n", t.TargetCalories)
	fmt.Fprintln(out, "DATE\tLABEL\tKCAL")
	for _, p := range t.Points {
		fmt.Fprintf(out, "%s\t%s\t%d\n", p.Date, p.Label, p.Value)
	}
}

func init() {
	rootCmd.AddCommand(trendCmd)
	trendCmd.Flags().StringVar(&trendMode, "mode", service.TrendModeWeekly, "Trend mode: daily|weekly|monthly")
	trendCmd.Flags().StringVar(&trendTZ, "tz", "", "IANA timezone (default from config)")
	trendCmd.Flags().StringVar(&trendLocale, "locale", "", "Label locale, e.g. en or ja (default from config)")
	trendCmd.Flags().Float64Var(&trendTarget, "target", 0, "Daily calorie target (default from stored targets)")
	trendCmd.Flags().BoolVar(&trendJSON, "json", false, "Output as JSON")
}
