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
	summaryPeriod string
	summaryFrom   string
	summaryTo     string
	summaryTZ     string
	summaryJSON   bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dashboard summary for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			tz := summaryTZ
			if tz == "" {
				tz = cfg.Timezone
			}
			summary, err := svc.GetDashboardSummary(userID, summaryPeriod, tz, summaryFrom, summaryTo)
			if err != nil {
				return err
			}
			if summaryJSON {
				b, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal summary json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printSummaryTable(cmd, summary)
			return nil
		})
	},
}

func printSummaryTable(cmd *cobra.Command, s *model.DashboardSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Period: %s (%s)\n", s.Period, s.Range.Timezone)
	fmt.Fprintf(out, "Range: %s to %s\n", s.Range.From.Format("2006-01-02"), s.Range.To.AddDate(0, 0, -1).Format("2006-01-02"))
	fmt.Fprintf(out, "Totals: kcal=%.0f P=%.0f C=%.0f F=%.0f\n", s.Totals.Calories, s.Totals.ProteinG, s.Totals.CarbsG, s.Totals.FatG)
	fmt.Fprintf(out, "Targets: kcal=%.0f P=%.0f C=%.0f F=%.0f\n", s.Targets.Calories, s.Targets.ProteinG, s.Targets.CarbsG, s.Targets.FatG)
	fmt.Fprintf(out, "Delta: kcal=%+.0f P=%+.0f C=%+.0f F=%+.0f\n", s.Delta.Calories, s.Delta.ProteinG, s.Delta.CarbsG, s.Delta.FatG)
	fmt.Fprintf(out, "Remaining today: kcal=%.0f P=%.0f C=%.0f F=%.0f\n", s.RemainingToday.Calories, s.RemainingToday.ProteinG, s.RemainingToday.CarbsG, s.RemainingToday.FatG)

	fmt.Fprintln(out, "\nDATE\tKCAL\tBKFST\tLUNCH\tDINNER\tSNACK\tOTHER")
	for _, d := range s.Daily {
		fmt.Fprintf(out, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\n",
			d.Date, d.Calories,
			d.ByPeriod.Breakfast, d.ByPeriod.Lunch, d.ByPeriod.Dinner, d.ByPeriod.Snack, d.ByPeriod.Unknown)
	}
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryPeriod, "period", service.PeriodToday, "Period: today|yesterday|thisWeek|lastWeek|custom")
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "Custom start date YYYY-MM-DD")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "Custom end date YYYY-MM-DD (inclusive)")
	summaryCmd.Flags().StringVar(&summaryTZ, "tz", "", "IANA timezone (default from config)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output as JSON")
}
