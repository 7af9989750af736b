package meallog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kento-1477/meal-log-app-new-sub002/internal/config"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/service"
	"github.com/kento-1477/meal-log-app-new-sub002/internal/store"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Add, list, and delete meal logs",
}

var (
	addName     string
	addCalories float64
	addProtein  float64
	addCarbs    float64
	addFat      float64
	addPeriod   string
	addDate     string
	addTime     string
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a meal log entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			consumed, err := parseDateTimeOrNow(addDate, addTime, cfg.Timezone)
			if err != nil {
				return err
			}
			id, err := st.CreateLog(store.CreateLogInput{
				UserID:     userID,
				Name:       addName,
				Calories:   addCalories,
				ProteinG:   addProtein,
				CarbsG:     addCarbs,
				FatG:       addFat,
				MealPeriod: addPeriod,
				ConsumedAt: consumed,
			})
			if err != nil {
				return err
			}
			svc.InvalidateSummaryCache(userID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal log %d\n", id)
			return nil
		})
	},
}

var (
	listFrom  string
	listTo    string
	listLimit int
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			filter := store.ListLogsFilter{UserID: userID, Limit: listLimit}
			loc, err := loadTimezone(cfg.Timezone)
			if err != nil {
				return err
			}
			if strings.TrimSpace(listFrom) != "" {
				from, err := time.ParseInLocation("2006-01-02", listFrom, loc)
				if err != nil {
					return fmt.Errorf("invalid --from date %q (expected YYYY-MM-DD)", listFrom)
				}
				filter.From = from
			}
			if strings.TrimSpace(listTo) != "" {
				to, err := time.ParseInLocation("2006-01-02", listTo, loc)
				if err != nil {
					return fmt.Errorf("invalid --to date %q (expected YYYY-MM-DD)", listTo)
				}
				filter.To = to.AddDate(0, 0, 1)
			}

			logs, err := st.ListLogs(filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tWHEN\tPERIOD\tKCAL\tP\tC\tF\tNAME")
			for _, e := range logs {
				fmt.Fprintf(out, "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					e.ID, e.ConsumedAt.In(loc).Format("2006-01-02 15:04"), e.MealPeriod,
					e.Calories, e.ProteinG, e.CarbsG, e.FatG, e.Name)
			}
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a meal log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid log id %q", args[0])
		}
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			if err := st.DeleteLog(userID, id); err != nil {
				return err
			}
			svc.InvalidateSummaryCache(userID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal log %d\n", id)
			return nil
		})
	},
}

func loadTimezone(timezone string) (*time.Location, error) {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", timezone)
	}
	return loc, nil
}

func parseDateTimeOrNow(date, timeStr, timezone string) (time.Time, error) {
	loc, err := loadTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logDeleteCmd)

	logAddCmd.Flags().StringVar(&addName, "name", "", "Meal name")
	logAddCmd.Flags().Float64Var(&addCalories, "calories", 0, "Calories (kcal)")
	logAddCmd.Flags().Float64Var(&addProtein, "protein", 0, "Protein grams")
	logAddCmd.Flags().Float64Var(&addCarbs, "carbs", 0, "Carbs grams")
	logAddCmd.Flags().Float64Var(&addFat, "fat", 0, "Fat grams")
	logAddCmd.Flags().StringVar(&addPeriod, "period", "", "Meal period: breakfast|lunch|dinner|snack")
	logAddCmd.Flags().StringVar(&addDate, "date", "", "Consumed date YYYY-MM-DD (default now)")
	logAddCmd.Flags().StringVar(&addTime, "time", "", "Consumed time HH:MM")

	logListCmd.Flags().StringVar(&listFrom, "from", "", "Start date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&listTo, "to", "", "End date YYYY-MM-DD (inclusive)")
	logListCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum rows")
}
