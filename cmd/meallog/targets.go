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

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Set and show daily macro targets",
}

var (
	targetCalories float64
	targetProtein  float64
	targetCarbs    float64
	targetFat      float64
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set daily targets for the user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			if err := st.SetTargets(userID, model.MacroTotals{
				Calories: targetCalories,
				ProteinG: targetProtein,
				CarbsG:   targetCarbs,
				FatG:     targetFat,
			}); err != nil {
				return err
			}
			svc.InvalidateSummaryCache(userID)
			fmt.Fprintf(cmd.OutOrStdout(), "Set targets for user %d\n", userID)
			return nil
		})
	},
}

var targetsShowJSON bool

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective daily targets for the user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *service.Service, st *store.Store, cfg config.Config) error {
			t, err := st.TargetsFor(userID)
			if err != nil {
				return err
			}
			if targetsShowJSON {
				b, err := json.MarshalIndent(t, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal targets json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Targets: kcal=%.0f P=%.0f C=%.0f F=%.0f\n", t.Calories, t.ProteinG, t.CarbsG, t.FatG)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsSetCmd, targetsShowCmd)

	targetsSetCmd.Flags().Float64Var(&targetCalories, "calories", model.DefaultTargets.Calories, "Daily calories (kcal)")
	targetsSetCmd.Flags().Float64Var(&targetProtein, "protein", model.DefaultTargets.ProteinG, "Daily protein grams")
	targetsSetCmd.Flags().Float64Var(&targetCarbs, "carbs", model.DefaultTargets.CarbsG, "Daily carbs grams")
	targetsSetCmd.Flags().Float64Var(&targetFat, "fat", model.DefaultTargets.FatG, "Daily fat grams")
	targetsShowCmd.Flags().BoolVar(&targetsShowJSON, "json", false, "Output as JSON")
}
