package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your progress dashboard",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sum, err := d.Progress.Summarize()
	if err != nil {
		return err
	}
	p := sum.Profile

	fmt.Printf("%s %s\n", sum.Rank.Icon, sum.Rank.Name)
	fmt.Printf("  Points: %d", p.TotalPoints)
	if sum.PointsToNext > 0 {
		fmt.Printf("  (%d to next rank)", sum.PointsToNext)
	}
	fmt.Println()
	fmt.Printf("  %s\n", renderBar(sum.ProgressPercent))

	fmt.Printf("\nStreak: %d day(s)", p.CurrentStreak)
	if !sum.StreakActive && p.CurrentStreak > 0 {
		fmt.Printf("  (inactive — record something today!)")
	}
	fmt.Println()
	fmt.Printf("  Longest: %d day(s)\n", p.LongestStreak)

	fmt.Printf("\nAchievements: %d/%d (%.0f%%)\n",
		len(p.Unlocked), d.Progress.Engine().CatalogSize(), sum.AchievementRate)
	fmt.Printf("Goals completed: %d\n", p.CompletedGoalsCount)
	fmt.Printf("Transactions recorded: %d\n", p.TotalTransactionsCount)
	if p.BestSavingRate > 0 {
		fmt.Printf("Best saving rate: %.0f%%\n", p.BestSavingRate*100)
	}
	return nil
}
