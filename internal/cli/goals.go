package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/daemon"
	"github.com/moneta-app/moneta/internal/domain"
)

func init() {
	goalsCreateCmd.Flags().Float64Var(&goalTarget, "target", 0, "Target amount to save (required)")
	goalsCreateCmd.Flags().StringVar(&goalBy, "by", "", "Target date (YYYY-MM-DD, required)")
	goalsCreateCmd.Flags().Int64Var(&goalReward, "reward", 100, "Points awarded on completion")
	goalsCreateCmd.MarkFlagRequired("target")
	goalsCreateCmd.MarkFlagRequired("by")

	goalsCmd.AddCommand(goalsCreateCmd)
	goalsCmd.AddCommand(goalsShowCmd)
	goalsCmd.AddCommand(goalsRmCmd)
	rootCmd.AddCommand(goalsCmd)
}

var (
	goalTarget float64
	goalBy     string
	goalReward int64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and manage saving goals",
	RunE:  runGoalsList,
}

func runGoalsList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goals, err := d.Progress.Goals()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No saving goals. Run 'moneta goals create <name>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSAVED\tTARGET\tPROGRESS\tSTATUS\tBY")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\t%s\n",
			shortID(g.ID),
			g.Name,
			formatMoney(g.CurrentAmount),
			formatMoney(g.TargetAmount),
			g.ProgressPercent(),
			g.Status,
			formatDate(g.TargetDate),
		)
	}
	return w.Flush()
}

var goalsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new saving goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsCreate,
}

func runGoalsCreate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	by, err := parseDate(goalBy)
	if err != nil {
		return fmt.Errorf("parse --by: %w", err)
	}

	goal := domain.NewSavingGoal(args[0], goalTarget, d.Progress.Now(), by, goalReward)
	if err := d.Progress.CreateGoal(goal); err != nil {
		return err
	}

	fmt.Printf("Created goal %q (%s): save %s by %s for %d points\n",
		goal.Name, shortID(goal.ID), formatMoney(goal.TargetAmount),
		formatDate(goal.TargetDate), goal.RewardPoints)
	return nil
}

var goalsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a goal and its sub-goals",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsShow,
}

func runGoalsShow(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := resolveGoal(d, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", goal.Name, goal.Status)
	fmt.Printf("  %s / %s saved\n", formatMoney(goal.CurrentAmount), formatMoney(goal.TargetAmount))
	fmt.Printf("  %s\n", renderBar(goal.ProgressPercent()))
	fmt.Printf("  Target date: %s\n", formatDate(goal.TargetDate))
	fmt.Printf("  Reward: %d points\n", goal.RewardPoints)

	if len(goal.SubGoals) > 0 {
		fmt.Println("\nSub-goals:")
		for _, sub := range goal.SubGoals {
			mark := " "
			if sub.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s — %s by %s (%d pts)\n",
				mark, sub.Name, formatMoney(sub.TargetAmount),
				formatDate(sub.TargetDate), sub.RewardPoints)
		}
	}
	return nil
}

var goalsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saving goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRm,
}

func runGoalsRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := resolveGoal(d, args[0])
	if err != nil {
		return err
	}
	if err := d.Progress.DeleteGoal(goal.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted goal %q\n", goal.Name)
	return nil
}

// resolveGoal finds a goal by full or shortened ID.
func resolveGoal(d *daemon.Daemon, ref string) (*domain.SavingGoal, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return d.Progress.Goal(id)
	}

	goals, err := d.Progress.Goals()
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if shortID(goals[i].ID) == ref {
			return &goals[i], nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

// shortID truncates a UUID to the first 8 hex characters.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
