package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/daemon"
)

func init() {
	rootCmd.AddCommand(contributeCmd)
	rootCmd.AddCommand(withdrawCmd)
}

var contributeCmd = &cobra.Command{
	Use:   "contribute <goal> <amount>",
	Short: "Add money to a saving goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runContribute,
}

func runContribute(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := resolveGoal(d, args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	contrib, award, err := d.Progress.Contribute(goal.ID, amount)
	if err != nil {
		return err
	}

	if contrib.Completed {
		fmt.Printf("Goal %q completed!\n", goal.Name)
	} else {
		updated, err := d.Progress.Goal(goal.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s / %s saved  %s\n",
			formatMoney(updated.CurrentAmount),
			formatMoney(updated.TargetAmount),
			renderBar(updated.ProgressPercent()))
	}
	for _, sub := range contrib.CompletedSubGoals {
		fmt.Printf("  Sub-goal %q completed (+%d pts)\n", sub.Name, sub.RewardPoints)
	}
	printAward(award)
	return nil
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <goal> <amount>",
	Short: "Take money back out of a saving goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runWithdraw,
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	goal, err := resolveGoal(d, args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	updated, err := d.Progress.Withdraw(goal.ID, amount)
	if err != nil {
		return err
	}
	fmt.Printf("%s / %s saved  %s\n",
		formatMoney(updated.CurrentAmount),
		formatMoney(updated.TargetAmount),
		renderBar(updated.ProgressPercent()))
	return nil
}
