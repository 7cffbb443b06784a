package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/daemon"
	"github.com/moneta-app/moneta/internal/domain"
)

func init() {
	periodsCreateCmd.Flags().StringVar(&periodFrom, "from", "", "Start date (YYYY-MM-DD, required)")
	periodsCreateCmd.Flags().StringVar(&periodTo, "to", "", "End date (YYYY-MM-DD, required)")
	periodsCreateCmd.Flags().Float64Var(&periodSavingGoal, "saving-goal", 0, "Savings target for the period (optional)")
	periodsCreateCmd.Flags().Float64Var(&periodExpenseLimit, "expense-limit", 0, "Spending ceiling for the period (optional)")
	periodsCreateCmd.MarkFlagRequired("from")
	periodsCreateCmd.MarkFlagRequired("to")

	periodsCmd.AddCommand(periodsCreateCmd)
	periodsCmd.AddCommand(periodsScoreCmd)
	periodsCmd.AddCommand(periodsCloseCmd)
	rootCmd.AddCommand(periodsCmd)
}

var (
	periodFrom         string
	periodTo           string
	periodSavingGoal   float64
	periodExpenseLimit float64
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List and manage financial periods",
	RunE:  runPeriodsList,
}

func runPeriodsList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	periods, err := d.Progress.Periods()
	if err != nil {
		return err
	}
	if len(periods) == 0 {
		fmt.Println("No periods. Run 'moneta periods create' to start tracking.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO\tSTATE")
	for _, p := range periods {
		state := "open"
		if p.Closed {
			state = "closed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(p.ID), formatDate(p.StartDate), formatDate(p.EndDate), state)
	}
	return w.Flush()
}

var periodsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new financial period",
	RunE:  runPeriodsCreate,
}

func runPeriodsCreate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	from, err := parseDate(periodFrom)
	if err != nil {
		return fmt.Errorf("parse --from: %w", err)
	}
	to, err := parseDate(periodTo)
	if err != nil {
		return fmt.Errorf("parse --to: %w", err)
	}

	period := domain.NewFinancialPeriod(from, to)
	if periodSavingGoal > 0 {
		period.SavingGoalAmount = &periodSavingGoal
	}
	if periodExpenseLimit > 0 {
		period.MaxExpenseLimit = &periodExpenseLimit
	}

	if err := d.Progress.CreatePeriod(period); err != nil {
		return err
	}
	fmt.Printf("Created period %s: %s to %s\n",
		shortID(period.ID), formatDate(period.StartDate), formatDate(period.EndDate))
	return nil
}

var periodsScoreCmd = &cobra.Command{
	Use:   "score <id>",
	Short: "Show the running score for a period",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeriodsScore,
}

func runPeriodsScore(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	period, err := resolvePeriod(d, args[0], time.Time{})
	if err != nil {
		return err
	}
	score, err := d.Progress.ScorePeriod(period.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Income:   %s\n", formatMoney(score.TotalIncome))
	fmt.Printf("Expenses: %s\n", formatMoney(score.TotalExpenses))
	fmt.Printf("Savings:  %s\n", formatMoney(score.TotalSavings))
	fmt.Printf("Balance:  %s\n", formatMoney(score.Balance))
	fmt.Printf("Saving rate: %.0f%%\n", score.SavingRate*100)
	fmt.Printf("Score: %d points\n", score.Points)
	return nil
}

var periodsCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a period, score it, and award points",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeriodsClose,
}

func runPeriodsClose(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	period, err := resolvePeriod(d, args[0], time.Time{})
	if err != nil {
		return err
	}
	res, err := d.Progress.ClosePeriod(period.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Period closed: %d points (saving rate %.0f%%)\n",
		res.Score.Points, res.Score.SavingRate*100)
	if res.Comparison.Improved {
		fmt.Printf("Savings up %.1f%% vs last period (+%d pts)\n",
			res.Comparison.ImprovementPercent, res.Comparison.Points)
	}
	printAward(res.Award)
	return nil
}

// resolvePeriod finds a period by full or shortened ID. With an empty ref
// it picks the open period covering date (or the most recent open one when
// date is zero).
func resolvePeriod(d *daemon.Daemon, ref string, date time.Time) (*domain.FinancialPeriod, error) {
	periods, err := d.Progress.Periods()
	if err != nil {
		return nil, err
	}

	if ref != "" {
		if id, err := uuid.Parse(ref); err == nil {
			for i := range periods {
				if periods[i].ID == id {
					return &periods[i], nil
				}
			}
			return nil, domain.ErrPeriodNotFound
		}
		for i := range periods {
			if shortID(periods[i].ID) == ref {
				return &periods[i], nil
			}
		}
		return nil, domain.ErrPeriodNotFound
	}

	for i := range periods {
		p := &periods[i]
		if p.Closed {
			continue
		}
		if date.IsZero() || (!date.Before(p.StartDate) && !date.After(p.EndDate)) {
			return p, nil
		}
	}
	return nil, domain.ErrPeriodNotFound
}
