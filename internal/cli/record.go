package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moneta-app/moneta/internal/daemon"
	"github.com/moneta-app/moneta/internal/domain"
)

func init() {
	recordCmd.Flags().StringVar(&recordPeriod, "period", "", "Period ID (defaults to the open period covering the date)")
	recordCmd.Flags().StringVar(&recordCategory, "category", "general", "Transaction category")
	recordCmd.Flags().StringVar(&recordNote, "note", "", "Optional note")
	recordCmd.Flags().StringVar(&recordDate, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(recordCmd)
}

var (
	recordPeriod   string
	recordCategory string
	recordNote     string
	recordDate     string
)

var recordCmd = &cobra.Command{
	Use:   "record <income|expense|saving> <amount>",
	Short: "Record a transaction in the current period",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	typ := domain.TransactionType(args[0])
	switch typ {
	case domain.TxIncome, domain.TxExpense, domain.TxSaving:
	default:
		return fmt.Errorf("unknown transaction type %q (income, expense, or saving)", args[0])
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	date, err := parseDate(recordDate)
	if err != nil {
		return fmt.Errorf("parse --date: %w", err)
	}

	period, err := resolvePeriod(d, recordPeriod, date)
	if err != nil {
		return err
	}

	award, err := d.Progress.RecordTransaction(period.ID, domain.Transaction{
		Type:     typ,
		Amount:   amount,
		Date:     date,
		Category: recordCategory,
		Note:     recordNote,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s of %s (%s)\n", typ, formatMoney(amount), recordCategory)
	printAward(award)
	return nil
}
