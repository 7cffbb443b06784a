package domain

import (
	"time"

	"github.com/google/uuid"
)

// ─── Financial Periods ──────────────────────────────────────────────────────

// TransactionType groups transaction amounts for period aggregation.
type TransactionType string

const (
	TxIncome  TransactionType = "income"
	TxExpense TransactionType = "expense"
	TxSaving  TransactionType = "saving"
)

// Transaction is a single money movement attributed to a period.
// Field-level validation happens before it reaches this engine.
type Transaction struct {
	ID       uuid.UUID       `json:"id"`
	Type     TransactionType `json:"type"`
	Amount   float64         `json:"amount"`
	Date     time.Time       `json:"date"`
	Category string          `json:"category"`
	Note     string          `json:"note,omitempty"`
}

// FinancialPeriod is a bounded date range whose attributed transactions
// are aggregated and scored. SavingGoalAmount and MaxExpenseLimit are
// optional targets — nil means not configured.
type FinancialPeriod struct {
	ID               uuid.UUID `json:"id"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Closed           bool      `json:"closed"`
	SavingGoalAmount *float64  `json:"saving_goal_amount,omitempty"`
	MaxExpenseLimit  *float64  `json:"max_expense_limit,omitempty"`
}

// NewFinancialPeriod creates an open period for the given date range.
func NewFinancialPeriod(start, end time.Time) *FinancialPeriod {
	return &FinancialPeriod{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   end,
	}
}

// PeriodSummary holds the derived aggregates of a period's transactions.
type PeriodSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	TotalSavings  float64 `json:"total_savings"`
	Balance       float64 `json:"balance"`
	SavingRate    float64 `json:"saving_rate"` // 0 if no income
}
