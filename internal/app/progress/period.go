package progress

import "github.com/moneta-app/moneta/internal/domain"

// ─── Financial Period Scorer ────────────────────────────────────────────────
// Pure functions over a period's attributed transactions. All bonuses are
// additive and independent except the saving-rate tier, where only the
// single highest match applies.

// PeriodScore is a scored summary of one period.
type PeriodScore struct {
	domain.PeriodSummary
	Points int64 `json:"points"`
}

// PeriodComparison reports period-over-period savings improvement.
type PeriodComparison struct {
	Improved           bool    `json:"improved"`
	ImprovementPercent float64 `json:"improvement_percent"`
	Points             int64   `json:"points"`
}

// Summarize aggregates a transaction set into period totals. The saving
// rate is 0 when the period has no income.
func Summarize(txs []domain.Transaction) domain.PeriodSummary {
	var s domain.PeriodSummary
	for _, tx := range txs {
		switch tx.Type {
		case domain.TxIncome:
			s.TotalIncome += tx.Amount
		case domain.TxExpense:
			s.TotalExpenses += tx.Amount
		case domain.TxSaving:
			s.TotalSavings += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses - s.TotalSavings
	if s.TotalIncome > 0 {
		s.SavingRate = s.TotalSavings / s.TotalIncome
	}
	return s
}

// Score computes the performance score for a period's transactions.
func Score(period domain.FinancialPeriod, txs []domain.Transaction) PeriodScore {
	summary := Summarize(txs)
	points := int64(10) // base

	if period.SavingGoalAmount != nil && summary.TotalSavings >= *period.SavingGoalAmount {
		points += 50
	}

	points += rateTierBonus(summary.SavingRate)

	if period.MaxExpenseLimit != nil && summary.TotalExpenses <= *period.MaxExpenseLimit {
		points += 25
	}
	if summary.Balance > 0 {
		points += 20
	}
	if summary.SavingRate >= 0.30 {
		points += 50 // excellence bonus, stacks with the rate tier
	}

	return PeriodScore{PeriodSummary: summary, Points: points}
}

// rateTierBonus returns the single highest matching saving-rate bonus.
func rateTierBonus(rate float64) int64 {
	switch {
	case rate >= 0.30:
		return 50
	case rate >= 0.20:
		return 30
	case rate >= 0.10:
		return 15
	case rate >= 0.05:
		return 5
	default:
		return 0
	}
}

// CompareWithPrevious reports whether savings improved over the previous
// period. A previous period with zero savings counts as no improvement.
func CompareWithPrevious(current, previous domain.PeriodSummary) PeriodComparison {
	if previous.TotalSavings <= 0 || current.TotalSavings <= previous.TotalSavings {
		return PeriodComparison{}
	}

	delta := current.TotalSavings - previous.TotalSavings
	pct := delta / previous.TotalSavings * 100.0

	var points int64
	switch {
	case pct >= 50:
		points = 100
	case pct >= 25:
		points = 50
	case pct >= 10:
		points = 25
	default:
		points = 10
	}

	return PeriodComparison{Improved: true, ImprovementPercent: pct, Points: points}
}
