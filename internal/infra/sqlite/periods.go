package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/domain"
)

// ─── Financial Periods ──────────────────────────────────────────────────────

// InsertPeriod creates a new period.
func (d *DB) InsertPeriod(p *domain.FinancialPeriod) error {
	_, err := d.db.Exec(
		`INSERT INTO periods (id, start_date, end_date, closed, saving_goal_amount, max_expense_limit)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.StartDate.Unix(), p.EndDate.Unix(), p.Closed,
		nullableFloat(p.SavingGoalAmount), nullableFloat(p.MaxExpenseLimit),
	)
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	return nil
}

// GetPeriod retrieves a period by ID. Returns nil if not found.
func (d *DB) GetPeriod(id uuid.UUID) (*domain.FinancialPeriod, error) {
	row := d.db.QueryRow(
		`SELECT id, start_date, end_date, closed, saving_goal_amount, max_expense_limit
		 FROM periods WHERE id = ?`, id.String(),
	)
	return scanPeriod(row)
}

// ListPeriods returns all periods, newest first.
func (d *DB) ListPeriods() ([]domain.FinancialPeriod, error) {
	rows, err := d.db.Query(
		`SELECT id, start_date, end_date, closed, saving_goal_amount, max_expense_limit
		 FROM periods ORDER BY end_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []domain.FinancialPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}
	return periods, rows.Err()
}

// LatestClosedPeriod returns the most recently ended closed period, or
// nil if none has been closed yet.
func (d *DB) LatestClosedPeriod() (*domain.FinancialPeriod, error) {
	row := d.db.QueryRow(
		`SELECT id, start_date, end_date, closed, saving_goal_amount, max_expense_limit
		 FROM periods WHERE closed = 1 ORDER BY end_date DESC LIMIT 1`,
	)
	return scanPeriod(row)
}

// MarkPeriodClosed flips a period to closed.
func (d *DB) MarkPeriodClosed(id uuid.UUID) error {
	result, err := d.db.Exec(`UPDATE periods SET closed = 1 WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrPeriodNotFound
	}
	return nil
}

// ─── Transactions ───────────────────────────────────────────────────────────

// InsertTransaction attributes a transaction to a period.
func (d *DB) InsertTransaction(periodID uuid.UUID, tx domain.Transaction) error {
	_, err := d.db.Exec(
		`INSERT INTO transactions (id, period_id, type, amount, date, category, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID.String(), periodID.String(), string(tx.Type), tx.Amount,
		tx.Date.Unix(), tx.Category, tx.Note,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListTransactions returns a period's transactions in date order.
func (d *DB) ListTransactions(periodID uuid.UUID) ([]domain.Transaction, error) {
	rows, err := d.db.Query(
		`SELECT id, type, amount, date, category, note
		 FROM transactions WHERE period_id = ? ORDER BY date ASC`, periodID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var id, typ string
		var date int64
		if err := rows.Scan(&id, &typ, &tx.Amount, &date, &tx.Category, &tx.Note); err != nil {
			return nil, err
		}
		tx.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse transaction id: %w", err)
		}
		tx.Type = domain.TransactionType(typ)
		tx.Date = time.Unix(date, 0).UTC()
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func scanPeriod(s scanner) (*domain.FinancialPeriod, error) {
	var p domain.FinancialPeriod
	var id string
	var startDate, endDate int64
	var savingGoal, expenseLimit sql.NullFloat64

	err := s.Scan(&id, &startDate, &endDate, &p.Closed, &savingGoal, &expenseLimit)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse period id: %w", err)
	}
	p.StartDate = time.Unix(startDate, 0).UTC()
	p.EndDate = time.Unix(endDate, 0).UTC()
	if savingGoal.Valid {
		v := savingGoal.Float64
		p.SavingGoalAmount = &v
	}
	if expenseLimit.Valid {
		v := expenseLimit.Float64
		p.MaxExpenseLimit = &v
	}
	return &p, nil
}
