package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/domain"
)

// ─── Saving Goals ───────────────────────────────────────────────────────────

// SaveGoal upserts a goal and its sub-goals.
func (d *DB) SaveGoal(g *domain.SavingGoal) error {
	_, err := d.db.Exec(
		`INSERT INTO goals (id, name, target_amount, current_amount, start_date, target_date, status, completed_at, reward_points)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			target_amount=excluded.target_amount,
			current_amount=excluded.current_amount,
			start_date=excluded.start_date,
			target_date=excluded.target_date,
			status=excluded.status,
			completed_at=excluded.completed_at,
			reward_points=excluded.reward_points`,
		g.ID.String(), g.Name, g.TargetAmount, g.CurrentAmount,
		g.StartDate.Unix(), g.TargetDate.Unix(), string(g.Status),
		nullableUnix(g.CompletedAt), g.RewardPoints,
	)
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}

	for _, sub := range g.SubGoals {
		_, err := d.db.Exec(
			`INSERT INTO sub_goals (id, goal_id, name, target_amount, target_date, completed, completed_at, reward_points, ord)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				name=excluded.name,
				target_amount=excluded.target_amount,
				target_date=excluded.target_date,
				completed=excluded.completed,
				completed_at=excluded.completed_at,
				reward_points=excluded.reward_points,
				ord=excluded.ord`,
			sub.ID.String(), g.ID.String(), sub.Name, sub.TargetAmount,
			sub.TargetDate.Unix(), sub.Completed, nullableUnix(sub.CompletedAt),
			sub.RewardPoints, sub.Order,
		)
		if err != nil {
			return fmt.Errorf("save sub-goal: %w", err)
		}
	}
	return nil
}

// GetGoal retrieves a goal with its sub-goals. Returns nil if not found.
func (d *DB) GetGoal(id uuid.UUID) (*domain.SavingGoal, error) {
	row := d.db.QueryRow(
		`SELECT id, name, target_amount, current_amount, start_date, target_date, status, completed_at, reward_points
		 FROM goals WHERE id = ?`, id.String(),
	)
	g, err := scanGoal(row)
	if err != nil || g == nil {
		return g, err
	}

	subs, err := d.listSubGoals(id)
	if err != nil {
		return nil, err
	}
	g.SubGoals = subs
	return g, nil
}

// ListGoals returns all goals ordered by target date.
func (d *DB) ListGoals() ([]domain.SavingGoal, error) {
	rows, err := d.db.Query(
		`SELECT id, name, target_amount, current_amount, start_date, target_date, status, completed_at, reward_points
		 FROM goals ORDER BY target_date ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.SavingGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range goals {
		subs, err := d.listSubGoals(goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].SubGoals = subs
	}
	return goals, nil
}

// DeleteGoal removes a goal and, via cascade, its sub-goals.
func (d *DB) DeleteGoal(id uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM goals WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (d *DB) listSubGoals(goalID uuid.UUID) ([]domain.SubGoal, error) {
	rows, err := d.db.Query(
		`SELECT id, name, target_amount, target_date, completed, completed_at, reward_points, ord
		 FROM sub_goals WHERE goal_id = ? ORDER BY ord ASC`, goalID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.SubGoal
	for rows.Next() {
		var sub domain.SubGoal
		var id string
		var targetDate int64
		var completedAt sql.NullInt64
		if err := rows.Scan(&id, &sub.Name, &sub.TargetAmount, &targetDate,
			&sub.Completed, &completedAt, &sub.RewardPoints, &sub.Order); err != nil {
			return nil, err
		}
		sub.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse sub-goal id: %w", err)
		}
		sub.TargetDate = time.Unix(targetDate, 0).UTC()
		if completedAt.Valid {
			sub.CompletedAt = time.Unix(completedAt.Int64, 0).UTC()
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func scanGoal(s scanner) (*domain.SavingGoal, error) {
	var g domain.SavingGoal
	var id, status string
	var startDate, targetDate int64
	var completedAt sql.NullInt64

	err := s.Scan(&id, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&startDate, &targetDate, &status, &completedAt, &g.RewardPoints)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	g.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse goal id: %w", err)
	}
	g.Status = domain.GoalStatus(status)
	g.StartDate = time.Unix(startDate, 0).UTC()
	g.TargetDate = time.Unix(targetDate, 0).UTC()
	if completedAt.Valid {
		g.CompletedAt = time.Unix(completedAt.Int64, 0).UTC()
	}
	return &g, nil
}
