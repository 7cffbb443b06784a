package domain

import (
	"time"

	"github.com/google/uuid"
)

// ─── Saving Goals ───────────────────────────────────────────────────────────

// GoalStatus is the lifecycle state of a saving goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
	GoalPaused    GoalStatus = "paused"
	GoalCancelled GoalStatus = "cancelled"
)

// SubGoal is an intermediate milestone inside a saving goal. It has no
// balance of its own — progress is read from the parent's current amount.
type SubGoal struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"target_amount"`
	TargetDate   time.Time `json:"target_date"`
	Completed    bool      `json:"completed"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
	RewardPoints int64     `json:"reward_points"`
	Order        int       `json:"order"`
}

// SavingGoal is a savings target with optional milestone sub-goals.
// CurrentAmount only moves while the goal is active; on completion it is
// clamped to exactly TargetAmount.
type SavingGoal struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	StartDate     time.Time  `json:"start_date"`
	TargetDate    time.Time  `json:"target_date"`
	Status        GoalStatus `json:"status"`
	CompletedAt   time.Time  `json:"completed_at,omitempty"`
	RewardPoints  int64      `json:"reward_points"`
	SubGoals      []SubGoal  `json:"sub_goals,omitempty"`
}

// NewSavingGoal creates an active goal with a zero balance.
func NewSavingGoal(name string, target float64, start, targetDate time.Time, reward int64) *SavingGoal {
	return &SavingGoal{
		ID:           uuid.New(),
		Name:         name,
		TargetAmount: target,
		StartDate:    start,
		TargetDate:   targetDate,
		Status:       GoalActive,
		RewardPoints: reward,
	}
}

// AddSubGoal appends a milestone. A sub-goal target may never exceed the
// parent target.
func (g *SavingGoal) AddSubGoal(name string, target float64, targetDate time.Time, reward int64) (*SubGoal, error) {
	if target > g.TargetAmount {
		return nil, ErrSubGoalTooLarge
	}
	sub := SubGoal{
		ID:           uuid.New(),
		Name:         name,
		TargetAmount: target,
		TargetDate:   targetDate,
		RewardPoints: reward,
		Order:        len(g.SubGoals),
	}
	g.SubGoals = append(g.SubGoals, sub)
	return &g.SubGoals[len(g.SubGoals)-1], nil
}

// Remaining returns the amount still to save (0 once completed).
func (g *SavingGoal) Remaining() float64 {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ProgressPercent returns saved progress toward the target (0.0–100.0).
func (g *SavingGoal) ProgressPercent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := g.CurrentAmount / g.TargetAmount * 100.0
	if pct > 100 {
		pct = 100
	}
	return pct
}
