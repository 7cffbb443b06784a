package progress

import (
	"math"
	"time"

	"github.com/moneta-app/moneta/internal/domain"
)

// ─── Saving Goal Tracker ────────────────────────────────────────────────────
// Mutates a SavingGoal in place. Contributions to a non-active goal, and
// non-positive amounts, decline with a zero result.

// ContributionResult describes the effect of one contribution.
type ContributionResult struct {
	PointsEarned      int64            `json:"points_earned"`
	Completed         bool             `json:"completed"`
	CompletedSubGoals []domain.SubGoal `json:"completed_sub_goals,omitempty"`
}

// Contribute adds amount to the goal's balance. Completing the goal clamps
// the balance to the target and returns the goal's full reward; otherwise
// the reward is proportional (1 point per 10 saved). Sub-goals whose
// target the new balance reaches complete opportunistically, and their
// rewards are included.
func Contribute(g *domain.SavingGoal, amount float64, now time.Time) ContributionResult {
	if g.Status != domain.GoalActive || amount <= 0 {
		return ContributionResult{}
	}

	g.CurrentAmount += amount

	var res ContributionResult
	if g.CurrentAmount >= g.TargetAmount {
		g.CurrentAmount = g.TargetAmount
		g.Status = domain.GoalCompleted
		g.CompletedAt = now
		res.Completed = true
		res.PointsEarned = g.RewardPoints
	} else {
		res.PointsEarned = int64(math.Floor(amount / 10))
	}

	res.CompletedSubGoals = completeSubGoals(g, now)
	for _, sub := range res.CompletedSubGoals {
		res.PointsEarned += sub.RewardPoints
	}
	return res
}

// Withdraw removes amount from an active goal's balance, flooring at
// zero. Status never changes on withdrawal.
func Withdraw(g *domain.SavingGoal, amount float64) {
	if g.Status != domain.GoalActive || amount <= 0 {
		return
	}
	g.CurrentAmount -= amount
	if g.CurrentAmount < 0 {
		g.CurrentAmount = 0
	}
}

// GoalPoints sums everything the goal has earned: its own reward once
// completed, each completed sub-goal's reward, and an early-completion
// bonus of 2 points per whole day ahead of the target date.
func GoalPoints(g *domain.SavingGoal) int64 {
	var total int64
	if g.Status == domain.GoalCompleted {
		total += g.RewardPoints
		if !g.CompletedAt.IsZero() && g.CompletedAt.Before(g.TargetDate) {
			if early := domain.DaysBetween(g.CompletedAt, g.TargetDate); early > 0 {
				total += 2 * int64(early)
			}
		}
	}
	for _, sub := range g.SubGoals {
		if sub.Completed {
			total += sub.RewardPoints
		}
	}
	return total
}

// completeSubGoals marks every incomplete sub-goal whose target the
// parent's balance now covers. Sub-goals complete independently of each
// other and of their declared order.
func completeSubGoals(g *domain.SavingGoal, now time.Time) []domain.SubGoal {
	var completed []domain.SubGoal
	for i := range g.SubGoals {
		sub := &g.SubGoals[i]
		if sub.Completed || g.CurrentAmount < sub.TargetAmount {
			continue
		}
		sub.Completed = true
		sub.CompletedAt = now
		completed = append(completed, *sub)
	}
	return completed
}
