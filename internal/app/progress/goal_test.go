package progress_test

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta/internal/app/progress"
	"github.com/moneta-app/moneta/internal/domain"
)

func testGoal(target float64, reward int64) *domain.SavingGoal {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.NewSavingGoal("Vacation", target, start, start.AddDate(0, 6, 0), reward)
}

func TestContribute_Partial(t *testing.T) {
	g := testGoal(1000, 300)

	res := progress.Contribute(g, 125, day1)
	if res.Completed {
		t.Fatal("goal should not complete at 125/1000")
	}
	if res.PointsEarned != 12 { // floor(125/10)
		t.Errorf("points = %d, want 12", res.PointsEarned)
	}
	if g.CurrentAmount != 125 || g.Status != domain.GoalActive {
		t.Errorf("goal state: amount=%.1f status=%s", g.CurrentAmount, g.Status)
	}
}

func TestContribute_CompletionClamps(t *testing.T) {
	g := testGoal(1000, 300)
	g.CurrentAmount = 950

	res := progress.Contribute(g, 100, day1)
	if !res.Completed {
		t.Fatal("goal should complete")
	}
	if g.CurrentAmount != 1000 {
		t.Errorf("amount = %.1f, want exactly 1000 (clamped)", g.CurrentAmount)
	}
	if g.Status != domain.GoalCompleted || !g.CompletedAt.Equal(day1) {
		t.Errorf("status=%s completedAt=%v", g.Status, g.CompletedAt)
	}
	// Full reward, not the proportional amount.
	if res.PointsEarned != 300 {
		t.Errorf("points = %d, want 300", res.PointsEarned)
	}
}

func TestContribute_NonActiveDeclined(t *testing.T) {
	for _, status := range []domain.GoalStatus{
		domain.GoalCompleted, domain.GoalPaused, domain.GoalFailed, domain.GoalCancelled,
	} {
		g := testGoal(1000, 300)
		g.Status = status
		res := progress.Contribute(g, 100, day1)
		if res.PointsEarned != 0 || g.CurrentAmount != 0 {
			t.Errorf("%s goal accepted contribution: %+v", status, res)
		}
	}
}

func TestContribute_NonPositiveDeclined(t *testing.T) {
	g := testGoal(1000, 300)
	for _, amount := range []float64{0, -50} {
		res := progress.Contribute(g, amount, day1)
		if res.PointsEarned != 0 || g.CurrentAmount != 0 {
			t.Errorf("amount %.1f accepted: %+v", amount, res)
		}
	}
}

func TestContribute_SubGoalsCompleteOpportunistically(t *testing.T) {
	g := testGoal(1000, 300)
	g.AddSubGoal("First quarter", 250, g.TargetDate, 20)
	g.AddSubGoal("Halfway", 500, g.TargetDate, 40)

	// One contribution can complete several milestones at once.
	res := progress.Contribute(g, 600, day1)
	if res.Completed {
		t.Fatal("600/1000 should not complete the goal")
	}
	if len(res.CompletedSubGoals) != 2 {
		t.Fatalf("completed %d sub-goals, want 2", len(res.CompletedSubGoals))
	}
	if res.PointsEarned != 60+20+40 { // floor(600/10) + both milestone rewards
		t.Errorf("points = %d, want 120", res.PointsEarned)
	}

	// Already-completed milestones never re-fire.
	res = progress.Contribute(g, 50, day1)
	if len(res.CompletedSubGoals) != 0 {
		t.Errorf("milestones re-completed: %v", res.CompletedSubGoals)
	}
}

func TestContribute_CompletionFinishesSubGoals(t *testing.T) {
	g := testGoal(1000, 300)
	g.AddSubGoal("Halfway", 500, g.TargetDate, 40)

	res := progress.Contribute(g, 1000, day1)
	if !res.Completed {
		t.Fatal("goal should complete")
	}
	if len(res.CompletedSubGoals) != 1 {
		t.Fatalf("completed %d sub-goals, want 1", len(res.CompletedSubGoals))
	}
	if res.PointsEarned != 300+40 {
		t.Errorf("points = %d, want 340", res.PointsEarned)
	}
}

func TestWithdraw_FloorsAtZero(t *testing.T) {
	g := testGoal(1000, 300)
	g.CurrentAmount = 120

	progress.Withdraw(g, 200)
	if g.CurrentAmount != 0 {
		t.Errorf("amount = %.1f, want 0", g.CurrentAmount)
	}
	if g.Status != domain.GoalActive {
		t.Errorf("withdraw changed status to %s", g.Status)
	}
}

func TestWithdraw_CompletedGoalUntouched(t *testing.T) {
	g := testGoal(1000, 300)
	g.CurrentAmount = 1000
	g.Status = domain.GoalCompleted

	progress.Withdraw(g, 500)
	if g.CurrentAmount != 1000 {
		t.Errorf("completed goal balance moved to %.1f", g.CurrentAmount)
	}
}

func TestGoalPoints_EarlyCompletionBonus(t *testing.T) {
	g := testGoal(1000, 300)
	g.AddSubGoal("Halfway", 500, g.TargetDate, 40)
	g.SubGoals[0].Completed = true

	g.Status = domain.GoalCompleted
	g.CurrentAmount = 1000
	g.CompletedAt = g.TargetDate.AddDate(0, 0, -10)

	// 300 reward + 40 milestone + 2×10 days early.
	if got := progress.GoalPoints(g); got != 360 {
		t.Errorf("total points = %d, want 360", got)
	}
}

func TestGoalPoints_NoBonusWhenLate(t *testing.T) {
	g := testGoal(1000, 300)
	g.Status = domain.GoalCompleted
	g.CompletedAt = g.TargetDate.AddDate(0, 0, 3)

	if got := progress.GoalPoints(g); got != 300 {
		t.Errorf("total points = %d, want 300 (no early bonus)", got)
	}
}

func TestGoalPoints_IncompleteGoal(t *testing.T) {
	g := testGoal(1000, 300)
	g.AddSubGoal("Halfway", 500, g.TargetDate, 40)
	g.SubGoals[0].Completed = true

	// Only completed milestones count before the goal itself completes.
	if got := progress.GoalPoints(g); got != 40 {
		t.Errorf("total points = %d, want 40", got)
	}
}
