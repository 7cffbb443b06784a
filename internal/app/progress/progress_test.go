package progress_test

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta/internal/app/progress"
	"github.com/moneta-app/moneta/internal/domain"
)

var day1 = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

// ═══════════════════════════════════════════════════════════════════════════
// Point & Rank Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestAddPoints_Accumulates(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	for _, delta := range []int64{10, 0, 40} {
		before := p.TotalPoints
		res := e.AddPoints(p, delta)
		if p.TotalPoints != before+delta {
			t.Errorf("after AddPoints(%d): total = %d, want %d", delta, p.TotalPoints, before+delta)
		}
		if res.PointsEarned != delta {
			t.Errorf("AddPoints(%d) reported %d earned", delta, res.PointsEarned)
		}
	}
	if p.CurrentRank != domain.RankFor(p.TotalPoints) {
		t.Error("rank must always equal RankFor(totalPoints)")
	}
}

func TestAddPoints_NegativeDeclined(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()
	e.AddPoints(p, 50)

	res := e.AddPoints(p, -20)
	if res.PointsEarned != 0 || p.TotalPoints != 50 {
		t.Errorf("negative delta must be a no-op: earned=%d total=%d", res.PointsEarned, p.TotalPoints)
	}
}

func TestAddPoints_RankUp(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.AddPoints(p, 99)
	if res.RankedUp {
		t.Error("99 points should still be Novice")
	}

	res = e.AddPoints(p, 1)
	if !res.RankedUp || res.NewRank != domain.RankApprentice {
		t.Errorf("100 points: rankedUp=%v newRank=%s, want true/Apprentice", res.RankedUp, res.NewRank)
	}

	// Rank never decreases while points never decrease.
	res = e.AddPoints(p, 10)
	if res.RankedUp {
		t.Error("no rank-up expected at 110 points")
	}
	if res.NewRank != domain.RankApprentice {
		t.Errorf("rank regressed to %s", res.NewRank)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreak_FirstDay(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.RecordDailyActivity(p, day1)
	if p.CurrentStreak != 1 || p.LongestStreak != 1 {
		t.Errorf("streak = %d/%d, want 1/1", p.CurrentStreak, p.LongestStreak)
	}
	if res.PointsEarned != 2 {
		t.Errorf("day 1 points = %d, want 2", res.PointsEarned)
	}
}

func TestStreak_SameDayIdempotent(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	e.RecordDailyActivity(p, day1)
	res := e.RecordDailyActivity(p, day1.Add(3*time.Hour)) // same calendar day

	if res.PointsEarned != 0 {
		t.Errorf("second call same day earned %d, want 0", res.PointsEarned)
	}
	if p.CurrentStreak != 1 || p.TotalPoints != 2 {
		t.Errorf("state changed on duplicate day: streak=%d points=%d", p.CurrentStreak, p.TotalPoints)
	}
}

func TestStreak_WeekOfPoints(t *testing.T) {
	// Days 1–6 award 2×days, day 7 switches tier to 5×days and unlocks
	// the 7-day achievement exactly once.
	e := progress.NewEngine()
	p := domain.NewProfile()

	wantDaily := []int64{2, 4, 6, 8, 10, 12}
	for i, want := range wantDaily {
		res := e.RecordDailyActivity(p, day1.AddDate(0, 0, i))
		if res.PointsEarned != want {
			t.Errorf("day %d points = %d, want %d", i+1, res.PointsEarned, want)
		}
		if len(res.Unlocked) != 0 {
			t.Errorf("day %d unexpectedly unlocked %v", i+1, res.Unlocked)
		}
	}

	res := e.RecordDailyActivity(p, day1.AddDate(0, 0, 6))
	if p.CurrentStreak != 7 {
		t.Fatalf("streak = %d, want 7", p.CurrentStreak)
	}
	// 35 streak points plus the Week Warrior reward (50 × rare).
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchStreak7 {
		t.Fatalf("day 7 unlocked %v, want streak_7", res.Unlocked)
	}
	want := int64(35) + res.Unlocked[0].AwardedPoints()
	if res.PointsEarned != want {
		t.Errorf("day 7 points = %d, want %d", res.PointsEarned, want)
	}
}

func TestStreak_TierBoundaries(t *testing.T) {
	e := progress.NewEngine()

	tests := []struct {
		days int
		want int64
	}{
		{1, 2}, {6, 12},
		{7, 35}, {13, 65},
		{14, 140}, {29, 290},
		{30, 600}, {45, 900},
	}
	for _, tt := range tests {
		p := domain.NewProfile()
		p.CurrentStreak = tt.days - 1
		p.LongestStreak = tt.days - 1
		p.LastStreakDate = domain.DateOnly(day1.AddDate(0, 0, -1))

		res := e.RecordDailyActivity(p, day1)
		streakOnly := res.PointsEarned
		for _, def := range res.Unlocked {
			streakOnly -= def.AwardedPoints()
		}
		if streakOnly != tt.want {
			t.Errorf("streak day %d points = %d, want %d", tt.days, streakOnly, tt.want)
		}
	}
}

func TestStreak_GapResets(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	for i := 0; i < 5; i++ {
		e.RecordDailyActivity(p, day1.AddDate(0, 0, i))
	}
	if p.CurrentStreak != 5 {
		t.Fatalf("streak = %d, want 5", p.CurrentStreak)
	}

	// Two-day gap breaks the run regardless of its length.
	e.RecordDailyActivity(p, day1.AddDate(0, 0, 7))
	if p.CurrentStreak != 1 {
		t.Errorf("streak after gap = %d, want 1", p.CurrentStreak)
	}
	if p.LongestStreak != 5 {
		t.Errorf("longest = %d, want 5 preserved", p.LongestStreak)
	}
}

func TestStreak_MilestoneFiresOncePerRun(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	for i := 0; i < 8; i++ {
		e.RecordDailyActivity(p, day1.AddDate(0, 0, i))
	}
	if !p.HasAchievement(domain.AchStreak7) {
		t.Fatal("streak_7 should be unlocked")
	}

	// Break the streak, rebuild past 7 — the unlock must not re-award.
	e.RecordDailyActivity(p, day1.AddDate(0, 0, 20))
	before := p.TotalPoints
	var streakPts int64
	for i := 1; i < 8; i++ {
		res := e.RecordDailyActivity(p, day1.AddDate(0, 0, 20+i))
		streakPts += res.PointsEarned
		if len(res.Unlocked) != 0 {
			t.Errorf("rebuilt run day %d re-unlocked %v", i+1, res.Unlocked)
		}
	}
	if p.TotalPoints != before+streakPts {
		t.Error("points changed beyond streak awards on rebuilt run")
	}
}

func TestStreak_LongestInvariant(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	days := []int{0, 1, 2, 5, 6, 7, 8, 9, 15}
	for _, d := range days {
		e.RecordDailyActivity(p, day1.AddDate(0, 0, d))
		if p.LongestStreak < p.CurrentStreak {
			t.Fatalf("longest (%d) < current (%d)", p.LongestStreak, p.CurrentStreak)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestUnlockAchievement_Idempotent(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res1 := e.UnlockAchievement(p, domain.AchFirstGoal, day1)
	if len(res1.Unlocked) != 1 || res1.PointsEarned == 0 {
		t.Fatalf("first unlock: %+v", res1)
	}

	res2 := e.UnlockAchievement(p, domain.AchFirstGoal, day1.AddDate(0, 0, 1))
	if len(res2.Unlocked) != 0 || res2.PointsEarned != 0 {
		t.Errorf("duplicate unlock awarded again: %+v", res2)
	}
	if len(p.Unlocked) != 1 {
		t.Errorf("unlocked set size = %d, want 1", len(p.Unlocked))
	}
	// First timestamp wins.
	if !p.Unlocked[domain.AchFirstGoal].UnlockedAt.Equal(day1) {
		t.Error("duplicate unlock overwrote the original timestamp")
	}
}

func TestUnlockAchievement_UnknownType(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.UnlockAchievement(p, "no_such_achievement", day1)
	if res.PointsEarned != 0 || len(p.Unlocked) != 0 {
		t.Errorf("unknown type must be a no-op: %+v", res)
	}
}

func TestRecordTransaction_Thresholds(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.RecordTransaction(p, day1)
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchFirstTransaction {
		t.Fatalf("first transaction unlocked %v", res.Unlocked)
	}

	for i := 2; i <= 99; i++ {
		if res := e.RecordTransaction(p, day1); len(res.Unlocked) != 0 {
			t.Fatalf("transaction %d unlocked %v", i, res.Unlocked)
		}
	}

	res = e.RecordTransaction(p, day1)
	if p.TotalTransactionsCount != 100 {
		t.Fatalf("count = %d, want 100", p.TotalTransactionsCount)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchTransactions100 {
		t.Errorf("transaction 100 unlocked %v, want transactions_100", res.Unlocked)
	}
}

func TestRecordGoalCompleted_Thresholds(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.RecordGoalCompleted(p, 300, day1)
	if p.CompletedGoalsCount != 1 {
		t.Fatalf("count = %d, want 1", p.CompletedGoalsCount)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchFirstGoal {
		t.Fatalf("first goal unlocked %v", res.Unlocked)
	}
	want := int64(300) + res.Unlocked[0].AwardedPoints()
	if res.PointsEarned != want {
		t.Errorf("earned = %d, want %d", res.PointsEarned, want)
	}

	for i := 2; i <= 4; i++ {
		if res := e.RecordGoalCompleted(p, 10, day1); len(res.Unlocked) != 0 {
			t.Fatalf("goal %d unlocked %v", i, res.Unlocked)
		}
	}

	res = e.RecordGoalCompleted(p, 10, day1)
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchGoals5 {
		t.Errorf("fifth goal unlocked %v, want goals_5", res.Unlocked)
	}
}

func TestUpdateBestSavingRate_HighWaterMark(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	e.UpdateBestSavingRate(p, 0.15, day1)
	if p.BestSavingRate != 0.15 {
		t.Fatalf("best = %f, want 0.15", p.BestSavingRate)
	}

	// A lower rate never lowers the mark.
	res := e.UpdateBestSavingRate(p, 0.10, day1)
	if p.BestSavingRate != 0.15 || res.PointsEarned != 0 {
		t.Errorf("lower rate changed state: best=%f res=%+v", p.BestSavingRate, res)
	}

	res = e.UpdateBestSavingRate(p, 0.25, day1)
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchSaver20 {
		t.Errorf("crossing 20%% unlocked %v", res.Unlocked)
	}

	res = e.UpdateBestSavingRate(p, 0.55, day1)
	if len(res.Unlocked) != 1 || res.Unlocked[0].Type != domain.AchSaver50 {
		t.Errorf("crossing 50%% unlocked %v", res.Unlocked)
	}
}

func TestUpdateBestSavingRate_JumpUnlocksBoth(t *testing.T) {
	// A rate that reaches 50% without ever pausing at 20% still unlocks
	// both tiers — the thresholds evaluate independently.
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.UpdateBestSavingRate(p, 0.60, day1)
	if len(res.Unlocked) != 2 {
		t.Fatalf("unlocked %d achievements, want both rate tiers", len(res.Unlocked))
	}
	if !p.HasAchievement(domain.AchSaver20) || !p.HasAchievement(domain.AchSaver50) {
		t.Error("expected saver_20 and saver_50 together")
	}
}

func TestUpdateBestSavingRate_NegativeDeclined(t *testing.T) {
	e := progress.NewEngine()
	p := domain.NewProfile()

	res := e.UpdateBestSavingRate(p, -0.3, day1)
	if res.PointsEarned != 0 || p.BestSavingRate != 0 {
		t.Errorf("negative rate must be a no-op: %+v", res)
	}
}

func TestCatalog_UniqueTypes(t *testing.T) {
	e := progress.NewEngine()
	seen := make(map[domain.AchievementType]bool)
	for _, def := range e.Catalog() {
		if seen[def.Type] {
			t.Errorf("duplicate achievement type %q", def.Type)
		}
		seen[def.Type] = true
	}
	if e.CatalogSize() != 9 {
		t.Errorf("catalog size = %d, want 9", e.CatalogSize())
	}
}
