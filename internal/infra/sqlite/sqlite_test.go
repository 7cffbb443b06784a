package sqlite_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesIdempotently(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.Close()

	// Reopening the same directory must rerun migrations without error.
	db2, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db2.Close()
	if err := db2.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	db := testDB(t)

	p, err := db.LoadProfile()
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	if p.TotalPoints != 0 || p.CurrentRank != domain.RankNovice {
		t.Fatalf("fresh profile: %+v", p)
	}

	p.TotalPoints = 650
	p.CurrentStreak = 4
	p.LongestStreak = 9
	p.LastStreakDate = time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	p.CompletedGoalsCount = 2
	p.TotalTransactionsCount = 37
	p.BestSavingRate = 0.31
	p.Unlocked[domain.AchFirstGoal] = domain.UnlockedAchievement{
		Type: domain.AchFirstGoal, UnlockedAt: time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC),
	}

	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.LoadProfile()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TotalPoints != 650 || got.CurrentStreak != 4 || got.LongestStreak != 9 {
		t.Errorf("reloaded scalars: %+v", got)
	}
	// Rank is derived on load, never stored.
	if got.CurrentRank != domain.RankPractitioner {
		t.Errorf("rank = %s, want Practitioner at 650 points", got.CurrentRank)
	}
	if !got.LastStreakDate.Equal(p.LastStreakDate) {
		t.Errorf("last streak date = %v, want %v", got.LastStreakDate, p.LastStreakDate)
	}
	if got.BestSavingRate != 0.31 {
		t.Errorf("best rate = %f, want 0.31", got.BestSavingRate)
	}
	if !got.HasAchievement(domain.AchFirstGoal) {
		t.Error("unlocked achievement lost on round trip")
	}
}

func TestUnlockAchievement_Idempotent(t *testing.T) {
	db := testDB(t)
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	isNew, err := db.UnlockAchievement(domain.AchStreak7, at)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !isNew {
		t.Error("first unlock should be new")
	}

	isNew, err = db.UnlockAchievement(domain.AchStreak7, at.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if isNew {
		t.Error("duplicate unlock should not be new")
	}

	list, err := db.ListUnlockedAchievements()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 unlocked, got %d", len(list))
	}
	if !list[0].UnlockedAt.Equal(at) {
		t.Error("duplicate unlock overwrote original timestamp")
	}
}

func TestGoal_RoundTripWithSubGoals(t *testing.T) {
	db := testDB(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := domain.NewSavingGoal("House deposit", 20000, start, start.AddDate(2, 0, 0), 1000)
	if _, err := g.AddSubGoal("First 5k", 5000, start.AddDate(0, 6, 0), 100); err != nil {
		t.Fatalf("add sub: %v", err)
	}
	if _, err := g.AddSubGoal("Halfway", 10000, start.AddDate(1, 0, 0), 250); err != nil {
		t.Fatalf("add sub: %v", err)
	}

	if err := db.SaveGoal(g); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.GetGoal(g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("goal not found after save")
	}
	if got.Name != "House deposit" || got.Status != domain.GoalActive {
		t.Errorf("reloaded goal: %+v", got)
	}
	if len(got.SubGoals) != 2 {
		t.Fatalf("sub-goals = %d, want 2", len(got.SubGoals))
	}
	if got.SubGoals[0].Order != 0 || got.SubGoals[1].Order != 1 {
		t.Error("sub-goal order not preserved")
	}

	// Mutate and upsert.
	got.CurrentAmount = 6000
	got.SubGoals[0].Completed = true
	got.SubGoals[0].CompletedAt = start.AddDate(0, 5, 0)
	if err := db.SaveGoal(got); err != nil {
		t.Fatalf("resave: %v", err)
	}

	again, err := db.GetGoal(g.ID)
	if err != nil {
		t.Fatalf("reget: %v", err)
	}
	if again.CurrentAmount != 6000 || !again.SubGoals[0].Completed {
		t.Errorf("upsert lost changes: %+v", again)
	}
}

func TestGoal_NotFound(t *testing.T) {
	db := testDB(t)

	got, err := db.GetGoal(uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown goal")
	}

	if err := db.DeleteGoal(uuid.New()); err != domain.ErrGoalNotFound {
		t.Errorf("delete unknown: %v, want ErrGoalNotFound", err)
	}
}

func TestPeriod_RoundTrip(t *testing.T) {
	db := testDB(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := domain.NewFinancialPeriod(start, start.AddDate(0, 1, 0))
	goal := 500.0
	p.SavingGoalAmount = &goal

	if err := db.InsertPeriod(p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := db.GetPeriod(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Closed {
		t.Fatalf("reloaded period: %+v", got)
	}
	if got.SavingGoalAmount == nil || *got.SavingGoalAmount != 500 {
		t.Error("saving goal amount lost")
	}
	if got.MaxExpenseLimit != nil {
		t.Error("unset expense limit should stay nil")
	}

	if err := db.MarkPeriodClosed(p.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	got, _ = db.GetPeriod(p.ID)
	if !got.Closed {
		t.Error("period should be closed")
	}

	latest, err := db.LatestClosedPeriod()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != p.ID {
		t.Errorf("latest closed = %+v, want the period just closed", latest)
	}
}

func TestTransactions_RoundTrip(t *testing.T) {
	db := testDB(t)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := domain.NewFinancialPeriod(start, start.AddDate(0, 1, 0))
	if err := db.InsertPeriod(p); err != nil {
		t.Fatalf("insert period: %v", err)
	}

	txs := []domain.Transaction{
		{ID: uuid.New(), Type: domain.TxIncome, Amount: 2500, Date: start.AddDate(0, 0, 1), Category: "salary"},
		{ID: uuid.New(), Type: domain.TxExpense, Amount: 89.90, Date: start.AddDate(0, 0, 3), Category: "groceries", Note: "weekly shop"},
	}
	for _, tx := range txs {
		if err := db.InsertTransaction(p.ID, tx); err != nil {
			t.Fatalf("insert tx: %v", err)
		}
	}

	got, err := db.ListTransactions(p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("transactions = %d, want 2", len(got))
	}
	// Date-ascending order.
	if got[0].Type != domain.TxIncome || got[1].Note != "weekly shop" {
		t.Errorf("reloaded transactions: %+v", got)
	}
}

func TestLatestClosedPeriod_NoneClosed(t *testing.T) {
	db := testDB(t)

	latest, err := db.LatestClosedPeriod()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Errorf("expected nil, got %+v", latest)
	}
}
