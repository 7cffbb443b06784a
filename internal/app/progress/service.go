package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/infra/sqlite"
)

// Service owns persistence and orchestration around the engine: it loads
// the profile, applies one engine mutation, and saves what changed. All
// mutations to a given profile or goal go through this one service, which
// satisfies the engine's single-writer model.
type Service struct {
	db     *sqlite.DB
	engine *Engine
	clock  func() time.Time
}

// NewService creates a progress service over the given store.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, engine: NewEngine(), clock: time.Now}
}

// WithClock overrides the service clock. Tests use this to supply
// deterministic dates.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Engine exposes the underlying engine for read-only catalog access.
func (s *Service) Engine() *Engine { return s.engine }

// Now returns the service's current time.
func (s *Service) Now() time.Time { return s.clock() }

// Ping verifies the underlying store is reachable.
func (s *Service) Ping() error { return s.db.Ping() }

// Profile loads the stored profile, creating a fresh one on first use.
func (s *Service) Profile() (*domain.GamificationProfile, error) {
	return s.db.LoadProfile()
}

// ─── Inbound events ─────────────────────────────────────────────────────────

// RecordTransaction persists a transaction against a period and reports
// it to the engine. Recording a transaction is the qualifying daily
// activity, so the streak advances here as well.
func (s *Service) RecordTransaction(periodID uuid.UUID, tx domain.Transaction) (AwardResult, error) {
	period, err := s.db.GetPeriod(periodID)
	if err != nil {
		return AwardResult{}, err
	}
	if period == nil {
		return AwardResult{}, domain.ErrPeriodNotFound
	}
	if period.Closed {
		return AwardResult{}, domain.ErrPeriodClosed
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if err := s.db.InsertTransaction(periodID, tx); err != nil {
		return AwardResult{}, fmt.Errorf("insert transaction: %w", err)
	}

	profile, err := s.db.LoadProfile()
	if err != nil {
		return AwardResult{}, err
	}

	now := s.clock()
	res := merge(
		s.engine.RecordTransaction(profile, now),
		s.engine.RecordDailyActivity(profile, now),
	)

	if err := s.db.SaveProfile(profile); err != nil {
		return AwardResult{}, fmt.Errorf("save profile: %w", err)
	}
	return res, nil
}

// Contribute adds money to a saving goal. A completing contribution also
// reports the completion to the profile (counter, achievements, reward
// points); a partial one awards the proportional points directly.
func (s *Service) Contribute(goalID uuid.UUID, amount float64) (ContributionResult, AwardResult, error) {
	goal, err := s.db.GetGoal(goalID)
	if err != nil {
		return ContributionResult{}, AwardResult{}, err
	}
	if goal == nil {
		return ContributionResult{}, AwardResult{}, domain.ErrGoalNotFound
	}

	now := s.clock()
	contrib := Contribute(goal, amount, now)
	if err := s.db.SaveGoal(goal); err != nil {
		return ContributionResult{}, AwardResult{}, fmt.Errorf("save goal: %w", err)
	}

	profile, err := s.db.LoadProfile()
	if err != nil {
		return ContributionResult{}, AwardResult{}, err
	}

	var award AwardResult
	if contrib.Completed {
		award = s.engine.RecordGoalCompleted(profile, contrib.PointsEarned, now)
	} else {
		award = s.engine.AddPoints(profile, contrib.PointsEarned)
	}

	if err := s.db.SaveProfile(profile); err != nil {
		return ContributionResult{}, AwardResult{}, fmt.Errorf("save profile: %w", err)
	}
	return contrib, award, nil
}

// Withdraw removes money from an active goal without touching the profile.
func (s *Service) Withdraw(goalID uuid.UUID, amount float64) (*domain.SavingGoal, error) {
	goal, err := s.db.GetGoal(goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	Withdraw(goal, amount)
	if err := s.db.SaveGoal(goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	return goal, nil
}

// ClosePeriodResult bundles everything a period close produces.
type ClosePeriodResult struct {
	Score      PeriodScore      `json:"score"`
	Comparison PeriodComparison `json:"comparison"`
	Award      AwardResult      `json:"award"`
}

// ClosePeriod scores a period, compares it with the most recently closed
// one, marks it closed, and awards the resulting points. The period's
// saving rate feeds the profile's high-water mark.
func (s *Service) ClosePeriod(periodID uuid.UUID) (ClosePeriodResult, error) {
	period, err := s.db.GetPeriod(periodID)
	if err != nil {
		return ClosePeriodResult{}, err
	}
	if period == nil {
		return ClosePeriodResult{}, domain.ErrPeriodNotFound
	}
	if period.Closed {
		return ClosePeriodResult{}, domain.ErrPeriodClosed
	}

	txs, err := s.db.ListTransactions(periodID)
	if err != nil {
		return ClosePeriodResult{}, err
	}
	score := Score(*period, txs)

	var comparison PeriodComparison
	if prev, err := s.db.LatestClosedPeriod(); err != nil {
		return ClosePeriodResult{}, err
	} else if prev != nil {
		prevTxs, err := s.db.ListTransactions(prev.ID)
		if err != nil {
			return ClosePeriodResult{}, err
		}
		comparison = CompareWithPrevious(score.PeriodSummary, Summarize(prevTxs))
	}

	if err := s.db.MarkPeriodClosed(periodID); err != nil {
		return ClosePeriodResult{}, fmt.Errorf("close period: %w", err)
	}

	profile, err := s.db.LoadProfile()
	if err != nil {
		return ClosePeriodResult{}, err
	}

	now := s.clock()
	award := merge(
		s.engine.AddPoints(profile, score.Points+comparison.Points),
		s.engine.UpdateBestSavingRate(profile, score.SavingRate, now),
	)

	if err := s.db.SaveProfile(profile); err != nil {
		return ClosePeriodResult{}, fmt.Errorf("save profile: %w", err)
	}
	return ClosePeriodResult{Score: score, Comparison: comparison, Award: award}, nil
}

// ─── Entity management ──────────────────────────────────────────────────────

// CreateGoal stores a new active saving goal.
func (s *Service) CreateGoal(goal *domain.SavingGoal) error {
	return s.db.SaveGoal(goal)
}

// Goal fetches one goal by ID.
func (s *Service) Goal(id uuid.UUID) (*domain.SavingGoal, error) {
	goal, err := s.db.GetGoal(id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

// Goals lists all stored goals.
func (s *Service) Goals() ([]domain.SavingGoal, error) { return s.db.ListGoals() }

// DeleteGoal removes a goal and its sub-goals. Points already earned from
// it stay on the profile.
func (s *Service) DeleteGoal(id uuid.UUID) error { return s.db.DeleteGoal(id) }

// CreatePeriod stores a new open financial period.
func (s *Service) CreatePeriod(period *domain.FinancialPeriod) error {
	return s.db.InsertPeriod(period)
}

// Periods lists all stored periods, newest first.
func (s *Service) Periods() ([]domain.FinancialPeriod, error) { return s.db.ListPeriods() }

// ScorePeriod computes a period's score without closing it.
func (s *Service) ScorePeriod(periodID uuid.UUID) (PeriodScore, error) {
	period, err := s.db.GetPeriod(periodID)
	if err != nil {
		return PeriodScore{}, err
	}
	if period == nil {
		return PeriodScore{}, domain.ErrPeriodNotFound
	}
	txs, err := s.db.ListTransactions(periodID)
	if err != nil {
		return PeriodScore{}, err
	}
	return Score(*period, txs), nil
}

// ─── Outbound reads ─────────────────────────────────────────────────────────

// Summary is the dashboard snapshot consumed by the CLI and the API.
type Summary struct {
	Profile         *domain.GamificationProfile `json:"profile"`
	Rank            domain.RankInfo             `json:"rank"`
	PointsToNext    int64                       `json:"points_to_next"`
	ProgressPercent float64                     `json:"progress_percent"`
	StreakActive    bool                        `json:"streak_active"`
	AchievementRate float64                     `json:"achievement_rate"`
}

// Summarize builds the dashboard snapshot for the stored profile.
func (s *Service) Summarize() (Summary, error) {
	profile, err := s.db.LoadProfile()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Profile:         profile,
		Rank:            profile.CurrentRank.Info(),
		PointsToNext:    domain.PointsToNextRank(profile.TotalPoints),
		ProgressPercent: domain.RankProgressPercent(profile.TotalPoints),
		StreakActive:    profile.StreakActive(s.clock()),
		AchievementRate: profile.AchievementRate(s.engine.CatalogSize()),
	}, nil
}

// merge folds several sequential results over the same profile into one.
// Points add up; the profile ranked up if any step did.
func merge(results ...AwardResult) AwardResult {
	var out AwardResult
	for _, r := range results {
		out.PointsEarned += r.PointsEarned
		out.RankedUp = out.RankedUp || r.RankedUp
		out.NewRank = r.NewRank
		out.Unlocked = append(out.Unlocked, r.Unlocked...)
		if r.StreakDays > out.StreakDays {
			out.StreakDays = r.StreakDays
		}
	}
	return out
}
