// Package progress implements the Moneta Progress & Rewards Engine:
// rank ladder lookups, point accrual, the day-streak state machine,
// achievement matching, saving-goal tracking, and period scoring.
//
// The engine is a pure computation layer — it never does I/O, never reads
// the wall clock (callers pass the relevant time explicitly), and never
// raises on bad input: operations against entities in the wrong state, or
// with non-positive amounts, decline with a zero-effect result. The
// persistence-owning Service in service.go serializes mutations per
// profile; the engine itself carries no locks.
package progress

import (
	"time"

	"github.com/moneta-app/moneta/internal/domain"
)

// AwardResult describes what a single engine operation changed: points
// earned (including achievement rewards), whether the rank moved, and any
// achievements unlocked along the way.
type AwardResult struct {
	PointsEarned int64                   `json:"points_earned"`
	RankedUp     bool                    `json:"ranked_up"`
	NewRank      domain.RankTier         `json:"new_rank"`
	Unlocked     []domain.AchievementDef `json:"unlocked,omitempty"`
	StreakDays   int                     `json:"streak_days,omitempty"`
}

// Engine evaluates progress mutations against a profile.
type Engine struct {
	catalog []domain.AchievementDef
	byType  map[domain.AchievementType]domain.AchievementDef
}

// NewEngine creates an engine with the full achievement catalog.
func NewEngine() *Engine {
	catalog := Catalog()
	byType := make(map[domain.AchievementType]domain.AchievementDef, len(catalog))
	for _, def := range catalog {
		byType[def.Type] = def
	}
	return &Engine{catalog: catalog, byType: byType}
}

// Catalog returns all achievement definitions (for display).
func (e *Engine) Catalog() []domain.AchievementDef { return e.catalog }

// CatalogSize returns the number of defined achievements.
func (e *Engine) CatalogSize() int { return len(e.catalog) }

// AddPoints is the sole point-mutation primitive: every other operation
// routes its rewards through here. Negative deltas are declined.
func (e *Engine) AddPoints(p *domain.GamificationProfile, delta int64) AwardResult {
	if delta < 0 {
		return AwardResult{NewRank: p.CurrentRank}
	}
	prior := p.CurrentRank
	p.TotalPoints += delta
	p.CurrentRank = domain.RankFor(p.TotalPoints)
	return AwardResult{
		PointsEarned: delta,
		RankedUp:     p.CurrentRank != prior,
		NewRank:      p.CurrentRank,
	}
}

// RecordDailyActivity advances the streak state machine for today and
// awards streak points. Calling it twice on the same calendar day changes
// nothing after the first call.
func (e *Engine) RecordDailyActivity(p *domain.GamificationProfile, today time.Time) AwardResult {
	day := domain.DateOnly(today)

	// Same day — already credited.
	if !p.LastStreakDate.IsZero() && day.Equal(domain.DateOnly(p.LastStreakDate)) {
		return AwardResult{NewRank: p.CurrentRank, StreakDays: p.CurrentStreak}
	}

	op := e.begin(p)

	if !p.LastStreakDate.IsZero() && domain.DaysBetween(p.LastStreakDate, day) == 1 {
		p.CurrentStreak++
	} else {
		// First activity ever, or a gap of more than one day.
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastStreakDate = day

	op.award(streakPoints(p.CurrentStreak))

	// Milestones fire on the exact day the streak reaches them, at most
	// once per reachable run.
	switch p.CurrentStreak {
	case 7:
		op.unlock(domain.AchStreak7, today)
	case 30:
		op.unlock(domain.AchStreak30, today)
	case 100:
		op.unlock(domain.AchStreak100, today)
	}

	res := op.result()
	res.StreakDays = p.CurrentStreak
	return res
}

// RecordTransaction bumps the transaction counter and checks its
// threshold achievements. The caller decides whether the same event also
// counts as daily activity.
func (e *Engine) RecordTransaction(p *domain.GamificationProfile, now time.Time) AwardResult {
	op := e.begin(p)
	p.TotalTransactionsCount++

	switch p.TotalTransactionsCount {
	case 1:
		op.unlock(domain.AchFirstTransaction, now)
	case 100:
		op.unlock(domain.AchTransactions100, now)
	}
	return op.result()
}

// RecordGoalCompleted bumps the completed-goal counter, awards the goal's
// points, and checks goal-count achievements.
func (e *Engine) RecordGoalCompleted(p *domain.GamificationProfile, points int64, now time.Time) AwardResult {
	op := e.begin(p)
	p.CompletedGoalsCount++
	op.award(points)

	switch p.CompletedGoalsCount {
	case 1:
		op.unlock(domain.AchFirstGoal, now)
	case 5:
		op.unlock(domain.AchGoals5, now)
	}
	return op.result()
}

// UpdateBestSavingRate raises the high-water saving rate. Both rate
// achievements re-evaluate independently on every improvement, so a rate
// that jumps straight past 50% still unlocks the 20% tier too.
func (e *Engine) UpdateBestSavingRate(p *domain.GamificationProfile, rate float64, now time.Time) AwardResult {
	if rate < 0 || rate <= p.BestSavingRate {
		return AwardResult{NewRank: p.CurrentRank}
	}

	op := e.begin(p)
	p.BestSavingRate = rate

	if p.BestSavingRate >= 0.20 {
		op.unlock(domain.AchSaver20, now)
	}
	if p.BestSavingRate >= 0.50 {
		op.unlock(domain.AchSaver50, now)
	}
	return op.result()
}

// UnlockAchievement unlocks a single achievement by type. Idempotent:
// a type that is already unlocked awards nothing.
func (e *Engine) UnlockAchievement(p *domain.GamificationProfile, t domain.AchievementType, now time.Time) AwardResult {
	op := e.begin(p)
	op.unlock(t, now)
	return op.result()
}

// streakPoints scales the daily award with the streak tier.
func streakPoints(days int) int64 {
	d := int64(days)
	switch {
	case days >= 30:
		return 20 * d
	case days >= 14:
		return 10 * d
	case days >= 7:
		return 5 * d
	default:
		return 2 * d
	}
}

// ─── Operation bookkeeping ──────────────────────────────────────────────────
// An op accumulates points and unlocks across one engine operation so the
// result reports a single consistent rank transition.

type op struct {
	engine    *Engine
	profile   *domain.GamificationProfile
	startRank domain.RankTier
	points    int64
	unlocked  []domain.AchievementDef
}

func (e *Engine) begin(p *domain.GamificationProfile) *op {
	return &op{engine: e, profile: p, startRank: p.CurrentRank}
}

func (o *op) award(delta int64) {
	if delta <= 0 {
		return
	}
	o.profile.TotalPoints += delta
	o.profile.CurrentRank = domain.RankFor(o.profile.TotalPoints)
	o.points += delta
}

func (o *op) unlock(t domain.AchievementType, now time.Time) {
	def, ok := o.engine.byType[t]
	if !ok || o.profile.HasAchievement(t) {
		return
	}
	o.profile.Unlocked[t] = domain.UnlockedAchievement{Type: t, UnlockedAt: now}
	o.award(def.AwardedPoints())
	o.unlocked = append(o.unlocked, def)
}

func (o *op) result() AwardResult {
	return AwardResult{
		PointsEarned: o.points,
		RankedUp:     o.profile.CurrentRank != o.startRank,
		NewRank:      o.profile.CurrentRank,
		Unlocked:     o.unlocked,
	}
}
