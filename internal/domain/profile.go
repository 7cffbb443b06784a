// Package domain holds the pure types of the Moneta progress engine:
// the rank ladder, achievement catalog types, the gamification profile,
// saving goals, and financial periods. No I/O happens here.
package domain

import "time"

// GamificationProfile is the aggregate root of a user's progress state.
// Points only grow, rank is always derived from points, and longestStreak
// never drops below currentStreak. One profile per user; mutations go
// through the progress engine.
type GamificationProfile struct {
	TotalPoints            int64     `json:"total_points"`
	CurrentRank            RankTier  `json:"current_rank"`
	CurrentStreak          int       `json:"current_streak"`
	LongestStreak          int       `json:"longest_streak"`
	LastStreakDate         time.Time `json:"last_streak_date"` // day granularity; zero if none
	CompletedGoalsCount    int       `json:"completed_goals_count"`
	TotalTransactionsCount int       `json:"total_transactions_count"`
	BestSavingRate         float64   `json:"best_saving_rate"`

	Unlocked map[AchievementType]UnlockedAchievement `json:"unlocked"`
}

// NewProfile returns a fresh profile at Novice rank with zero counters.
func NewProfile() *GamificationProfile {
	return &GamificationProfile{
		CurrentRank: RankNovice,
		Unlocked:    make(map[AchievementType]UnlockedAchievement),
	}
}

// HasAchievement reports whether the given type is already unlocked.
func (p *GamificationProfile) HasAchievement(t AchievementType) bool {
	_, ok := p.Unlocked[t]
	return ok
}

// StreakActive reports whether the streak is still alive as of today:
// the last credited day is today or yesterday.
func (p *GamificationProfile) StreakActive(today time.Time) bool {
	if p.LastStreakDate.IsZero() {
		return false
	}
	gap := DaysBetween(p.LastStreakDate, today)
	return gap >= 0 && gap <= 1
}

// AchievementRate returns unlocked achievements as a fraction of the
// catalog size (0.0–1.0).
func (p *GamificationProfile) AchievementRate(catalogSize int) float64 {
	if catalogSize <= 0 {
		return 0
	}
	return float64(len(p.Unlocked)) / float64(catalogSize)
}

// DateOnly truncates a time to day granularity in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative if b
// precedes a). Both are normalized to day granularity first.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
