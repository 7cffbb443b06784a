package domain

import "time"

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementType identifies an achievement. A profile holds at most one
// unlocked instance per type.
type AchievementType string

const (
	AchFirstTransaction AchievementType = "first_transaction"
	AchTransactions100  AchievementType = "transactions_100"
	AchFirstGoal        AchievementType = "first_goal"
	AchGoals5           AchievementType = "goals_5"
	AchSaver20          AchievementType = "saver_20"
	AchSaver50          AchievementType = "saver_50"
	AchStreak7          AchievementType = "streak_7"
	AchStreak30         AchievementType = "streak_30"
	AchStreak100        AchievementType = "streak_100"
)

// Rarity scales an achievement's point reward.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// Multiplier returns the point multiplier for this rarity.
func (r Rarity) Multiplier() int64 {
	switch r {
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityEpic:
		return 5
	case RarityLegendary:
		return 10
	default:
		return 1
	}
}

func (r Rarity) String() string {
	switch r {
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "common"
	}
}

// AchievementDef defines a single achievement.
type AchievementDef struct {
	Type        AchievementType `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rarity      Rarity          `json:"rarity"`
	BasePoints  int64           `json:"base_points"`
	Icon        string          `json:"icon"`
}

// AwardedPoints returns the points granted on unlock.
func (d AchievementDef) AwardedPoints() int64 {
	return d.BasePoints * d.Rarity.Multiplier()
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	Type       AchievementType `json:"type"`
	UnlockedAt time.Time       `json:"unlocked_at"`
}
