package progress

import "github.com/moneta-app/moneta/internal/domain"

// ─── Achievement Catalog ────────────────────────────────────────────────────
// Static table keyed by type. Awarded points = base points × rarity
// multiplier. Threshold checks live next to the counter updates in the
// engine, so definitions here stay pure data.

// Catalog returns the full achievement catalog.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			Type: domain.AchFirstTransaction, Name: "First Steps",
			Description: "Record your first transaction.",
			Rarity:      domain.RarityCommon, BasePoints: 10, Icon: "📒",
		},
		{
			Type: domain.AchTransactions100, Name: "Bookkeeper",
			Description: "Record 100 transactions.",
			Rarity:      domain.RarityRare, BasePoints: 100, Icon: "📚",
		},
		{
			Type: domain.AchFirstGoal, Name: "Goal Getter",
			Description: "Complete your first saving goal.",
			Rarity:      domain.RarityCommon, BasePoints: 25, Icon: "🎯",
		},
		{
			Type: domain.AchGoals5, Name: "Serial Saver",
			Description: "Complete 5 saving goals.",
			Rarity:      domain.RarityEpic, BasePoints: 200, Icon: "🏆",
		},
		{
			Type: domain.AchSaver20, Name: "Smart Saver",
			Description: "Reach a 20% saving rate in a period.",
			Rarity:      domain.RarityRare, BasePoints: 150, Icon: "🐖",
		},
		{
			Type: domain.AchSaver50, Name: "Half and Half",
			Description: "Save half of your income in a period.",
			Rarity:      domain.RarityLegendary, BasePoints: 500, Icon: "💎",
		},
		{
			Type: domain.AchStreak7, Name: "Week Warrior",
			Description: "Stay on top of your budget 7 days in a row.",
			Rarity:      domain.RarityRare, BasePoints: 50, Icon: "🔥",
		},
		{
			Type: domain.AchStreak30, Name: "Monthly Machine",
			Description: "Keep a 30-day budgeting streak.",
			Rarity:      domain.RarityEpic, BasePoints: 100, Icon: "💪",
		},
		{
			Type: domain.AchStreak100, Name: "Centurion",
			Description: "Keep a 100-day budgeting streak.",
			Rarity:      domain.RarityLegendary, BasePoints: 250, Icon: "🏛️",
		},
	}
}
