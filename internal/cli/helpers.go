package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/moneta-app/moneta/internal/app/progress"
)

const barWidth = 30 // Characters for progress bars

// renderBar draws a static progress bar: [=========>..........] 42%
func renderBar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	var bar string
	switch {
	case filled == barWidth:
		bar = strings.Repeat("=", filled)
	case filled > 0:
		bar = strings.Repeat("=", filled-1) + ">" + strings.Repeat(".", empty)
	default:
		bar = strings.Repeat(".", barWidth)
	}

	return fmt.Sprintf("[%s] %3.0f%%", bar, pct)
}

// formatMoney renders an amount with two decimals.
func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatDate renders a time at day granularity, or "-" for zero times.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// parseDate parses a YYYY-MM-DD argument, defaulting to today when empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.DateOnly, s)
}

// printAward reports what an operation earned.
func printAward(award progress.AwardResult) {
	if award.PointsEarned > 0 {
		fmt.Printf("+%d points\n", award.PointsEarned)
	}
	for _, def := range award.Unlocked {
		fmt.Printf("Achievement unlocked: %s %s (%s, +%d pts)\n",
			def.Icon, def.Name, def.Rarity, def.AwardedPoints())
	}
	if award.RankedUp {
		info := award.NewRank.Info()
		fmt.Printf("Rank up! You are now %s %s\n", info.Icon, info.Name)
	}
	if award.StreakDays > 0 {
		fmt.Printf("Streak: %d day(s)\n", award.StreakDays)
	}
}
