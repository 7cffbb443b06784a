package domain

// ─── Rank Ladder ────────────────────────────────────────────────────────────
// Seven tiers with fixed point thresholds. Rank is always derived from
// cumulative points — it is never stored or set independently.

// RankTier is a named milestone level on the rank ladder.
type RankTier int

const (
	RankNovice RankTier = iota
	RankApprentice
	RankPractitioner
	RankExpert
	RankMaster
	RankGrandMaster
	RankLegend
)

// RankInfo carries the static attributes of a tier.
type RankInfo struct {
	Tier      RankTier `json:"tier"`
	Name      string   `json:"name"`
	MinPoints int64    `json:"min_points"`
	Color     string   `json:"color"`
	Icon      string   `json:"icon"`
}

// rankLadder is ordered by tier with strictly increasing minimums.
var rankLadder = [...]RankInfo{
	{RankNovice, "Novice", 0, "#9E9E9E", "🌱"},
	{RankApprentice, "Apprentice", 100, "#8BC34A", "🌿"},
	{RankPractitioner, "Practitioner", 500, "#03A9F4", "💧"},
	{RankExpert, "Expert", 1500, "#9C27B0", "🔮"},
	{RankMaster, "Master", 3500, "#FF9800", "🔥"},
	{RankGrandMaster, "Grand Master", 7500, "#F44336", "⚜️"},
	{RankLegend, "Legend", 15000, "#FFD700", "👑"},
}

// Info returns the static attributes of this tier.
func (t RankTier) Info() RankInfo {
	if t < RankNovice || t > RankLegend {
		return rankLadder[RankNovice]
	}
	return rankLadder[t]
}

// String returns the display name of the tier.
func (t RankTier) String() string { return t.Info().Name }

// MinPoints returns the cumulative points required to hold this tier.
func (t RankTier) MinPoints() int64 { return t.Info().MinPoints }

// NextThreshold returns the minimum points of the tier above, or false
// for the top tier.
func (t RankTier) NextThreshold() (int64, bool) {
	if t >= RankLegend {
		return 0, false
	}
	return rankLadder[t+1].MinPoints, true
}

// RankFor returns the highest tier whose minimum is ≤ points.
func RankFor(points int64) RankTier {
	for i := len(rankLadder) - 1; i >= 0; i-- {
		if points >= rankLadder[i].MinPoints {
			return rankLadder[i].Tier
		}
	}
	return RankNovice
}

// PointsToNextRank returns the points still needed for the next tier,
// or 0 at the top of the ladder.
func PointsToNextRank(points int64) int64 {
	next, ok := RankFor(points).NextThreshold()
	if !ok {
		return 0
	}
	remaining := next - points
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// RankProgressPercent returns progress within the current tier (0.0–100.0).
// Returns 100 at the top tier.
func RankProgressPercent(points int64) float64 {
	tier := RankFor(points)
	next, ok := tier.NextThreshold()
	if !ok {
		return 100.0
	}
	span := next - tier.MinPoints()
	if span <= 0 {
		return 100.0
	}
	progress := float64(points-tier.MinPoints()) / float64(span) * 100.0
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress
}

// Ranks returns the full ladder in ascending tier order (for display).
func Ranks() []RankInfo {
	out := make([]RankInfo, len(rankLadder))
	copy(out, rankLadder[:])
	return out
}
