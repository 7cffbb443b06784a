// Package metrics provides Prometheus metrics for Moneta.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Points & ranks ─────────────────────────────────────────────────────────

// PointsAwarded tracks gamification points earned, by source operation.
var PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "points_awarded_total",
	Help:      "Total gamification points awarded.",
}, []string{"source"})

// RankUps tracks rank promotions.
var RankUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "rank_ups_total",
	Help:      "Total rank promotions.",
})

// TotalPoints tracks the current lifetime point balance.
var TotalPoints = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moneta",
	Name:      "points_total_current",
	Help:      "Current lifetime point balance.",
})

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementsUnlocked tracks achievement unlocks by rarity.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"rarity"})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakDays tracks the current activity streak length in days.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "moneta",
	Name:      "streak_days_current",
	Help:      "Current daily activity streak in days.",
})

// StreakResets tracks how often the streak broke.
var StreakResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "streak_resets_total",
	Help:      "Total streak resets after a missed day.",
})

// ─── Goals ──────────────────────────────────────────────────────────────────

// GoalsCompleted tracks completed saving goals.
var GoalsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "goals_completed_total",
	Help:      "Total saving goals completed.",
})

// GoalContributions tracks money contributed to saving goals.
var GoalContributions = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "goal_contributions_amount_total",
	Help:      "Total amount contributed to saving goals.",
})

// ─── Periods & transactions ─────────────────────────────────────────────────

// TransactionsRecorded tracks recorded transactions by type.
var TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "transactions_recorded_total",
	Help:      "Total recorded transactions.",
}, []string{"type"})

// PeriodsClosed tracks closed financial periods.
var PeriodsClosed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moneta",
	Name:      "periods_closed_total",
	Help:      "Total financial periods closed and scored.",
})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// RequestDuration tracks API request duration in seconds.
var RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "moneta",
	Name:      "http_request_duration_seconds",
	Help:      "API request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method"})
