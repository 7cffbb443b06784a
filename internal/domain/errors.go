package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. The progress
// engine itself never raises on bad input (it declines with a zero
// result); these cover the storage and orchestration boundary.

var (
	ErrProfileNotFound = errors.New("gamification profile not found")
	ErrGoalNotFound    = errors.New("saving goal not found")
	ErrPeriodNotFound  = errors.New("financial period not found")
	ErrPeriodClosed    = errors.New("financial period is closed")
	ErrSubGoalTooLarge = errors.New("sub-goal target exceeds parent goal target")
)
