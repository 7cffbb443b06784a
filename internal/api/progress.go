package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/app/progress"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/infra/metrics"
)

// ─── Progress dashboard ─────────────────────────────────────────────────────

// GET /api/progress/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summarize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GET /api/progress/rank
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rank":             profile.CurrentRank.Info(),
		"total_points":     profile.TotalPoints,
		"points_to_next":   domain.PointsToNextRank(profile.TotalPoints),
		"progress_percent": domain.RankProgressPercent(profile.TotalPoints),
		"ladder":           domain.Ranks(),
	})
}

// GET /api/progress/streak
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"current_days": profile.CurrentStreak,
		"longest_days": profile.LongestStreak,
		"active":       profile.StreakActive(time.Now()),
	}
	if !profile.LastStreakDate.IsZero() {
		resp["last_date"] = profile.LastStreakDate.Format(time.DateOnly)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/progress/achievements — full catalog with unlock state.
func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profile()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type entry struct {
		domain.AchievementDef
		AwardedPoints int64      `json:"awarded_points"`
		Unlocked      bool       `json:"unlocked"`
		UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
	}

	catalog := s.svc.Engine().Catalog()
	out := make([]entry, len(catalog))
	for i, def := range catalog {
		out[i] = entry{AchievementDef: def, AwardedPoints: def.AwardedPoints()}
		if u, ok := profile.Unlocked[def.Type]; ok {
			at := u.UnlockedAt
			out[i].Unlocked = true
			out[i].UnlockedAt = &at
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements":    out,
		"completion_rate": profile.AchievementRate(len(catalog)),
	})
}

// ─── Saving goals ───────────────────────────────────────────────────────────

// GET /api/goals
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.Goals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goals": goals})
}

type createGoalRequest struct {
	Name         string    `json:"name"`
	TargetAmount float64   `json:"target_amount"`
	StartDate    time.Time `json:"start_date"`
	TargetDate   time.Time `json:"target_date"`
	RewardPoints int64     `json:"reward_points"`
	SubGoals     []struct {
		Name         string    `json:"name"`
		TargetAmount float64   `json:"target_amount"`
		TargetDate   time.Time `json:"target_date"`
		RewardPoints int64     `json:"reward_points"`
	} `json:"sub_goals"`
}

// POST /api/goals
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal := domain.NewSavingGoal(req.Name, req.TargetAmount, req.StartDate, req.TargetDate, req.RewardPoints)
	for _, sub := range req.SubGoals {
		if _, err := goal.AddSubGoal(sub.Name, sub.TargetAmount, sub.TargetDate, sub.RewardPoints); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := s.svc.CreateGoal(goal); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// GET /api/goals/{id}
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	goal, err := s.svc.Goal(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// DELETE /api/goals/{id}
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteGoal(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

// POST /api/goals/{id}/contribute
func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contrib, award, err := s.svc.Contribute(id, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	observeAward("contribution", award)
	metrics.GoalContributions.Add(req.Amount)
	if contrib.Completed {
		metrics.GoalsCompleted.Inc()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contribution": contrib,
		"award":        award,
	})
}

// POST /api/goals/{id}/withdraw
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.svc.Withdraw(id, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// ─── Financial periods ──────────────────────────────────────────────────────

// GET /api/periods
func (s *Server) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := s.svc.Periods()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"periods": periods})
}

type createPeriodRequest struct {
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	SavingGoalAmount *float64  `json:"saving_goal_amount,omitempty"`
	MaxExpenseLimit  *float64  `json:"max_expense_limit,omitempty"`
}

// POST /api/periods
func (s *Server) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req createPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	period := domain.NewFinancialPeriod(req.StartDate, req.EndDate)
	period.SavingGoalAmount = req.SavingGoalAmount
	period.MaxExpenseLimit = req.MaxExpenseLimit

	if err := s.svc.CreatePeriod(period); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, period)
}

// GET /api/periods/{id}/score
func (s *Server) handleScorePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	score, err := s.svc.ScorePeriod(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// POST /api/periods/{id}/close
func (s *Server) handleClosePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := s.svc.ClosePeriod(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	observeAward("period_close", res.Award)
	metrics.PeriodsClosed.Inc()
	writeJSON(w, http.StatusOK, res)
}

type recordTransactionRequest struct {
	Type     domain.TransactionType `json:"type"`
	Amount   float64                `json:"amount"`
	Date     time.Time              `json:"date"`
	Category string                 `json:"category"`
	Note     string                 `json:"note,omitempty"`
}

// POST /api/periods/{id}/transactions
func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	award, err := s.svc.RecordTransaction(id, domain.Transaction{
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	observeAward("transaction", award)
	metrics.TransactionsRecorded.WithLabelValues(string(req.Type)).Inc()
	writeJSON(w, http.StatusOK, award)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps domain sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrPeriodNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrPeriodClosed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// observeAward bumps the Prometheus counters for one engine result.
func observeAward(source string, award progress.AwardResult) {
	if award.PointsEarned > 0 {
		metrics.PointsAwarded.WithLabelValues(source).Add(float64(award.PointsEarned))
	}
	if award.RankedUp {
		metrics.RankUps.Inc()
	}
	for _, def := range award.Unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(def.Rarity.String()).Inc()
	}
	if award.StreakDays > 0 {
		metrics.StreakDays.Set(float64(award.StreakDays))
	}
}
