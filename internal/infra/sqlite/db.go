// Package sqlite provides SQLite-based persistent storage for Moneta.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/moneta-app/moneta/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/moneta.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "moneta.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Key-value store for profile state (points, streak, counters)
		`CREATE TABLE IF NOT EXISTS profile (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Unlocked achievements — the primary key keeps unlocks unique
		// across restarts
		`CREATE TABLE IF NOT EXISTS achievements (
			type        TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		)`,

		// Saving goals and their milestone sub-goals
		`CREATE TABLE IF NOT EXISTS goals (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			target_amount  REAL NOT NULL,
			current_amount REAL NOT NULL DEFAULT 0,
			start_date     INTEGER NOT NULL,
			target_date    INTEGER NOT NULL,
			status         TEXT NOT NULL,
			completed_at   INTEGER,
			reward_points  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sub_goals (
			id            TEXT PRIMARY KEY,
			goal_id       TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			name          TEXT NOT NULL,
			target_amount REAL NOT NULL,
			target_date   INTEGER NOT NULL,
			completed     BOOLEAN DEFAULT 0,
			completed_at  INTEGER,
			reward_points INTEGER NOT NULL,
			ord           INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sub_goals_goal ON sub_goals(goal_id)`,

		// Financial periods and their attributed transactions
		`CREATE TABLE IF NOT EXISTS periods (
			id                 TEXT PRIMARY KEY,
			start_date         INTEGER NOT NULL,
			end_date           INTEGER NOT NULL,
			closed             BOOLEAN DEFAULT 0,
			saving_goal_amount REAL,
			max_expense_limit  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_periods_end ON periods(end_date)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id        TEXT PRIMARY KEY,
			period_id TEXT NOT NULL REFERENCES periods(id) ON DELETE CASCADE,
			type      TEXT NOT NULL,
			amount    REAL NOT NULL,
			date      INTEGER NOT NULL,
			category  TEXT NOT NULL DEFAULT '',
			note      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_period ON transactions(period_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Profile ────────────────────────────────────────────────────────────────
// Profile scalars live in a key-value table; the unlocked set has its own
// table so uniqueness survives restarts.

// LoadProfile reads the stored profile, returning a fresh one on first use.
func (d *DB) LoadProfile() (*domain.GamificationProfile, error) {
	p := domain.NewProfile()

	rows, err := d.db.Query(`SELECT key, value FROM profile`)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case "total_points":
			p.TotalPoints, _ = strconv.ParseInt(value, 10, 64)
		case "current_streak":
			p.CurrentStreak, _ = strconv.Atoi(value)
		case "longest_streak":
			p.LongestStreak, _ = strconv.Atoi(value)
		case "last_streak_date":
			if ts, err := strconv.ParseInt(value, 10, 64); err == nil && ts > 0 {
				p.LastStreakDate = time.Unix(ts, 0).UTC()
			}
		case "completed_goals":
			p.CompletedGoalsCount, _ = strconv.Atoi(value)
		case "total_transactions":
			p.TotalTransactionsCount, _ = strconv.Atoi(value)
		case "best_saving_rate":
			p.BestSavingRate, _ = strconv.ParseFloat(value, 64)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rank is derived state, never stored.
	p.CurrentRank = domain.RankFor(p.TotalPoints)

	unlocked, err := d.ListUnlockedAchievements()
	if err != nil {
		return nil, err
	}
	for _, u := range unlocked {
		p.Unlocked[u.Type] = u
	}
	return p, nil
}

// SaveProfile persists the profile scalars and any new unlocks.
func (d *DB) SaveProfile(p *domain.GamificationProfile) error {
	var lastStreak int64
	if !p.LastStreakDate.IsZero() {
		lastStreak = p.LastStreakDate.Unix()
	}

	pairs := map[string]string{
		"total_points":       strconv.FormatInt(p.TotalPoints, 10),
		"current_streak":     strconv.Itoa(p.CurrentStreak),
		"longest_streak":     strconv.Itoa(p.LongestStreak),
		"last_streak_date":   strconv.FormatInt(lastStreak, 10),
		"completed_goals":    strconv.Itoa(p.CompletedGoalsCount),
		"total_transactions": strconv.Itoa(p.TotalTransactionsCount),
		"best_saving_rate":   strconv.FormatFloat(p.BestSavingRate, 'f', -1, 64),
	}
	for k, v := range pairs {
		if _, err := d.db.Exec(
			`INSERT INTO profile (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v,
		); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}

	for _, u := range p.Unlocked {
		if _, err := d.UnlockAchievement(u.Type, u.UnlockedAt); err != nil {
			return err
		}
	}
	return nil
}

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockAchievement records an achievement as unlocked.
// Returns false if already unlocked (idempotent).
func (d *DB) UnlockAchievement(t domain.AchievementType, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO achievements (type, unlocked_at) VALUES (?, ?)`,
		string(t), at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// ListUnlockedAchievements returns all unlocked achievements.
func (d *DB) ListUnlockedAchievements() ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT type, unlocked_at FROM achievements ORDER BY unlocked_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocked []domain.UnlockedAchievement
	for rows.Next() {
		var u domain.UnlockedAchievement
		var typ string
		var at int64
		if err := rows.Scan(&typ, &at); err != nil {
			return nil, err
		}
		u.Type = domain.AchievementType(typ)
		u.UnlockedAt = time.Unix(at, 0).UTC()
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func nullableFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
