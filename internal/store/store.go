// Package store provides SQLite-backed persistence for savings goals and
// their contribution history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/source"

	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrGoalNotFound is returned when no goal has the requested id.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrInvalidAmount is returned for zero, NaN or infinite contributions.
	ErrInvalidAmount = errors.New("invalid contribution amount")
)

const timeLayout = time.RFC3339Nano

// Store is the goal database.
type Store struct {
	db *sql.DB
}

// Contribution is one recorded deposit (or withdrawal, when negative).
type Contribution struct {
	ID     int64     `json:"id"`
	GoalID string    `json:"goal_id"`
	Amount float64   `json:"amount"`
	MadeAt time.Time `json:"made_at"`
	Note   string    `json:"note,omitempty"`
}

// Open opens or creates the goal database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening goal db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGoal inserts g or updates the goal with the same id in place.
func (s *Store) SaveGoal(g model.SavingsGoal) error {
	return saveGoal(s.db, g)
}

// SaveGoals upserts every goal in one transaction.
func (s *Store) SaveGoals(goals []model.SavingsGoal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, g := range goals {
		if err := saveGoal(tx, g); err != nil {
			return fmt.Errorf("saving goal %s: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveGoal(db execer, g model.SavingsGoal) error {
	var targetDate sql.NullString
	if g.TargetDate != nil {
		targetDate = sql.NullString{String: g.TargetDate.Format(timeLayout), Valid: true}
	}
	var desc sql.NullString
	if g.Description != "" {
		desc = sql.NullString{String: g.Description, Valid: true}
	}

	_, err := db.Exec(`INSERT INTO goals
		(goal_id, name, goal_type, priority, target_amount, current_amount,
		 target_date, monthly_contribution, created_date, last_updated, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(goal_id) DO UPDATE SET
			name = excluded.name,
			goal_type = excluded.goal_type,
			priority = excluded.priority,
			target_amount = excluded.target_amount,
			current_amount = excluded.current_amount,
			target_date = excluded.target_date,
			monthly_contribution = excluded.monthly_contribution,
			created_date = excluded.created_date,
			last_updated = excluded.last_updated,
			description = excluded.description`,
		g.ID, g.Name, string(g.Type), string(g.Priority), g.TargetAmount, g.CurrentAmount,
		targetDate, g.MonthlyContribution, g.CreatedDate.Format(timeLayout),
		g.LastUpdated.Format(timeLayout), desc,
	)
	return err
}

const goalColumns = `goal_id, name, goal_type, priority, target_amount, current_amount,
	target_date, monthly_contribution, created_date, last_updated, description`

// LoadGoals reads every goal in insertion order. Stored values go through
// the same normalization as external records, so a hand-edited row with a
// bad date still loads.
func (s *Store) LoadGoals(now time.Time) ([]model.SavingsGoal, error) {
	rows, err := s.db.Query("SELECT " + goalColumns + " FROM goals ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows, now)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetGoal reads one goal.
func (s *Store) GetGoal(id string, now time.Time) (model.SavingsGoal, error) {
	row := s.db.QueryRow("SELECT "+goalColumns+" FROM goals WHERE goal_id = ?", id)
	g, err := scanGoal(row, now)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavingsGoal{}, ErrGoalNotFound
	}
	return g, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner, now time.Time) (model.SavingsGoal, error) {
	var (
		id, name, goalType, priority  string
		target, current, contribution float64
		created, updated              string
		targetDate, description       sql.NullString
	)
	err := row.Scan(&id, &name, &goalType, &priority, &target, &current,
		&targetDate, &contribution, &created, &updated, &description)
	if err != nil {
		return model.SavingsGoal{}, err
	}

	rec := source.Record{
		"name":                 name,
		"goal_type":            goalType,
		"priority":             priority,
		"target_amount":        target,
		"current_amount":       current,
		"monthly_contribution": contribution,
		"created_date":         created,
		"last_updated":         updated,
	}
	if targetDate.Valid {
		rec["target_date"] = targetDate.String
	}
	if description.Valid {
		rec["description"] = description.String
	}
	return source.GoalFromRecord(id, rec, now), nil
}

// DeleteGoal removes a goal and its contributions.
func (s *Store) DeleteGoal(id string) error {
	res, err := s.db.Exec("DELETE FROM goals WHERE goal_id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// Contribute records a deposit against a goal and returns the updated goal.
// Negative amounts are withdrawals; the saved amount never drops below 0.
func (s *Store) Contribute(id string, amount float64, at time.Time, note string) (model.SavingsGoal, error) {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.SavingsGoal{}, ErrInvalidAmount
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.SavingsGoal{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var current float64
	err = tx.QueryRow("SELECT current_amount FROM goals WHERE goal_id = ?", id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavingsGoal{}, ErrGoalNotFound
	}
	if err != nil {
		return model.SavingsGoal{}, err
	}

	next := decimal.NewFromFloat(current).Add(decimal.NewFromFloat(amount))
	if next.IsNegative() {
		next = decimal.Zero
	}

	_, err = tx.Exec("UPDATE goals SET current_amount = ?, last_updated = ? WHERE goal_id = ?",
		next.InexactFloat64(), at.Format(timeLayout), id)
	if err != nil {
		return model.SavingsGoal{}, err
	}

	var n sql.NullString
	if note != "" {
		n = sql.NullString{String: note, Valid: true}
	}
	_, err = tx.Exec("INSERT INTO contributions (goal_id, amount, made_at, note) VALUES (?, ?, ?, ?)",
		id, amount, at.Format(timeLayout), n)
	if err != nil {
		return model.SavingsGoal{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.SavingsGoal{}, err
	}
	return s.GetGoal(id, at)
}

// Contributions returns a goal's contribution history, oldest first.
func (s *Store) Contributions(id string) ([]Contribution, error) {
	rows, err := s.db.Query(`SELECT id, goal_id, amount, made_at, note
		FROM contributions WHERE goal_id = ? ORDER BY made_at, id`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Contribution
	for rows.Next() {
		var c Contribution
		var madeAt string
		var note sql.NullString
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &madeAt, &note); err != nil {
			return nil, err
		}
		c.MadeAt, _ = time.Parse(timeLayout, madeAt)
		if note.Valid {
			c.Note = note.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GoalCount returns the number of stored goals.
func (s *Store) GoalCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM goals").Scan(&count)
	return count, err
}
