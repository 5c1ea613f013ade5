package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/dusk/internal/application/port"
)

// TransitionRepo implements port.TransitionJournal on SQLite.
type TransitionRepo struct {
	db *sql.DB
}

// Compile-time interface check.
var _ port.TransitionJournal = (*TransitionRepo)(nil)

// NewTransitionRepo opens (or creates) the journal at dbPath.
func NewTransitionRepo(ctx context.Context, dbPath string) (*TransitionRepo, error) {
	db, err := NewConnection(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return &TransitionRepo{db: db}, nil
}

// Record implements port.TransitionJournal.
func (r *TransitionRepo) Record(ctx context.Context, t port.Transition) error {
	dark := 0
	if t.Dark {
		dark = 1
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transitions (at, environment, dark, source) VALUES (?, ?, ?, ?)`,
		t.At.Unix(), t.Environment, dark, t.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to record transition: %w", err)
	}
	return nil
}

// Recent implements port.TransitionJournal. Transitions are returned newest
// first.
func (r *TransitionRepo) Recent(ctx context.Context, limit int) ([]port.Transition, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, at, environment, dark, source FROM transitions ORDER BY at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transitions []port.Transition
	for rows.Next() {
		var (
			t    port.Transition
			at   int64
			dark int
		)
		if err := rows.Scan(&t.ID, &at, &t.Environment, &dark, &t.Source); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		t.At = time.Unix(at, 0)
		t.Dark = dark != 0
		transitions = append(transitions, t)
	}

	return transitions, rows.Err()
}

// Close releases the underlying database connection.
func (r *TransitionRepo) Close() error {
	return r.db.Close()
}
