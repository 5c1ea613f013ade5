package port

import (
	"context"
	"time"
)

// Transition records a single observed theme change.
type Transition struct {
	ID          int64
	At          time.Time
	Environment string
	Dark        bool
	// Source identifies which probe produced the observation
	// ("command", "helper", "terminal", "fallback").
	Source string
}

// TransitionJournal persists observed theme transitions.
// Implementations must tolerate concurrent Record calls.
type TransitionJournal interface {
	Record(ctx context.Context, t Transition) error
	Recent(ctx context.Context, limit int) ([]Transition, error)
	Close() error
}
