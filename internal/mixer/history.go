package mixer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saaga0h/tandem/pkg/postgres"
)

// Transition records one computed brightness split
type Transition struct {
	ID                  uuid.UUID
	LightID             string
	RequestedKelvin     int
	RequestedBrightness int
	Priority            Priority
	WarmBrightness      int
	ColdBrightness      int
	CreatedAt           time.Time
}

// TransitionStore persists computed transitions in Postgres for auditing and
// later analysis of mixing behavior.
type TransitionStore struct {
	db postgres.Client
}

// NewTransitionStore creates a new transition store
func NewTransitionStore(db postgres.Client) *TransitionStore {
	return &TransitionStore{db: db}
}

// EnsureSchema creates the transitions table if it does not exist
func (s *TransitionStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS mixer_transitions (
			id UUID PRIMARY KEY,
			light_id TEXT NOT NULL,
			requested_kelvin INTEGER NOT NULL,
			requested_brightness INTEGER NOT NULL,
			priority TEXT NOT NULL,
			warm_brightness INTEGER NOT NULL,
			cold_brightness INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create mixer_transitions table: %w", err)
	}

	return nil
}

// RecordTransition stores a computed transition
func (s *TransitionStore) RecordTransition(ctx context.Context, t *Transition) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO mixer_transitions (
			id, light_id, requested_kelvin, requested_brightness,
			priority, warm_brightness, cold_brightness, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(ctx, query,
		t.ID,
		t.LightID,
		t.RequestedKelvin,
		t.RequestedBrightness,
		string(t.Priority),
		t.WarmBrightness,
		t.ColdBrightness,
		t.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert transition: %w", err)
	}

	return nil
}

// RecentTransitions returns the most recent transitions for a light, newest first
func (s *TransitionStore) RecentTransitions(ctx context.Context, lightID string, limit int) ([]*Transition, error) {
	query := `
		SELECT id, light_id, requested_kelvin, requested_brightness,
		       priority, warm_brightness, cold_brightness, created_at
		FROM mixer_transitions
		WHERE light_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, lightID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions: %w", err)
	}
	defer rows.Close()

	var transitions []*Transition
	for rows.Next() {
		var t Transition
		var priority string

		err := rows.Scan(
			&t.ID,
			&t.LightID,
			&t.RequestedKelvin,
			&t.RequestedBrightness,
			&priority,
			&t.WarmBrightness,
			&t.ColdBrightness,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}

		t.Priority = Priority(priority)
		transitions = append(transitions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transitions: %w", err)
	}

	return transitions, nil
}
