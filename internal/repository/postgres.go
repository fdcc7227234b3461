package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"partyplanner/internal/model"
)

// ErrUnknownPlan is returned when feedback references a plan that was never logged
var ErrUnknownPlan = errors.New("unknown plan id")

const schema = `
CREATE TABLE IF NOT EXISTS plan_logs (
	plan_id     UUID PRIMARY KEY,
	city        TEXT NOT NULL,
	venue_type  TEXT NOT NULL,
	cuisine     TEXT NOT NULL DEFAULT '',
	event_date  TEXT NOT NULL DEFAULT '',
	path        TEXT NOT NULL,
	place_ids   TEXT[] NOT NULL DEFAULT '{}',
	took_ms     INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS venue_feedback (
	id          BIGSERIAL PRIMARY KEY,
	plan_id     UUID NOT NULL REFERENCES plan_logs(plan_id) ON DELETE CASCADE,
	place_id    TEXT NOT NULL,
	action      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS venue_feedback_plan_idx ON venue_feedback(plan_id);
`

// PostgresRepository stores venue request logs and user feedback.
// It holds place ids only; venue data is never persisted.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// EnsureSchema creates the log tables when missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Ping checks the connection, used by the health endpoint
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// LogVenueRequest records one finished venue request
func (r *PostgresRepository) LogVenueRequest(ctx context.Context, entry model.VenueLogEntry) error {
	query := `
		INSERT INTO plan_logs (plan_id, city, venue_type, cuisine, event_date, path, place_ids, took_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (plan_id) DO NOTHING
	`
	placeIDs := entry.PlaceIDs
	if placeIDs == nil {
		placeIDs = []string{}
	}
	_, err := r.db.ExecContext(ctx, query,
		entry.PlanID, entry.City, entry.VenueType, entry.Cuisine,
		entry.EventDate, entry.Path, pq.Array(placeIDs), entry.TookMs,
	)
	if err != nil {
		return fmt.Errorf("failed to log venue request: %w", err)
	}
	return nil
}

// SaveFeedback stores a user action on a suggested place
func (r *PostgresRepository) SaveFeedback(ctx context.Context, planID, placeID, action string) error {
	query := `
		INSERT INTO venue_feedback (plan_id, place_id, action)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, planID, placeID, action)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrUnknownPlan
		}
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// ListFeedback returns the feedback recorded for a plan, oldest first
func (r *PostgresRepository) ListFeedback(ctx context.Context, planID string) ([]model.Feedback, error) {
	query := `
		SELECT id, plan_id, place_id, action, created_at
		FROM venue_feedback
		WHERE plan_id = $1
		ORDER BY created_at, id
	`
	feedback := []model.Feedback{}
	if err := r.db.SelectContext(ctx, &feedback, query, planID); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
