// Package audit records one usage event per generation attempt. Events are
// telemetry only: generated content itself is never persisted.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Masty1988/my-social-flow/internal/sqlinline"
)

// Event describes one generation attempt.
type Event struct {
	Subject   string
	RequestID string
	EventType string
	Success   bool
	Latency   time.Duration
	Country   string
	Props     map[string]any
}

// Recorder receives usage events. Recording is best-effort and must never
// block or fail a user request.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

// PGRecorder writes usage events to Postgres.
type PGRecorder struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPGRecorder(pool *pgxpool.Pool, logger zerolog.Logger) *PGRecorder {
	return &PGRecorder{pool: pool, logger: logger}
}

func (r *PGRecorder) Record(ctx context.Context, ev Event) {
	props, err := json.Marshal(ev.Props)
	if err != nil {
		props = []byte(`{}`)
	}
	_, err = r.pool.Exec(ctx, sqlinline.QInsertUsageEvent,
		ev.Subject, ev.RequestID, ev.EventType, ev.Success, ev.Latency.Milliseconds(), ev.Country, props)
	if err != nil {
		r.logger.Warn().Err(err).Str("event_type", ev.EventType).Msg("audit: failed to record usage event")
	}
}

// NopRecorder is used when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) {}

var (
	_ Recorder = (*PGRecorder)(nil)
	_ Recorder = NopRecorder{}
)
