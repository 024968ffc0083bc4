package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tradegate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DecisionRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewDecisionRepository(pool PgxPool, tracer trace.Tracer) *DecisionRepository {
	return &DecisionRepository{pool: pool, tracer: tracer}
}

func (r *DecisionRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "decision-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS decisions (
			id BIGSERIAL PRIMARY KEY,
			accepted BOOLEAN NOT NULL,
			symbol TEXT NOT NULL,
			direction TEXT NOT NULL,
			interval TEXT NOT NULL DEFAULT '',
			entry DOUBLE PRECISION,
			stop_loss DOUBLE PRECISION,
			take_profit_1 DOUBLE PRECISION,
			take_profit_2 DOUBLE PRECISION,
			reason TEXT NOT NULL DEFAULT '',
			review TEXT NOT NULL DEFAULT '',
			raw_payload JSONB NOT NULL DEFAULT '{}'::jsonb,
			received_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_decisions_symbol_received
			ON decisions (symbol, received_at DESC);
		CREATE INDEX IF NOT EXISTS idx_decisions_accepted
			ON decisions (accepted, received_at DESC);
	`)
	return err
}

// InsertDecision stores one decision together with the raw payload that
// produced it and returns the stored record with its id.
func (r *DecisionRepository) InsertDecision(ctx context.Context, decision domain.Decision, alert domain.Alert) (domain.Decision, error) {
	_, span := r.tracer.Start(ctx, "decision-repo.insert-decision")
	defer span.End()

	rawPayload, err := json.Marshal(alert)
	if err != nil {
		return domain.Decision{}, fmt.Errorf("marshal raw payload: %w", err)
	}

	var entry, stop, tp1, tp2 *float64
	if decision.Levels != nil {
		entry = &decision.Levels.Entry
		stop = &decision.Levels.StopLoss
		tp1 = &decision.Levels.TakeProfit1
		tp2 = &decision.Levels.TakeProfit2
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO decisions
			(accepted, symbol, direction, interval, entry, stop_loss, take_profit_1, take_profit_2, reason, review, raw_payload, received_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		decision.Accepted,
		decision.Symbol,
		string(decision.Direction),
		decision.Interval,
		entry,
		stop,
		tp1,
		tp2,
		decision.Reason,
		decision.Review,
		rawPayload,
		decision.ReceivedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return domain.Decision{}, err
	}

	decision.ID = id
	return decision, nil
}

func (r *DecisionRepository) UpdateReview(ctx context.Context, id int64, review string) error {
	_, span := r.tracer.Start(ctx, "decision-repo.update-review")
	defer span.End()

	_, err := r.pool.Exec(ctx, `UPDATE decisions SET review = $1 WHERE id = $2`, review, id)
	return err
}

func (r *DecisionRepository) ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error) {
	_, span := r.tracer.Start(ctx, "decision-repo.list-decisions")
	defer span.End()

	args := make([]any, 0, 4)
	var sb strings.Builder
	sb.WriteString(`SELECT id, accepted, symbol, direction, interval,
			COALESCE(entry, 0), COALESCE(stop_loss, 0), COALESCE(take_profit_1, 0), COALESCE(take_profit_2, 0),
			entry IS NOT NULL, reason, review, received_at
		FROM decisions
		WHERE 1=1`)

	if filter.Symbol != "" {
		args = append(args, strings.ToUpper(filter.Symbol))
		sb.WriteString(fmt.Sprintf(" AND symbol = $%d", len(args)))
	}
	if filter.Accepted != nil {
		args = append(args, *filter.Accepted)
		sb.WriteString(fmt.Sprintf(" AND accepted = $%d", len(args)))
	}
	if filter.Direction != "" && filter.Direction != domain.DirectionNone {
		args = append(args, string(filter.Direction))
		sb.WriteString(fmt.Sprintf(" AND direction = $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	args = append(args, limit)
	sb.WriteString(fmt.Sprintf(" ORDER BY received_at DESC LIMIT $%d", len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decisions := make([]domain.Decision, 0, limit)
	for rows.Next() {
		var d domain.Decision
		var direction string
		var levels domain.Levels
		var hasLevels bool
		var receivedAt time.Time

		if err := rows.Scan(
			&d.ID,
			&d.Accepted,
			&d.Symbol,
			&direction,
			&d.Interval,
			&levels.Entry,
			&levels.StopLoss,
			&levels.TakeProfit1,
			&levels.TakeProfit2,
			&hasLevels,
			&d.Reason,
			&d.Review,
			&receivedAt,
		); err != nil {
			return nil, err
		}
		d.Direction = domain.Direction(direction)
		d.ReceivedAt = receivedAt.UTC()
		if hasLevels {
			d.Levels = &levels
		}
		decisions = append(decisions, d)
	}

	return decisions, rows.Err()
}
