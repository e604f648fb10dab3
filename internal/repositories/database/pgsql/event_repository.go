package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
)

type PgxEventRepository struct {
	db *pgxpool.Pool
}

func newPgxEventRepository(db *pgxpool.Pool) portsrepo.EventRepositoryFacade {
	return &PgxEventRepository{db: db}
}

var _ portsrepo.EventRepositoryFacade = (*PgxEventRepository)(nil)

const eventColumns = `event_id, title, details, location, department, starts_at, ends_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.EventID,
		&e.Title,
		&e.Details,
		&e.Location,
		&e.Department,
		&e.StartsAt,
		&e.EndsAt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxEventRepository) SaveEvent(ctx context.Context, e domain.Event) error {
	query := `
        INSERT INTO events (event_id, title, details, location, department, starts_at, ends_at,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		e.EventID,
		e.Title,
		e.Details,
		e.Location,
		e.Department,
		e.StartsAt,
		e.EndsAt,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

func (r *PgxEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_id = $1;`
	e, err := scanEvent(r.db.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event %s: %w", eventID, err)
	}
	return e, nil
}

func (r *PgxEventRepository) ListEvents(ctx context.Context, params portsrepo.ListEventsParams) ([]domain.Event, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !params.IncludeAll {
		conds = append(conds, "(department IS NULL OR department = '' OR department = "+arg(params.Department)+")")
	}
	if params.From != nil {
		conds = append(conds, "ends_at >= "+arg(*params.From))
	}
	if params.To != nil {
		conds = append(conds, "starts_at <= "+arg(*params.To))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY starts_at LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, *e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", rows.Err())
	}
	return events, nil
}

func (r *PgxEventRepository) UpdateEvent(ctx context.Context, e domain.Event) error {
	query := `
        UPDATE events
        SET title = $1, details = $2, location = $3, starts_at = $4, ends_at = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE event_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		e.Title,
		e.Details,
		e.Location,
		e.StartsAt,
		e.EndsAt,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
		e.EventID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update event query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("event not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEventRepository) CountUpcomingEvents(ctx context.Context, department string, includeAll bool, from time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM events
		WHERE ends_at >= $3 AND ($2 OR department IS NULL OR department = '' OR department = $1)`
	err := r.db.QueryRow(ctx, query, department, includeAll, from).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming events: %w", err)
	}
	return count, nil
}
