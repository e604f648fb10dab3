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
	"github.com/sgoap/sgoap-backend/internal/utils/pagination"
)

type PgxPurchaseRequestRepository struct {
	BaseRepository
}

func newPgxPurchaseRequestRepository(pool *pgxpool.Pool) portsrepo.PurchaseRequestRepositoryFacade {
	return &PgxPurchaseRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRequestRepositoryFacade = (*PgxPurchaseRequestRepository)(nil)

const requestColumns = `request_id, title, description, category, estimated_cost, currency_code,
	urgency, status, requestor_id, requestor_department,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (*domain.PurchaseRequest, error) {
	var req domain.PurchaseRequest
	err := row.Scan(
		&req.RequestID,
		&req.Title,
		&req.Description,
		&req.Category,
		&req.EstimatedCost,
		&req.CurrencyCode,
		&req.Urgency,
		&req.Status,
		&req.RequestorID,
		&req.RequestorDepartment,
		&req.CreatedAt,
		&req.CreatedBy,
		&req.LastUpdatedAt,
		&req.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PgxPurchaseRequestRepository) SaveRequest(ctx context.Context, req domain.PurchaseRequest) error {
	query := `
        INSERT INTO purchase_requests (request_id, title, description, category, estimated_cost, currency_code,
            urgency, status, requestor_id, requestor_department,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.Pool.Exec(ctx, query,
		req.RequestID,
		req.Title,
		req.Description,
		req.Category,
		req.EstimatedCost,
		req.CurrencyCode,
		req.Urgency,
		req.Status,
		req.RequestorID,
		req.RequestorDepartment,
		req.CreatedAt,
		req.CreatedBy,
		req.LastUpdatedAt,
		req.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save purchase request: %w", err)
	}
	return nil
}

func (r *PgxPurchaseRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests WHERE request_id = $1;`
	req, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase request %s: %w", requestID, err)
	}
	return req, nil
}

// ListRequests pages through requests with keyset pagination on (created_at,
// request_id) descending. The viewer scope is folded into the WHERE clause so rows
// outside it never leave the database.
func (r *PgxPurchaseRequestRepository) ListRequests(ctx context.Context, params portsrepo.ListRequestsParams) ([]domain.PurchaseRequest, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !params.Scope.Unrestricted {
		scopeConds := []string{
			"requestor_id = " + arg(params.Scope.ViewerID),
			"requestor_department = " + arg(params.Scope.ViewerDepartment),
		}
		if len(params.Scope.VisibleStatuses) > 0 {
			statuses := make([]string, len(params.Scope.VisibleStatuses))
			for i, s := range params.Scope.VisibleStatuses {
				statuses[i] = string(s)
			}
			scopeConds = append(scopeConds, "status = ANY("+arg(statuses)+")")
		}
		conds = append(conds, "("+strings.Join(scopeConds, " OR ")+")")
	}
	if params.Status != nil {
		conds = append(conds, "status = "+arg(string(*params.Status)))
	}
	if params.NextToken != nil && *params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pagination token: %w", apperrors.ErrValidation)
		}
		conds = append(conds, "(created_at, request_id) < ("+arg(createdAt)+", "+arg(id)+")")
	}

	query := `SELECT ` + requestColumns + ` FROM purchase_requests`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	// Fetch one extra row to learn whether another page exists.
	query += " ORDER BY created_at DESC, request_id DESC LIMIT " + arg(limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query purchase requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.PurchaseRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan purchase request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating purchase request rows: %w", rows.Err())
	}

	var nextToken *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextToken = &token
	}
	return requests, nextToken, nil
}

func (r *PgxPurchaseRequestRepository) UpdateRequest(ctx context.Context, req domain.PurchaseRequest) error {
	query := `
        UPDATE purchase_requests
        SET title = $1, description = $2, category = $3, estimated_cost = $4, currency_code = $5,
            urgency = $6, last_updated_at = $7, last_updated_by = $8
        WHERE request_id = $9;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		req.Title,
		req.Description,
		req.Category,
		req.EstimatedCost,
		req.CurrencyCode,
		req.Urgency,
		req.LastUpdatedAt,
		req.LastUpdatedBy,
		req.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update request query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("purchase request not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// TransitionStatus performs the status move and the audit log append in one
// transaction. The UPDATE's status predicate is the compare-and-swap: when a
// concurrent transition got there first it matches zero rows and the whole
// transaction rolls back with ErrConflict, leaving no stray log entry.
func (r *PgxPurchaseRequestRepository) TransitionStatus(ctx context.Context, requestID string, expected domain.RequestStatus, next domain.RequestStatus, entry domain.WorkflowLogEntry, actorID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
        UPDATE purchase_requests
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE request_id = $4 AND status = $5;
    `
	cmdTag, err := tx.Exec(ctx, updateQuery, next, at, actorID, requestID, expected)
	if err != nil {
		return fmt.Errorf("failed to transition request status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if chkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM purchase_requests WHERE request_id = $1)`, requestID).Scan(&exists); chkErr == nil && !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("request %s is no longer %s: %w", requestID, expected, apperrors.ErrConflict)
	}

	if entry.LogID != "" {
		logQuery := `
            INSERT INTO workflow_log (log_id, request_id, reviewer_id, stage, action, comments, reviewed_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7);
        `
		_, err = tx.Exec(ctx, logQuery,
			entry.LogID,
			entry.RequestID,
			entry.ReviewerID,
			entry.Stage,
			entry.Action,
			entry.Comments,
			entry.ReviewedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to append workflow log entry: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPurchaseRequestRepository) FindLogEntriesByRequestID(ctx context.Context, requestID string) ([]domain.WorkflowLogEntry, error) {
	query := `
		SELECT log_id, request_id, reviewer_id, stage, action, comments, reviewed_at
		FROM workflow_log
		WHERE request_id = $1
		ORDER BY reviewed_at, log_id;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflow log: %w", err)
	}
	defer rows.Close()

	entries := []domain.WorkflowLogEntry{}
	for rows.Next() {
		var e domain.WorkflowLogEntry
		err := rows.Scan(&e.LogID, &e.RequestID, &e.ReviewerID, &e.Stage, &e.Action, &e.Comments, &e.ReviewedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow log row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workflow log rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxPurchaseRequestRepository) CountRequestsByStatuses(ctx context.Context, statuses []domain.RequestStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}

	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_requests WHERE status = ANY($1)`, vals).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count purchase requests: %w", err)
	}
	return count, nil
}
