package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgoap/sgoap-backend/internal/apperrors"
	"github.com/sgoap/sgoap-backend/internal/core/domain"
	portsrepo "github.com/sgoap/sgoap-backend/internal/core/ports/repositories"
)

type PgxAnnouncementRepository struct {
	db *pgxpool.Pool
}

func newPgxAnnouncementRepository(db *pgxpool.Pool) portsrepo.AnnouncementRepositoryFacade {
	return &PgxAnnouncementRepository{db: db}
}

var _ portsrepo.AnnouncementRepositoryFacade = (*PgxAnnouncementRepository)(nil)

const announcementColumns = `announcement_id, title, body, department, pinned,
	created_at, created_by, last_updated_at, last_updated_by`

// audienceClause matches company-wide posts plus the viewer's department, or
// everything for unrestricted viewers. $1 is the department, $2 is includeAll.
const audienceClause = `($2 OR department IS NULL OR department = '' OR department = $1)`

func scanAnnouncement(row pgx.Row) (*domain.Announcement, error) {
	var a domain.Announcement
	err := row.Scan(
		&a.AnnouncementID,
		&a.Title,
		&a.Body,
		&a.Department,
		&a.Pinned,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAnnouncementRepository) SaveAnnouncement(ctx context.Context, a domain.Announcement) error {
	query := `
        INSERT INTO announcements (announcement_id, title, body, department, pinned,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		a.AnnouncementID,
		a.Title,
		a.Body,
		a.Department,
		a.Pinned,
		a.CreatedAt,
		a.CreatedBy,
		a.LastUpdatedAt,
		a.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	return nil
}

func (r *PgxAnnouncementRepository) FindAnnouncementByID(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE announcement_id = $1;`
	a, err := scanAnnouncement(r.db.QueryRow(ctx, query, announcementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find announcement %s: %w", announcementID, err)
	}
	return a, nil
}

func (r *PgxAnnouncementRepository) ListAnnouncementsForAudience(ctx context.Context, department string, includeAll bool, limit int, offset int) ([]domain.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + announcementColumns + ` FROM announcements
		WHERE ` + audienceClause + `
		ORDER BY pinned DESC, created_at DESC
		LIMIT $3 OFFSET $4;`
	rows, err := r.db.Query(ctx, query, department, includeAll, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	announcements := []domain.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		announcements = append(announcements, *a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", rows.Err())
	}
	return announcements, nil
}

func (r *PgxAnnouncementRepository) UpdateAnnouncement(ctx context.Context, a domain.Announcement) error {
	query := `
        UPDATE announcements
        SET title = $1, body = $2, pinned = $3, last_updated_at = $4, last_updated_by = $5
        WHERE announcement_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		a.Title,
		a.Body,
		a.Pinned,
		a.LastUpdatedAt,
		a.LastUpdatedBy,
		a.AnnouncementID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update announcement query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("announcement not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAnnouncementRepository) DeleteAnnouncement(ctx context.Context, announcementID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE announcement_id = $1`, announcementID)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("announcement not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAnnouncementRepository) CountAnnouncementsForAudience(ctx context.Context, department string, includeAll bool) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM announcements WHERE `+audienceClause, department, includeAll).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count announcements: %w", err)
	}
	return count, nil
}
