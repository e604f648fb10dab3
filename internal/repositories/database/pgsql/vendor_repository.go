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

type PgxVendorRepository struct {
	db *pgxpool.Pool
}

func newPgxVendorRepository(db *pgxpool.Pool) portsrepo.VendorRepositoryFacade {
	return &PgxVendorRepository{db: db}
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

const vendorColumns = `vendor_id, name, contact_name, contact_email, contact_phone, category, active,
	created_at, created_by, last_updated_at, last_updated_by`

const contractColumns = `contract_id, vendor_id, title, value, currency_code, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var v domain.Vendor
	err := row.Scan(
		&v.VendorID,
		&v.Name,
		&v.ContactName,
		&v.ContactEmail,
		&v.ContactPhone,
		&v.Category,
		&v.Active,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var c domain.Contract
	err := row.Scan(
		&c.ContractID,
		&c.VendorID,
		&c.Title,
		&c.Value,
		&c.CurrencyCode,
		&c.StartDate,
		&c.EndDate,
		&c.Status,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxVendorRepository) SaveVendor(ctx context.Context, v domain.Vendor) error {
	query := `
        INSERT INTO vendors (vendor_id, name, contact_name, contact_email, contact_phone, category, active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		v.VendorID,
		v.Name,
		v.ContactName,
		v.ContactEmail,
		v.ContactPhone,
		v.Category,
		v.Active,
		v.CreatedAt,
		v.CreatedBy,
		v.LastUpdatedAt,
		v.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return nil
}

func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE vendor_id = $1;`
	v, err := scanVendor(r.db.QueryRow(ctx, query, vendorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor %s: %w", vendorID, err)
	}
	return v, nil
}

func (r *PgxVendorRepository) ListVendors(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.Vendor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + vendorColumns + ` FROM vendors
		WHERE (NOT $1 OR active)
		ORDER BY name
		LIMIT $2 OFFSET $3;`
	rows, err := r.db.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor row: %w", err)
		}
		vendors = append(vendors, *v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating vendor rows: %w", rows.Err())
	}
	return vendors, nil
}

func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, v domain.Vendor) error {
	query := `
        UPDATE vendors
        SET name = $1, contact_name = $2, contact_email = $3, contact_phone = $4, category = $5, active = $6,
            last_updated_at = $7, last_updated_by = $8
        WHERE vendor_id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		v.Name,
		v.ContactName,
		v.ContactEmail,
		v.ContactPhone,
		v.Category,
		v.Active,
		v.LastUpdatedAt,
		v.LastUpdatedBy,
		v.VendorID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update vendor query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("vendor not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxVendorRepository) SaveContract(ctx context.Context, c domain.Contract) error {
	query := `
        INSERT INTO contracts (contract_id, vendor_id, title, value, currency_code, start_date, end_date, status,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.db.Exec(ctx, query,
		c.ContractID,
		c.VendorID,
		c.Title,
		c.Value,
		c.CurrencyCode,
		c.StartDate,
		c.EndDate,
		c.Status,
		c.CreatedAt,
		c.CreatedBy,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contract: %w", err)
	}
	return nil
}

func (r *PgxVendorRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = $1;`
	c, err := scanContract(r.db.QueryRow(ctx, query, contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	return c, nil
}

func (r *PgxVendorRepository) ListContractsByVendor(ctx context.Context, vendorID string) ([]domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE vendor_id = $1 ORDER BY start_date DESC;`
	rows, err := r.db.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	contracts := []domain.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		contracts = append(contracts, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating contract rows: %w", rows.Err())
	}
	return contracts, nil
}

func (r *PgxVendorRepository) UpdateContract(ctx context.Context, c domain.Contract) error {
	query := `
        UPDATE contracts
        SET title = $1, end_date = $2, status = $3, last_updated_at = $4, last_updated_by = $5
        WHERE contract_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		c.Title,
		c.EndDate,
		c.Status,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
		c.ContractID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update contract query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("contract not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
