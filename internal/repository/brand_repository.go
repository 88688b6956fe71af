package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

// BrandRepository defines persistence access for brands (clients).
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	SetToken(ctx context.Context, id string, token string) error
}

type brandRepository struct {
	pool *pgxpool.Pool
}

// NewBrandRepository returns a Postgres-backed implementation.
func NewBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &brandRepository{pool: pool}
}

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	const query = `
        INSERT INTO brands (company_name, shipbob_user_id, short_code, api_token, billing_address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		brand.CompanyName,
		brand.ShipbobUserID,
		brand.ShortCode,
		brand.APIToken,
		brand.BillingAddress,
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	const query = `
        UPDATE brands SET company_name=$1, shipbob_user_id=$2, short_code=$3, billing_address=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		brand.CompanyName,
		brand.ShipbobUserID,
		brand.ShortCode,
		brand.BillingAddress,
		brand.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const brandSelect = `
        SELECT id, company_name, shipbob_user_id, short_code, api_token, billing_address, created_at, updated_at
        FROM brands`

func (r *brandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	return r.scanOne(r.pool.QueryRow(ctx, brandSelect+` WHERE id=$1`, id))
}

func (r *brandRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.Brand, error) {
	return r.scanOne(r.pool.QueryRow(ctx, brandSelect+` WHERE short_code=$1`, shortCode))
}

func (r *brandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.pool.Query(ctx, brandSelect+` ORDER BY company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(
			&brand.ID,
			&brand.CompanyName,
			&brand.ShipbobUserID,
			&brand.ShortCode,
			&brand.APIToken,
			&brand.BillingAddress,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}

func (r *brandRepository) SetToken(ctx context.Context, id string, token string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE brands SET api_token=$1, updated_at=NOW() WHERE id=$2`, token, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) scanOne(row pgx.Row) (*domain.Brand, error) {
	var brand domain.Brand
	if err := row.Scan(
		&brand.ID,
		&brand.CompanyName,
		&brand.ShipbobUserID,
		&brand.ShortCode,
		&brand.APIToken,
		&brand.BillingAddress,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &brand, nil
}
