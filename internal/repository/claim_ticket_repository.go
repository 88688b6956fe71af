package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

// ClaimTicketRepository persists submitted claim tickets.
type ClaimTicketRepository interface {
	Create(ctx context.Context, ticket *domain.ClaimTicket) error
	GetByID(ctx context.Context, id string) (*domain.ClaimTicket, error)
	ListByShipment(ctx context.Context, shipmentID string) ([]domain.ClaimTicket, error)
	UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus) error
}

type claimTicketRepository struct {
	pool *pgxpool.Pool
}

// NewClaimTicketRepository constructs repository.
func NewClaimTicketRepository(pool *pgxpool.Pool) ClaimTicketRepository {
	return &claimTicketRepository{pool: pool}
}

func (r *claimTicketRepository) Create(ctx context.Context, ticket *domain.ClaimTicket) error {
	const query = `
        INSERT INTO claim_tickets (shipment_id, brand_id, claim_type, status, description, submitted_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ticket.ShipmentID,
		ticket.BrandID,
		ticket.Type,
		ticket.Status,
		ticket.Description,
		ticket.SubmittedBy,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

const claimSelect = `
        SELECT id, shipment_id, brand_id, claim_type, status, description, submitted_by, created_at, updated_at, resolved_at
        FROM claim_tickets`

func (r *claimTicketRepository) GetByID(ctx context.Context, id string) (*domain.ClaimTicket, error) {
	var ticket domain.ClaimTicket
	if err := r.pool.QueryRow(ctx, claimSelect+` WHERE id=$1`, id).Scan(
		&ticket.ID,
		&ticket.ShipmentID,
		&ticket.BrandID,
		&ticket.Type,
		&ticket.Status,
		&ticket.Description,
		&ticket.SubmittedBy,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *claimTicketRepository) ListByShipment(ctx context.Context, shipmentID string) ([]domain.ClaimTicket, error) {
	rows, err := r.pool.Query(ctx, claimSelect+` WHERE shipment_id=$1 ORDER BY created_at`, shipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.ClaimTicket
	for rows.Next() {
		var ticket domain.ClaimTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ShipmentID,
			&ticket.BrandID,
			&ticket.Type,
			&ticket.Status,
			&ticket.Description,
			&ticket.SubmittedBy,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ResolvedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

func (r *claimTicketRepository) UpdateStatus(ctx context.Context, id string, status domain.ClaimStatus) error {
	query := `UPDATE claim_tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	if status == domain.ClaimStatusResolved || status == domain.ClaimStatusDenied {
		query = `UPDATE claim_tickets SET status=$1, updated_at=NOW(), resolved_at=NOW() WHERE id=$2`
	}
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
