package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jetpack-ops/jetpack/internal/domain"
)

// InvitationRepository manages invite token persistence.
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	GetPendingByEmail(ctx context.Context, email string) (*domain.Invitation, error)
	MarkAccepted(ctx context.Context, id string) error
	MarkExpired(ctx context.Context, id string) error
	ListPending(ctx context.Context) ([]domain.Invitation, error)
}

type invitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository constructs repository.
func NewInvitationRepository(pool *pgxpool.Pool) InvitationRepository {
	return &invitationRepository{pool: pool}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	const query = `
        INSERT INTO invitations (email, full_name, role, brand_id, brand_role, token, invited_by, status, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		inv.Email,
		inv.FullName,
		inv.Role,
		inv.BrandID,
		inv.BrandRole,
		inv.Token,
		inv.InvitedBy,
		inv.Status,
		inv.ExpiresAt,
	).Scan(&inv.ID, &inv.CreatedAt)
}

const invitationSelect = `
        SELECT id, email, full_name, role, brand_id, brand_role, token, invited_by, status, expires_at, accepted_at, created_at
        FROM invitations`

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	return r.scanOne(r.pool.QueryRow(ctx, invitationSelect+` WHERE token=$1`, token))
}

func (r *invitationRepository) GetPendingByEmail(ctx context.Context, email string) (*domain.Invitation, error) {
	return r.scanOne(r.pool.QueryRow(ctx, invitationSelect+` WHERE email=$1 AND status=$2`, email, domain.InvitationStatusPending))
}

func (r *invitationRepository) MarkAccepted(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE invitations SET status=$1, accepted_at=NOW() WHERE id=$2`,
		domain.InvitationStatusAccepted, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invitationRepository) MarkExpired(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE invitations SET status=$1 WHERE id=$2`,
		domain.InvitationStatusExpired, id)
	return err
}

func (r *invitationRepository) ListPending(ctx context.Context) ([]domain.Invitation, error) {
	rows, err := r.pool.Query(ctx, invitationSelect+` WHERE status=$1 ORDER BY created_at DESC`, domain.InvitationStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := rows.Scan(
			&inv.ID,
			&inv.Email,
			&inv.FullName,
			&inv.Role,
			&inv.BrandID,
			&inv.BrandRole,
			&inv.Token,
			&inv.InvitedBy,
			&inv.Status,
			&inv.ExpiresAt,
			&inv.AcceptedAt,
			&inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *invitationRepository) scanOne(row pgx.Row) (*domain.Invitation, error) {
	var inv domain.Invitation
	if err := row.Scan(
		&inv.ID,
		&inv.Email,
		&inv.FullName,
		&inv.Role,
		&inv.BrandID,
		&inv.BrandRole,
		&inv.Token,
		&inv.InvitedBy,
		&inv.Status,
		&inv.ExpiresAt,
		&inv.AcceptedAt,
		&inv.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &inv, nil
}
