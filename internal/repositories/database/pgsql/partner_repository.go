package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	"github.com/atosolution/cash_treasury_backend/internal/models"
	"github.com/atosolution/cash_treasury_backend/internal/utils/mapping"
)

const partnerColumns = `partner_id, company_id, name, receivable_account_id, payable_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartnerRepository struct {
	BaseRepository
}

// newPgxPartnerRepository creates a new repository for partner data.
func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

func scanPartner(row pgx.Row) (models.Partner, error) {
	var m models.Partner
	err := row.Scan(
		&m.PartnerID,
		&m.CompanyID,
		&m.Name,
		&m.ReceivableAccountID,
		&m.PayableAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePartner inserts a new partner.
func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartnerID, m.CompanyID, m.Name, m.ReceivableAccountID, m.PayableAccountID,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert partner %s: %w", m.PartnerID, err)
	}
	return nil
}

// UpdatePartner updates an existing partner's details.
func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
		UPDATE partners
		SET name = $2, receivable_account_id = $3, payable_account_id = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE partner_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartnerID, m.Name, m.ReceivableAccountID, m.PayableAccountID, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner %s: %w", m.PartnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPartnerByID retrieves a partner by its unique identifier.
func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE partner_id = $1;`
	m, err := scanPartner(r.Pool.QueryRow(ctx, query, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	p := mapping.ToDomainPartner(m)
	return &p, nil
}

// ListPartnersByCompany retrieves the active partners of a company.
func (r *PgxPartnerRepository) ListPartnersByCompany(ctx context.Context, companyID string) ([]domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE company_id = $1 AND is_active = TRUE ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		m, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, mapping.ToDomainPartner(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partners: %w", err)
	}
	return partners, nil
}
