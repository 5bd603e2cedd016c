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

const companyColumns = `company_id, name, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.CurrencyCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert company %s: %w", m.CompanyID, err)
	}
	return nil
}

// UpdateCompany updates an existing company's details.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		UPDATE companies
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", m.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	c := mapping.ToDomainCompany(m)
	return &c, nil
}

// ListUserCompanies retrieves the companies a user is a member of.
func (r *PgxCompanyRepository) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.currency_code, c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN company_memberships m ON m.company_id = c.company_id
		WHERE m.user_id = $1
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies for user %s: %w", userID, err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}
	return companies, nil
}

// FindMembership retrieves a user's membership in a company.
func (r *PgxCompanyRepository) FindMembership(ctx context.Context, userID string, companyID string) (*domain.CompanyMembership, error) {
	query := `
		SELECT user_id, company_id, role, joined_at
		FROM company_memberships
		WHERE user_id = $1 AND company_id = $2;
	`
	var m models.CompanyMembership
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(&m.UserID, &m.CompanyID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of user %s in company %s: %w", userID, companyID, err)
	}
	membership := mapping.ToDomainCompanyMembership(m)
	return &membership, nil
}

// ListCompanyMembers retrieves all memberships of a company.
func (r *PgxCompanyRepository) ListCompanyMembers(ctx context.Context, companyID string) ([]domain.CompanyMembership, error) {
	query := `
		SELECT user_id, company_id, role, joined_at
		FROM company_memberships
		WHERE company_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of company %s: %w", companyID, err)
	}
	defer rows.Close()

	var members []domain.CompanyMembership
	for rows.Next() {
		var m models.CompanyMembership
		if err := rows.Scan(&m.UserID, &m.CompanyID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, mapping.ToDomainCompanyMembership(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memberships: %w", err)
	}
	return members, nil
}

// SaveMembership inserts or updates a user's role in a company.
func (r *PgxCompanyRepository) SaveMembership(ctx context.Context, membership domain.CompanyMembership) error {
	m := mapping.ToModelCompanyMembership(membership)
	query := `
		INSERT INTO company_memberships (user_id, company_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.CompanyID, m.Role, m.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to save membership of user %s in company %s: %w", m.UserID, m.CompanyID, err)
	}
	return nil
}

// DeleteMembership removes a user from a company.
func (r *PgxCompanyRepository) DeleteMembership(ctx context.Context, userID string, companyID string) error {
	query := `DELETE FROM company_memberships WHERE user_id = $1 AND company_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete membership of user %s in company %s: %w", userID, companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
