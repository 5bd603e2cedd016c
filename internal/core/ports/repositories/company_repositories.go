package repositories

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListUserCompanies retrieves the companies a user is a member of.
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// FindMembership retrieves a user's membership in a company. Returns
	// apperrors.ErrNotFound when the user is not a member.
	FindMembership(ctx context.Context, userID string, companyID string) (*domain.CompanyMembership, error)

	// ListCompanyMembers retrieves all memberships of a company.
	ListCompanyMembers(ctx context.Context, companyID string) ([]domain.CompanyMembership, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates an existing company's details.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// SaveMembership persists or updates a user's role in a company.
	SaveMembership(ctx context.Context, membership domain.CompanyMembership) error

	// DeleteMembership removes a user from a company.
	DeleteMembership(ctx context.Context, userID string, companyID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
