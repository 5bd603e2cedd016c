package services

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company by its ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListUserCompanies retrieves the companies a user is a member of.
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)

	// ListCompanyMembers retrieves all members and their roles. Members only.
	ListCompanyMembers(ctx context.Context, companyID string, requestingUserID string) ([]domain.CompanyMembership, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany persists a new company; the creator becomes its admin.
	CreateCompany(ctx context.Context, name string, currencyCode string, creatorUserID string) (*domain.Company, error)

	// UpdateCompany updates a company's details. Admin only.
	UpdateCompany(ctx context.Context, companyID string, name string, isActive bool, requestingUserID string) (*domain.Company, error)
}

// CompanyMembershipSvc defines operations for managing company membership
type CompanyMembershipSvc interface {
	// AddUserToCompany adds a user with a treasury role. Admin only.
	AddUserToCompany(ctx context.Context, requestingUserID string, targetUserID string, companyID string, role domain.TreasuryRole) error

	// RemoveUserFromCompany removes a user from a company. Admin only.
	RemoveUserFromCompany(ctx context.Context, requestingUserID string, targetUserID string, companyID string) error

	// UpdateUserRole changes a user's treasury role. Admin only.
	UpdateUserRole(ctx context.Context, requestingUserID string, targetUserID string, companyID string, newRole domain.TreasuryRole) error
}

// CompanyAuthorizerSvc defines operations for company authorization
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction checks that the user holds at least the required
	// treasury role in the company and returns their membership.
	AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.TreasuryRole) (*domain.CompanyMembership, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyMembershipSvc
	CompanyAuthorizerSvc
}
