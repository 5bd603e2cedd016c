package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
)

// companyService handles business logic related to companies and memberships.
type companyService struct {
	companyRepo  portsrepo.CompanyRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a new company and makes the creator its initial admin.
func (s *companyService) CreateCompany(ctx context.Context, name string, currencyCode string, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	// The company currency becomes the currency of every document in it, so
	// it must exist up front.
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invalid currency code for new company", slog.String("currency_code", currencyCode))
			return nil, fmt.Errorf("%w: currency code %s not found", apperrors.ErrValidation, currencyCode)
		}
		logger.Error("Failed to check currency code existence", slog.String("error", err.Error()), slog.String("currency_code", currencyCode))
		return nil, fmt.Errorf("failed to validate currency code: %w", err)
	}

	now := time.Now()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Name:         name,
		CurrencyCode: currencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company in repository", slog.String("error", err.Error()), slog.String("company_name", name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	membership := domain.CompanyMembership{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}
	if err := s.companyRepo.SaveMembership(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new company", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	logger.Info("Company created successfully", slog.String("company_id", company.CompanyID), slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a company by its ID.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find company by ID in repository", slog.String("error", err.Error()), slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListUserCompanies retrieves the companies a user is a member of.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	companies, err := s.companyRepo.ListUserCompanies(ctx, userID)
	if err != nil {
		logger.Error("Failed to list companies for user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list companies for user %s: %w", userID, err)
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// ListCompanyMembers retrieves all members and their roles. Members only.
func (s *companyService) ListCompanyMembers(ctx context.Context, companyID string, requestingUserID string) ([]domain.CompanyMembership, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}

	members, err := s.companyRepo.ListCompanyMembers(ctx, companyID)
	if err != nil {
		logger.Error("Failed to list company members", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list members of company %s: %w", companyID, err)
	}
	return members, nil
}

// UpdateCompany updates a company's details. Admin only.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, name string, isActive bool, requestingUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		company.Name = name
	}
	company.IsActive = isActive
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		logger.Error("Failed to update company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company %s: %w", companyID, err)
	}
	return company, nil
}

// AddUserToCompany adds a user with a treasury role. Admin only.
func (s *companyService) AddUserToCompany(ctx context.Context, requestingUserID string, targetUserID string, companyID string, role domain.TreasuryRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	membership := domain.CompanyMembership{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := s.companyRepo.SaveMembership(ctx, membership); err != nil {
		logger.Error("Failed to add user to company", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user %s to company %s: %w", targetUserID, companyID, err)
	}

	logger.Info("User added to company", slog.String("target_user_id", targetUserID), slog.String("company_id", companyID), slog.String("role", string(role)))
	return nil
}

// RemoveUserFromCompany removes a user from a company. Admin only.
func (s *companyService) RemoveUserFromCompany(ctx context.Context, requestingUserID string, targetUserID string, companyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves", apperrors.ErrValidation)
	}

	if err := s.companyRepo.DeleteMembership(ctx, targetUserID, companyID); err != nil {
		logger.Error("Failed to remove user from company", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to remove user %s from company %s: %w", targetUserID, companyID, err)
	}
	logger.Info("User removed from company", slog.String("target_user_id", targetUserID), slog.String("company_id", companyID))
	return nil
}

// UpdateUserRole changes a user's treasury role. Admin only.
func (s *companyService) UpdateUserRole(ctx context.Context, requestingUserID string, targetUserID string, companyID string, newRole domain.TreasuryRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	existing, err := s.companyRepo.FindMembership(ctx, targetUserID, companyID)
	if err != nil {
		return err
	}
	existing.Role = newRole
	if err := s.companyRepo.SaveMembership(ctx, *existing); err != nil {
		logger.Error("Failed to update member role", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to update role of user %s in company %s: %w", targetUserID, companyID, err)
	}
	logger.Info("Member role updated", slog.String("target_user_id", targetUserID), slog.String("company_id", companyID), slog.String("role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks that the user holds at least the required
// treasury role in the company and returns their membership.
// Returns apperrors.ErrNotFound when the user is not a member (which also
// hides the company's existence), apperrors.ErrForbidden when the role is
// insufficient.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.TreasuryRole) (*domain.CompanyMembership, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companyRepo.FindMembership(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member", slog.String("user_id", userID), slog.String("company_id", companyID))
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to check membership", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to check authorization: %w", err)
	}

	if !membership.Role.AtLeast(requiredRole) {
		logger.Warn("Authorization failed: insufficient role",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return nil, apperrors.ErrForbidden
	}
	return membership, nil
}
