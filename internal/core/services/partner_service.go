package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
)

// partnerService handles business logic for customers and vendors.
type partnerService struct {
	partnerRepo portsrepo.PartnerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanyAuthorizerSvc
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanyAuthorizerSvc) portssvc.PartnerSvcFacade {
	return &partnerService{
		partnerRepo: partnerRepo,
		accountRepo: accountRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

// checkPartnerAccount verifies the account exists, belongs to the company and
// can serve as a receivable/payable control account.
func (s *partnerService) checkPartnerAccount(ctx context.Context, companyID string, accountID string, label string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("%w: %s account not found", apperrors.ErrValidation, label)
	}
	if account.CompanyID != companyID {
		return fmt.Errorf("%w: %s account belongs to another company", apperrors.ErrValidation, label)
	}
	if account.CashBank {
		return fmt.Errorf("%w: %s account must not be a cash/bank account", apperrors.ErrValidation, label)
	}
	return nil
}

// CreatePartner creates a new partner with its control accounts. Admin only.
func (s *partnerService) CreatePartner(ctx context.Context, companyID string, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.checkPartnerAccount(ctx, companyID, req.ReceivableAccountID, "receivable"); err != nil {
		return nil, err
	}
	if err := s.checkPartnerAccount(ctx, companyID, req.PayableAccountID, "payable"); err != nil {
		return nil, err
	}

	now := time.Now()
	partner := domain.Partner{
		PartnerID:           uuid.NewString(),
		CompanyID:           companyID,
		Name:                req.Name,
		ReceivableAccountID: req.ReceivableAccountID,
		PayableAccountID:    req.PayableAccountID,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		logger.Error("Failed to save partner", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}
	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID))
	return &partner, nil
}

// GetPartnerByID retrieves a partner scoped to the company.
func (s *partnerService) GetPartnerByID(ctx context.Context, companyID string, partnerID string, userID string) (*domain.Partner, error) {
	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return partner, nil
}

// ListPartners retrieves the company's active partners.
func (s *partnerService) ListPartners(ctx context.Context, companyID string, userID string) ([]domain.Partner, error) {
	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}
	partners, err := s.partnerRepo.ListPartnersByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	if partners == nil {
		partners = []domain.Partner{}
	}
	return partners, nil
}

// UpdatePartner updates a partner's details. Admin only.
func (s *partnerService) UpdatePartner(ctx context.Context, companyID string, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.ReceivableAccountID != nil {
		if err := s.checkPartnerAccount(ctx, companyID, *req.ReceivableAccountID, "receivable"); err != nil {
			return nil, err
		}
		partner.ReceivableAccountID = *req.ReceivableAccountID
	}
	if req.PayableAccountID != nil {
		if err := s.checkPartnerAccount(ctx, companyID, *req.PayableAccountID, "payable"); err != nil {
			return nil, err
		}
		partner.PayableAccountID = *req.PayableAccountID
	}
	if req.IsActive != nil {
		partner.IsActive = *req.IsActive
	}
	partner.LastUpdatedAt = time.Now()
	partner.LastUpdatedBy = userID

	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		logger.Error("Failed to update partner", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}
	return partner, nil
}
