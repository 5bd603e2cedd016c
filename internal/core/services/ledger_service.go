package services

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
)

// ledgerService exposes read access to posted ledger entries.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	companySvc portssvc.CompanyAuthorizerSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, companySvc portssvc.CompanyAuthorizerSvc) portssvc.LedgerReaderSvc {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		companySvc: companySvc,
	}
}

var _ portssvc.LedgerReaderSvc = (*ledgerService)(nil)

// GetEntryByID retrieves a ledger entry with its lines, scoped to the company.
func (s *ledgerService) GetEntryByID(ctx context.Context, companyID string, entryID string, userID string) (*domain.LedgerEntry, error) {
	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}
