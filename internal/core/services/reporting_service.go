package services

import (
	"context"
	"fmt"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
)

// reportingService generates treasury reports restricted to the journals the
// requesting user has been granted.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	companySvc    portssvc.CompanyAuthorizerSvc
	journalAccess portssvc.JournalAccessSvc
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, companySvc portssvc.CompanyAuthorizerSvc, journalAccess portssvc.JournalAccessSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		companySvc:    companySvc,
		journalAccess: journalAccess,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// checkJournalScope verifies the optional journal filter against the user's
// grants. It returns the granted set (nil for admins) for row filtering.
func (s *reportingService) checkJournalScope(ctx context.Context, companyID string, journalID *string, userID string) ([]string, error) {
	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}
	allowed, err := s.journalAccess.AllowedJournals(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if allowed == nil {
		return nil, nil
	}
	if journalID != nil {
		for _, id := range allowed {
			if id == *journalID {
				return allowed, nil
			}
		}
		return nil, apperrors.ErrNotFound
	}
	return allowed, nil
}

// CashBook generates the cash book: movements on cash/bank accounts with a
// running balance.
func (s *reportingService) CashBook(ctx context.Context, filter domain.CashBookFilter, userID string) ([]domain.CashBookRow, error) {
	allowed, err := s.checkJournalScope(ctx, filter.CompanyID, filter.JournalID, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.CashBookRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build cash book: %w", err)
	}
	rows = filterCashBookRows(rows, allowed)
	if rows == nil {
		rows = []domain.CashBookRow{}
	}
	return rows, nil
}

// TransactionAnalysis generates per-period aggregates of posted treasury
// documents.
func (s *reportingService) TransactionAnalysis(ctx context.Context, filter domain.TransactionAnalysisFilter, userID string) ([]domain.TransactionAnalysisRow, error) {
	allowed, err := s.checkJournalScope(ctx, filter.CompanyID, filter.JournalID, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.TransactionAnalysisRows(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction analysis: %w", err)
	}
	rows = filterAnalysisRows(rows, allowed)
	if rows == nil {
		rows = []domain.TransactionAnalysisRow{}
	}
	return rows, nil
}

func filterCashBookRows(rows []domain.CashBookRow, allowed []string) []domain.CashBookRow {
	if allowed == nil {
		return rows
	}
	filtered := make([]domain.CashBookRow, 0, len(rows))
	for _, r := range rows {
		if containsString(allowed, r.JournalID) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func filterAnalysisRows(rows []domain.TransactionAnalysisRow, allowed []string) []domain.TransactionAnalysisRow {
	if allowed == nil {
		return rows
	}
	filtered := make([]domain.TransactionAnalysisRow, 0, len(rows))
	for _, r := range rows {
		if containsString(allowed, r.JournalID) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
