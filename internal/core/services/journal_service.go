package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
)

// journalService handles cash journals, payment methods and journal grants.
// Grant sets are memoized per user; OnJournalGrantsChanged drops the cached
// set after every grant mutation.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanyAuthorizerSvc

	mu         sync.RWMutex
	grantCache map[string][]string // userID -> granted journal IDs
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanyAuthorizerSvc) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		companySvc:  companySvc,
		grantCache:  make(map[string][]string),
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal persists a new journal. Admin only.
func (s *journalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.CashJournal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	// The default account is the cash/bank side of every posting, so it must
	// exist and be flagged cash/bank.
	account, err := s.accountRepo.FindAccountByID(ctx, req.DefaultAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: default account %s not found", apperrors.ErrValidation, req.DefaultAccountID)
		}
		return nil, fmt.Errorf("failed to validate default account: %w", err)
	}
	if account.CompanyID != companyID {
		return nil, fmt.Errorf("%w: default account %s does not belong to company %s", apperrors.ErrValidation, req.DefaultAccountID, companyID)
	}
	if !account.CashBank {
		return nil, fmt.Errorf("%w: default account %s is not a cash/bank account", apperrors.ErrValidation, req.DefaultAccountID)
	}

	now := time.Now()
	journal := domain.CashJournal{
		JournalID:        uuid.NewString(),
		CompanyID:        companyID,
		Code:             req.Code,
		Name:             req.Name,
		Kind:             req.Kind,
		DefaultAccountID: req.DefaultAccountID,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return &journal, nil
}

// UpdateJournal updates a journal's details. Admin only.
func (s *journalService) UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.CashJournal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		journal.Name = *req.Name
	}
	if req.IsActive != nil {
		journal.IsActive = *req.IsActive
	}
	journal.LastUpdatedAt = time.Now()
	journal.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal %s: %w", journalID, err)
	}
	return journal, nil
}

// GetJournalByID retrieves a journal the user is allowed to see.
func (s *journalService) GetJournalByID(ctx context.Context, companyID string, journalID string, userID string) (*domain.CashJournal, error) {
	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	if membership.Role != domain.RoleAdmin {
		allowed, err := s.AllowedJournals(ctx, userID, companyID)
		if err != nil {
			return nil, err
		}
		if !containsString(allowed, journalID) {
			// Hide ungranted journals entirely.
			return nil, apperrors.ErrNotFound
		}
	}
	return journal, nil
}

// ListJournals retrieves the journals of a company visible to the user.
func (s *journalService) ListJournals(ctx context.Context, companyID string, userID string) ([]domain.CashJournal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}

	journals, err := s.journalRepo.ListJournalsByCompany(ctx, companyID)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list journals of company %s: %w", companyID, err)
	}

	if membership.Role == domain.RoleAdmin {
		return journals, nil
	}

	allowed, err := s.AllowedJournals(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.CashJournal, 0, len(journals))
	for _, j := range journals {
		if containsString(allowed, j.JournalID) {
			visible = append(visible, j)
		}
	}
	return visible, nil
}

// AllowedJournals returns the journal IDs the user may work in. A nil slice
// means unrestricted (admin).
func (s *journalService) AllowedJournals(ctx context.Context, userID string, companyID string) ([]string, error) {
	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}
	if membership.Role == domain.RoleAdmin {
		return nil, nil
	}

	s.mu.RLock()
	cached, ok := s.grantCache[userID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	granted, err := s.journalRepo.ListGrantedJournalIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal grants of user %s: %w", userID, err)
	}
	if granted == nil {
		granted = []string{}
	}

	s.mu.Lock()
	s.grantCache[userID] = granted
	s.mu.Unlock()
	return granted, nil
}

// GrantJournal grants a user access to a journal. Admin only.
func (s *journalService) GrantJournal(ctx context.Context, companyID string, targetUserID string, journalID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return err
	}
	if journal.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	grant := domain.JournalGrant{
		UserID:    targetUserID,
		JournalID: journalID,
		GrantedAt: time.Now(),
		GrantedBy: requestingUserID,
	}
	if err := s.journalRepo.SaveGrant(ctx, grant); err != nil {
		logger.Error("Failed to save journal grant", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to grant journal %s to user %s: %w", journalID, targetUserID, err)
	}

	s.OnJournalGrantsChanged(targetUserID)
	logger.Info("Journal granted", slog.String("target_user_id", targetUserID), slog.String("journal_id", journalID))
	return nil
}

// RevokeJournal removes a user's access to a journal. Admin only.
func (s *journalService) RevokeJournal(ctx context.Context, companyID string, targetUserID string, journalID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.journalRepo.DeleteGrant(ctx, targetUserID, journalID); err != nil {
		logger.Error("Failed to delete journal grant", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("journal_id", journalID))
		return fmt.Errorf("failed to revoke journal %s from user %s: %w", journalID, targetUserID, err)
	}

	s.OnJournalGrantsChanged(targetUserID)
	logger.Info("Journal revoked", slog.String("target_user_id", targetUserID), slog.String("journal_id", journalID))
	return nil
}

// OnJournalGrantsChanged invalidates the cached grant set for the user.
func (s *journalService) OnJournalGrantsChanged(userID string) {
	s.mu.Lock()
	delete(s.grantCache, userID)
	s.mu.Unlock()
}

// ListPaymentMethods retrieves the payment methods for a direction.
func (s *journalService) ListPaymentMethods(ctx context.Context, direction domain.PaymentDirection) ([]domain.PaymentMethod, error) {
	methods, err := s.journalRepo.ListPaymentMethods(ctx, direction)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func containsString(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
