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

// invoiceService registers posted invoices and vendor bills so treasury
// documents can allocate against their open balances.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryWithTx
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	partnerRepo   portsrepo.PartnerRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	companySvc    portssvc.CompanyAuthorizerSvc
	companyReader portssvc.CompanyReaderSvc
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repos portsrepo.RepositoryProvider, companySvc portssvc.CompanySvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   repos.InvoiceRepo.(portsrepo.InvoiceRepositoryWithTx),
		ledgerRepo:    repos.LedgerRepo,
		partnerRepo:   repos.PartnerRepo,
		accountRepo:   repos.AccountRepo,
		companySvc:    companySvc,
		companyReader: companySvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice registers a posted invoice or vendor bill. Its residual starts
// at the full total and its own ledger entry carries the receivable/payable
// line that later reconciliation settles. Admin only.
func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !req.AmountTotal.IsPositive() {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, domain.ErrAmountNotPositive)
	}

	company, err := s.companyReader.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner.CompanyID != companyID || !partner.IsActive {
		return nil, fmt.Errorf("%w: partner is not an active partner of the company", apperrors.ErrValidation)
	}
	counter, err := s.accountRepo.FindAccountByID(ctx, req.CounterAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: counter account not found", apperrors.ErrValidation)
	}
	if counter.CompanyID != companyID {
		return nil, fmt.Errorf("%w: counter account belongs to another company", apperrors.ErrValidation)
	}

	// Customer invoices debit the receivable; vendor bills credit the payable.
	controlAccountID := partner.ReceivableAccountID
	if req.Direction == domain.VendorBill {
		controlAccountID = partner.PayableAccountID
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		EntryDate:   req.InvoiceDate,
		Reference:   req.Number,
		Status:      domain.EntryPosted,
		AuditFields: audit,
	}
	partnerID := req.PartnerID
	control := domain.LedgerLine{
		LineID:       uuid.NewString(),
		EntryID:      entry.EntryID,
		AccountID:    controlAccountID,
		PartnerID:    &partnerID,
		Label:        req.Number,
		CurrencyCode: company.CurrencyCode,
		AuditFields:  audit,
	}
	counterLine := domain.LedgerLine{
		LineID:       uuid.NewString(),
		EntryID:      entry.EntryID,
		AccountID:    counter.AccountID,
		Label:        req.Number,
		CurrencyCode: company.CurrencyCode,
		AuditFields:  audit,
	}
	if req.Direction == domain.CustomerInvoice {
		control.Debit = req.AmountTotal
		counterLine.Credit = req.AmountTotal
	} else {
		control.Credit = req.AmountTotal
		counterLine.Debit = req.AmountTotal
	}
	entry.Lines = []domain.LedgerLine{control, counterLine}

	invoice := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		CompanyID:      companyID,
		Number:         req.Number,
		Direction:      req.Direction,
		PartnerID:      req.PartnerID,
		InvoiceDate:    req.InvoiceDate,
		CurrencyCode:   company.CurrencyCode,
		AmountTotal:    req.AmountTotal,
		AmountResidual: req.AmountTotal,
		Status:         domain.InvoicePosted,
		LedgerEntryID:  entry.EntryID,
		AuditFields:    audit,
	}

	// The invoice and its entry commit together, so a duplicate number
	// cannot leave a posted entry without an invoice row.
	tx, err := s.invoiceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.invoiceRepo.Rollback(ctx, tx)

	if err := s.ledgerRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		logger.Error("Failed to post invoice entry", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to post invoice entry: %w", err)
	}
	if err := s.invoiceRepo.SaveInvoiceInTx(ctx, tx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	if err := s.invoiceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	logger.Info("Invoice registered", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice scoped to the company.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error) {
	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ListOpenInvoices retrieves a partner's open invoices in a direction.
func (s *invoiceService) ListOpenInvoices(ctx context.Context, companyID string, partnerID string, direction domain.InvoiceDirection, userID string) ([]domain.Invoice, error) {
	if _, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, companyID, partnerID, direction)
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}
