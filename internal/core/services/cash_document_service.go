package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
)

var (
	ErrNotDraft              = errors.New("document can only be modified in draft")
	ErrWrongState            = errors.New("action not allowed in the document's current state")
	ErrSettlementDateMissing = errors.New("settlement date must be recorded before posting")
	ErrNoJournalAccess       = errors.New("user has no granted journals")
	ErrJournalAmbiguous      = errors.New("journal must be specified when more than one is granted")
	ErrPartnerModeOnly       = errors.New("allocations apply to partner-mode documents only")
	ErrUnmatchedAllocation   = errors.New("no unreconciled payment line matches the allocation amount")
)

// cashDocumentService implements the document workflow for one payment
// direction. Two instances are wired: one for cash in, one for cash out.
type cashDocumentService struct {
	direction domain.PaymentDirection

	documentRepo portsrepo.DocumentRepositoryWithTx
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	partnerRepo  portsrepo.PartnerRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository

	companySvc    portssvc.CompanyAuthorizerSvc
	companyReader portssvc.CompanyReaderSvc
	journalAccess portssvc.JournalAccessSvc
}

// NewCashDocumentService creates the document service for one direction.
func NewCashDocumentService(
	direction domain.PaymentDirection,
	repos portsrepo.RepositoryProvider,
	companySvc portssvc.CompanySvcFacade,
	journalAccess portssvc.JournalAccessSvc,
) portssvc.CashDocumentSvcFacade {
	return &cashDocumentService{
		direction:     direction,
		documentRepo:  repos.DocumentRepo.(portsrepo.DocumentRepositoryWithTx),
		ledgerRepo:    repos.LedgerRepo,
		invoiceRepo:   repos.InvoiceRepo,
		journalRepo:   repos.JournalRepo,
		partnerRepo:   repos.PartnerRepo,
		currencyRepo:  repos.CurrencyRepo,
		sequenceRepo:  repos.SequenceRepo,
		companySvc:    companySvc,
		companyReader: companySvc,
		journalAccess: journalAccess,
	}
}

var _ portssvc.CashDocumentSvcFacade = (*cashDocumentService)(nil)

// invoiceDirection maps the payment direction to the invoice kind it settles.
func (s *cashDocumentService) invoiceDirection() domain.InvoiceDirection {
	if s.direction == domain.Outbound {
		return domain.VendorBill
	}
	return domain.CustomerInvoice
}

// ensureJournalVisible rejects access to documents in journals the user has
// no grant for. Admins see everything.
func (s *cashDocumentService) ensureJournalVisible(ctx context.Context, membership *domain.CompanyMembership, companyID string, journalID string, userID string) error {
	if membership.Role == domain.RoleAdmin {
		return nil
	}
	allowed, err := s.journalAccess.AllowedJournals(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !containsString(allowed, journalID) {
		return apperrors.ErrNotFound
	}
	return nil
}

// getDocument loads a document scoped to company and direction.
func (s *cashDocumentService) getDocument(ctx context.Context, companyID string, documentID string) (*domain.CashDocument, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Direction != s.direction {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

// appendNote records a workflow history entry on the document. History is
// best effort: a failed insert is logged, never fatal to the action itself.
func (s *cashDocumentService) appendNote(ctx context.Context, documentID string, text string, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	note := domain.DocumentNote{
		NoteID:     uuid.NewString(),
		DocumentID: documentID,
		Text:       text,
		CreatedAt:  time.Now(),
		CreatedBy:  userID,
	}
	if err := s.documentRepo.SaveDocumentNote(ctx, note); err != nil {
		logger.Warn("Failed to append document note", slog.String("error", err.Error()), slog.String("document_id", documentID))
	}
}

// ListDocumentHistory retrieves a document's history entries, oldest first.
func (s *cashDocumentService) ListDocumentHistory(ctx context.Context, companyID string, documentID string, userID string) ([]domain.DocumentNote, error) {
	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}
	notes, err := s.documentRepo.ListDocumentNotes(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document history: %w", err)
	}
	if notes == nil {
		notes = []domain.DocumentNote{}
	}
	return notes, nil
}

// GetDocumentByID retrieves a document the user is allowed to see.
func (s *cashDocumentService) GetDocumentByID(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments retrieves a paginated document list restricted to the user's
// granted journals.
func (s *cashDocumentService) ListDocuments(ctx context.Context, filter portsrepo.DocumentListFilter, limit int, nextToken *string, userID string) ([]domain.CashDocument, *string, error) {
	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, filter.CompanyID, domain.RoleEntry)
	if err != nil {
		return nil, nil, err
	}
	filter.Direction = s.direction

	if membership.Role != domain.RoleAdmin {
		allowed, err := s.journalAccess.AllowedJournals(ctx, userID, filter.CompanyID)
		if err != nil {
			return nil, nil, err
		}
		if filter.JournalIDs == nil {
			filter.JournalIDs = allowed
		} else {
			visible := make([]string, 0, len(filter.JournalIDs))
			for _, id := range filter.JournalIDs {
				if containsString(allowed, id) {
					visible = append(visible, id)
				}
			}
			filter.JournalIDs = visible
		}
	}
	return s.documentRepo.ListDocuments(ctx, filter, limit, nextToken)
}

// resolveJournal picks the journal for a new document: the requested one when
// granted, otherwise auto-assigned when the user has exactly one grant.
func (s *cashDocumentService) resolveJournal(ctx context.Context, membership *domain.CompanyMembership, companyID string, requested string, userID string) (*domain.CashJournal, error) {
	journalID := requested
	if journalID == "" {
		allowed, err := s.journalAccess.AllowedJournals(ctx, userID, companyID)
		if err != nil {
			return nil, err
		}
		if allowed == nil {
			// Admins are unrestricted, so there is nothing to auto-assign from.
			return nil, fmt.Errorf("%w: journal is required", apperrors.ErrValidation)
		}
		switch len(allowed) {
		case 0:
			return nil, fmt.Errorf("%w", ErrNoJournalAccess)
		case 1:
			journalID = allowed[0]
		default:
			return nil, fmt.Errorf("%w", ErrJournalAmbiguous)
		}
	} else if err := s.ensureJournalVisible(ctx, membership, companyID, journalID, userID); err != nil {
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if !journal.IsActive {
		return nil, fmt.Errorf("%w: journal %s is inactive", apperrors.ErrValidation, journal.Code)
	}
	return journal, nil
}

// CreateDocument creates a new draft document.
func (s *cashDocumentService) CreateDocument(ctx context.Context, companyID string, req dto.CreateCashDocumentRequest, userID string) (*domain.CashDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}

	company, err := s.companyReader.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	journal, err := s.resolveJournal(ctx, membership, companyID, req.JournalID, userID)
	if err != nil {
		return nil, err
	}

	method, err := s.journalRepo.FindPaymentMethodByID(ctx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method.Direction != s.direction {
		return nil, fmt.Errorf("%w: payment method %s is not valid for this direction", apperrors.ErrValidation, method.Name)
	}

	if req.CounterpartyMode == domain.CounterpartyPartner {
		if req.PartnerID == nil || *req.PartnerID == "" {
			return nil, fmt.Errorf("%w: partner is required in partner mode", apperrors.ErrValidation)
		}
		partner, err := s.partnerRepo.FindPartnerByID(ctx, *req.PartnerID)
		if err != nil {
			return nil, err
		}
		if partner.CompanyID != companyID || !partner.IsActive {
			return nil, fmt.Errorf("%w: partner %s is not available", apperrors.ErrValidation, *req.PartnerID)
		}
	}

	now := time.Now()
	doc := domain.CashDocument{
		DocumentID:       uuid.NewString(),
		CompanyID:        companyID,
		Direction:        s.direction,
		State:            domain.StateDraft,
		CounterpartyMode: req.CounterpartyMode,
		PartnerID:        req.PartnerID,
		AccountID:        req.AccountID,
		AmountManual:     req.Amount,
		DocumentDate:     req.DocumentDate,
		JournalID:        journal.JournalID,
		PaymentMethodID:  req.PaymentMethodID,
		CurrencyCode:     company.CurrencyCode,
		Notes:            req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.appendNote(ctx, doc.DocumentID, "Document created", userID)
	logger.Info("Document created", slog.String("document_id", doc.DocumentID), slog.String("direction", string(s.direction)))
	return &doc, nil
}

// changedFields lists the fields an update request touches, for the write
// guard.
func changedFields(req dto.UpdateCashDocumentRequest) []string {
	var fields []string
	if req.JournalID != nil {
		fields = append(fields, "journalID")
	}
	if req.PaymentMethodID != nil {
		fields = append(fields, "paymentMethodID")
	}
	if req.CounterpartyMode != nil {
		fields = append(fields, "counterpartyMode")
	}
	if req.PartnerID != nil {
		fields = append(fields, "partnerID")
	}
	if req.AccountID != nil {
		fields = append(fields, "accountID")
	}
	if req.MultiAccount != nil {
		fields = append(fields, "multiAccount")
	}
	if req.Amount != nil {
		fields = append(fields, "amount")
	}
	if req.DocumentDate != nil {
		fields = append(fields, "documentDate")
	}
	if req.SettlementDate != nil {
		fields = append(fields, "settlementDate")
	}
	if req.Notes != nil {
		fields = append(fields, "notes")
	}
	if req.AllocationLines != nil {
		fields = append(fields, "allocationLines")
	}
	if req.MultiAccountLines != nil {
		fields = append(fields, "multiAccountLines")
	}
	return fields
}

// writeGuard decides whether the given fields may change in the document's
// current state. Draft documents are freely editable; the only edit allowed
// after that is the settlement date alone while approved, so the entry role
// can record the real transaction date after an approver signed off.
// Workflow actions write state and linkage through their own repository
// path, not through here.
func writeGuard(doc *domain.CashDocument, fields []string) error {
	if doc.State == domain.StateDraft {
		return nil
	}
	if doc.State == domain.StateApproved && len(fields) == 1 && fields[0] == "settlementDate" {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrNotDraft, fields)
}

// UpdateDocument applies a field update after checking each changed field
// against the document's state. It returns the updated document plus any
// line-level warnings.
func (s *cashDocumentService) UpdateDocument(ctx context.Context, companyID string, documentID string, req dto.UpdateCashDocumentRequest, userID string) (*domain.CashDocument, []string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, nil, err
	}

	fields := changedFields(req)
	if len(fields) == 0 {
		return doc, nil, nil
	}
	if err := writeGuard(doc, fields); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}

	var warnings []string
	linesChanged := false
	allocLinesEdited := false
	multiLinesEdited := false

	if req.JournalID != nil && *req.JournalID != doc.JournalID {
		journal, err := s.resolveJournal(ctx, membership, companyID, *req.JournalID, userID)
		if err != nil {
			return nil, nil, err
		}
		doc.JournalID = journal.JournalID
	}
	if req.PaymentMethodID != nil {
		method, err := s.journalRepo.FindPaymentMethodByID(ctx, *req.PaymentMethodID)
		if err != nil {
			return nil, nil, err
		}
		if method.Direction != s.direction {
			return nil, nil, fmt.Errorf("%w: payment method %s is not valid for this direction", apperrors.ErrValidation, method.Name)
		}
		doc.PaymentMethodID = *req.PaymentMethodID
	}

	// Changing the counterparty or the partner invalidates any loaded
	// allocations wholesale; stale partial allocations must never survive.
	if req.CounterpartyMode != nil && *req.CounterpartyMode != doc.CounterpartyMode {
		doc.CounterpartyMode = *req.CounterpartyMode
		if doc.CounterpartyMode == domain.CounterpartyAccount {
			doc.PartnerID = nil
		}
		doc.AllocationLines = nil
		doc.AllocationsLoaded = false
		linesChanged = true
	}
	if req.PartnerID != nil {
		if doc.PartnerID == nil || *doc.PartnerID != *req.PartnerID {
			partner, err := s.partnerRepo.FindPartnerByID(ctx, *req.PartnerID)
			if err != nil {
				return nil, nil, err
			}
			if partner.CompanyID != companyID || !partner.IsActive {
				return nil, nil, fmt.Errorf("%w: partner %s is not available", apperrors.ErrValidation, *req.PartnerID)
			}
			doc.PartnerID = req.PartnerID
			doc.AllocationLines = nil
			doc.AllocationsLoaded = false
			linesChanged = true
		}
	}
	if req.AccountID != nil {
		doc.AccountID = req.AccountID
	}

	if req.MultiAccount != nil && *req.MultiAccount != doc.MultiAccount {
		if *req.MultiAccount {
			if s.direction != domain.Outbound {
				return nil, nil, fmt.Errorf("%w", domain.ErrMultiAccountExclusive)
			}
			doc.MultiAccount = true
			// The manual amount must stay zero while the split is authoritative.
			doc.AmountManual = decimal.Zero
		} else {
			doc.LeaveMultiAccount()
			linesChanged = true
		}
	}

	if req.MultiAccountLines != nil {
		if !doc.MultiAccount {
			return nil, nil, fmt.Errorf("%w: multi-account lines require multi-account mode", apperrors.ErrValidation)
		}
		lines := make([]domain.MultiAccountLine, len(*req.MultiAccountLines))
		for i, lr := range *req.MultiAccountLines {
			lines[i] = domain.MultiAccountLine{
				LineID:     uuid.NewString(),
				DocumentID: doc.DocumentID,
				AccountID:  lr.AccountID,
				Amount:     lr.Amount,
				Note:       lr.Note,
			}
		}
		doc.MultiAccountLines = lines
		multiLinesEdited = true
	}

	if req.AllocationLines != nil {
		if !doc.AllocationsLoaded {
			return nil, nil, fmt.Errorf("%w: allocations must be loaded before editing", apperrors.ErrValidation)
		}
		byInvoice := make(map[string]*domain.AllocationLine, len(doc.AllocationLines))
		for i := range doc.AllocationLines {
			byInvoice[doc.AllocationLines[i].InvoiceID] = &doc.AllocationLines[i]
		}
		for _, lr := range *req.AllocationLines {
			line, ok := byInvoice[lr.InvoiceID]
			if !ok {
				return nil, nil, fmt.Errorf("%w: invoice %s is not among the loaded allocations", apperrors.ErrValidation, lr.InvoiceID)
			}
			line.Selected = lr.Selected
			line.Amount = lr.Amount
			if w := line.Clamp(); w != "" {
				warnings = append(warnings, w)
			}
		}
		allocLinesEdited = true
	}

	if req.Amount != nil {
		if err := doc.SetAmount(*req.Amount); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	if req.DocumentDate != nil {
		doc.DocumentDate = *req.DocumentDate
	}
	if req.SettlementDate != nil {
		doc.SettlementDate = req.SettlementDate
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, doc.CurrencyCode)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Validate(*currency); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		logger.Error("Failed to update document", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	// Line changes were staged on the document; they reach the store only
	// once validation has accepted the whole update.
	if linesChanged || allocLinesEdited {
		if err := s.documentRepo.ReplaceAllocationLines(ctx, doc.DocumentID, doc.AllocationLines); err != nil {
			return nil, nil, fmt.Errorf("failed to replace allocation lines: %w", err)
		}
	}
	if multiLinesEdited || (linesChanged && !doc.MultiAccount) {
		if err := s.documentRepo.ReplaceMultiAccountLines(ctx, doc.DocumentID, doc.MultiAccountLines); err != nil {
			return nil, nil, fmt.Errorf("failed to replace multi-account lines: %w", err)
		}
	}

	logger.Info("Document updated", slog.String("document_id", documentID), slog.Int("warning_count", len(warnings)))
	return doc, warnings, nil
}

// LoadAllocations replaces the document's allocation lines with one
// unselected zero-amount line per open invoice/bill of the partner.
func (s *cashDocumentService) LoadAllocations(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}
	if doc.State != domain.StateDraft {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrNotDraft)
	}
	if doc.CounterpartyMode != domain.CounterpartyPartner || doc.PartnerID == nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrPartnerModeOnly)
	}

	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, companyID, *doc.PartnerID, s.invoiceDirection())
	if err != nil {
		return nil, fmt.Errorf("failed to load open invoices: %w", err)
	}

	lines := make([]domain.AllocationLine, len(invoices))
	for i, inv := range invoices {
		lines[i] = domain.AllocationLine{
			LineID:          uuid.NewString(),
			DocumentID:      doc.DocumentID,
			InvoiceID:       inv.InvoiceID,
			Selected:        false,
			Amount:          decimal.Zero,
			InvoiceNumber:   inv.Number,
			InvoiceResidual: inv.AmountResidual,
		}
	}

	if err := s.documentRepo.ReplaceAllocationLines(ctx, doc.DocumentID, lines); err != nil {
		return nil, fmt.Errorf("failed to replace allocation lines: %w", err)
	}

	doc.AllocationLines = lines
	doc.AllocationsLoaded = true
	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	logger.Info("Allocations loaded", slog.String("document_id", documentID), slog.Int("line_count", len(lines)))
	return doc, nil
}

// ClearAllocations drops the loaded allocation lines, reverting the amount
// source to manual entry.
func (s *cashDocumentService) ClearAllocations(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}
	if doc.State != domain.StateDraft {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, ErrNotDraft)
	}

	if err := s.documentRepo.ReplaceAllocationLines(ctx, doc.DocumentID, nil); err != nil {
		return nil, fmt.Errorf("failed to clear allocation lines: %w", err)
	}
	doc.AllocationLines = nil
	doc.AllocationsLoaded = false
	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return doc, nil
}

// DeleteDocument removes a draft document.
func (s *cashDocumentService) DeleteDocument(ctx context.Context, companyID string, documentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleEntry)
	if err != nil {
		return err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return err
	}
	if doc.State != domain.StateDraft {
		return fmt.Errorf("%w: only draft documents can be deleted", apperrors.ErrConflict)
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		logger.Error("Failed to delete document", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	logger.Info("Document deleted", slog.String("document_id", documentID))
	return nil
}

// SubmitForReview moves an outbound draft to reviewed.
func (s *cashDocumentService) SubmitForReview(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	if s.direction != domain.Outbound {
		return nil, fmt.Errorf("%w: inbound documents are approved directly from draft", apperrors.ErrConflict)
	}
	return s.transition(ctx, companyID, documentID, userID, domain.RoleReviewer, domain.StateDraft, domain.StateReviewed, false)
}

// Approve moves a document to approved and clears its settlement date, so the
// real collection/payment date is recorded afresh before posting.
func (s *cashDocumentService) Approve(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	from := domain.StateDraft
	if s.direction == domain.Outbound {
		from = domain.StateReviewed
	}
	return s.transition(ctx, companyID, documentID, userID, domain.RoleApprover, from, domain.StateApproved, true)
}

// BackToDraft undoes the last workflow step before posting.
func (s *cashDocumentService) BackToDraft(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error) {
	if s.direction == domain.Outbound {
		return s.transition(ctx, companyID, documentID, userID, domain.RoleReviewer, domain.StateReviewed, domain.StateDraft, false)
	}
	return s.transition(ctx, companyID, documentID, userID, domain.RoleApprover, domain.StateApproved, domain.StateDraft, false)
}

// transition performs a simple state change with a precondition check.
func (s *cashDocumentService) transition(ctx context.Context, companyID string, documentID string, userID string, requiredRole domain.TreasuryRole, from domain.DocumentState, to domain.DocumentState, clearSettlementDate bool) (*domain.CashDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, requiredRole)
	if err != nil {
		return nil, err
	}
	doc, err := s.getDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureJournalVisible(ctx, membership, companyID, doc.JournalID, userID); err != nil {
		return nil, err
	}
	if doc.State != from {
		return nil, fmt.Errorf("%w: %v (state is %s, expected %s)", apperrors.ErrConflict, ErrWrongState, doc.State, from)
	}

	if to != domain.StateDraft {
		// Leaving draft requires the standing invariants, positive amount
		// included, to hold.
		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, doc.CurrencyCode)
		if err != nil {
			return nil, err
		}
		checked := *doc
		checked.State = to
		if err := checked.Validate(*currency); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	doc.State = to
	if clearSettlementDate || to == domain.StateDraft {
		doc.SettlementDate = nil
	}
	if to == domain.StateDraft {
		// A fresh draft carries no trace of an earlier posting cycle. Only the
		// reversal engine's reset keeps the reversal ref, for the audit trail.
		doc.Number = nil
		doc.PostedEntryID = nil
		doc.ReversalEntryID = nil
	}
	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		logger.Error("Failed to update document state", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	s.appendNote(ctx, documentID, fmt.Sprintf("State changed from %s to %s", from, to), userID)
	logger.Info("Document transitioned", slog.String("document_id", documentID), slog.String("from", string(from)), slog.String("to", string(to)))
	return doc, nil
}

// RecordSettlementDate sets the actual collection/payment date on an approved
// document. This is the only user edit permitted outside draft.
func (s *cashDocumentService) RecordSettlementDate(ctx context.Context, companyID string, documentID string, settlementDate time.Time, userID string) (*domain.CashDocument, error) {
	doc, _, err := s.UpdateDocument(ctx, companyID, documentID, dto.UpdateCashDocumentRequest{SettlementDate: &settlementDate}, userID)
	return doc, err
}
