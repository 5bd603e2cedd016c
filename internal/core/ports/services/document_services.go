package services

import (
	"context"
	"time"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
)

// DocumentReaderSvc defines read operations for cash documents
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a document the user is allowed to see.
	GetDocumentByID(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// ListDocuments retrieves a paginated document list restricted to the
	// user's granted journals.
	ListDocuments(ctx context.Context, filter repositories.DocumentListFilter, limit int, nextToken *string, userID string) ([]domain.CashDocument, *string, error)

	// ListDocumentHistory retrieves a document's history entries, oldest
	// first.
	ListDocumentHistory(ctx context.Context, companyID string, documentID string, userID string) ([]domain.DocumentNote, error)
}

// DocumentWriterSvc defines write operations for cash documents
type DocumentWriterSvc interface {
	// CreateDocument creates a new draft document.
	CreateDocument(ctx context.Context, companyID string, req dto.CreateCashDocumentRequest, userID string) (*domain.CashDocument, error)

	// UpdateDocument applies a field update after checking each changed
	// field against the document's state and the user's role. It returns
	// the updated document plus any line-level warnings.
	UpdateDocument(ctx context.Context, companyID string, documentID string, req dto.UpdateCashDocumentRequest, userID string) (*domain.CashDocument, []string, error)

	// LoadAllocations replaces the document's allocation lines with the
	// partner's open invoices/bills.
	LoadAllocations(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// ClearAllocations drops the loaded allocation lines, reverting the
	// amount source to manual entry.
	ClearAllocations(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// DeleteDocument removes a draft document.
	DeleteDocument(ctx context.Context, companyID string, documentID string, userID string) error
}

// DocumentWorkflowSvc defines the workflow transitions of a cash document
type DocumentWorkflowSvc interface {
	// SubmitForReview moves an outbound draft to reviewed.
	SubmitForReview(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// Approve moves a document to approved and clears its settlement date.
	Approve(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// BackToDraft undoes the last workflow step: approved back to draft for
	// inbound documents, reviewed back to draft for outbound.
	BackToDraft(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// RecordSettlementDate sets the actual collection/payment date on an
	// approved document.
	RecordSettlementDate(ctx context.Context, companyID string, documentID string, settlementDate time.Time, userID string) (*domain.CashDocument, error)

	// Post runs the posting engine: document number, balanced ledger entry,
	// reconciliation, residual updates, and the move to the terminal state.
	Post(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)

	// ResetToDraft reverses a posted/paid document back to draft. Restricted
	// to super approvers.
	ResetToDraft(ctx context.Context, companyID string, documentID string, userID string) (*domain.CashDocument, error)
}

// CashDocumentSvcFacade combines the document service interfaces for one
// payment direction.
type CashDocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	DocumentWorkflowSvc
}

// LedgerReaderSvc exposes read access to posted ledger entries.
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a ledger entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string, userID string) (*domain.LedgerEntry, error)
}
