package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// DocumentListFilter narrows a document listing.
type DocumentListFilter struct {
	CompanyID string
	Direction domain.PaymentDirection
	// JournalIDs restricts the listing to the given journals. Nil means no
	// restriction (admin); an empty slice means no visible journals.
	JournalIDs []string
	State      *domain.DocumentState
	PartnerID  *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// DocumentReader defines read operations for cash documents
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its allocation and
	// multi-account lines loaded.
	FindDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.CashDocument, error)

	// ListDocuments retrieves a paginated list of documents matching the
	// filter using token-based pagination. It returns the documents, a token
	// for the next page, and an error.
	ListDocuments(ctx context.Context, filter DocumentListFilter, limit int, nextToken *string) ([]domain.CashDocument, *string, error)

	// ListDocumentNotes retrieves a document's history entries, oldest first.
	ListDocumentNotes(ctx context.Context, documentID string) ([]domain.DocumentNote, error)
}

// DocumentWriter defines write operations for cash documents
type DocumentWriter interface {
	// SaveDocument persists a new document and its lines atomically.
	SaveDocument(ctx context.Context, document domain.CashDocument) error

	// UpdateDocument updates a document's header fields.
	UpdateDocument(ctx context.Context, document domain.CashDocument) error

	// ReplaceAllocationLines atomically replaces the allocation lines of a
	// document with the given set.
	ReplaceAllocationLines(ctx context.Context, documentID string, lines []domain.AllocationLine) error

	// ReplaceMultiAccountLines atomically replaces the multi-account lines of
	// a document with the given set.
	ReplaceMultiAccountLines(ctx context.Context, documentID string, lines []domain.MultiAccountLine) error

	// UpdateDocumentStateInTx updates the workflow state, the settlement
	// date and the posting linkage (number, posted entry, reversal entry) of
	// a document within a caller-owned transaction.
	UpdateDocumentStateInTx(ctx context.Context, tx pgx.Tx, documentID string, state domain.DocumentState, number *string, settlementDate *time.Time, postedEntryID *string, reversalEntryID *string, updatedBy string, updatedAt time.Time) error

	// SaveDocumentNote appends a history entry to a document.
	SaveDocumentNote(ctx context.Context, note domain.DocumentNote) error

	// DeleteDocument removes a document and its lines. Callers enforce that
	// only draft documents are deletable.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
