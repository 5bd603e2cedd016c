package services

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
)

// JournalReaderSvc defines read operations for cash journals
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal the user is allowed to see.
	GetJournalByID(ctx context.Context, companyID string, journalID string, userID string) (*domain.CashJournal, error)

	// ListJournals retrieves the journals of a company visible to the user:
	// all of them for admins, the granted subset for everyone else.
	ListJournals(ctx context.Context, companyID string, userID string) ([]domain.CashJournal, error)
}

// JournalWriterSvc defines write operations for cash journals
type JournalWriterSvc interface {
	// CreateJournal persists a new journal. Admin only.
	CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.CashJournal, error)

	// UpdateJournal updates a journal's details. Admin only.
	UpdateJournal(ctx context.Context, companyID string, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.CashJournal, error)
}

// JournalAccessSvc answers journal visibility questions and manages grants.
type JournalAccessSvc interface {
	// AllowedJournals returns the journal IDs the user may work in. A nil
	// slice means unrestricted (admin).
	AllowedJournals(ctx context.Context, userID string, companyID string) ([]string, error)

	// GrantJournal grants a user access to a journal. Admin only.
	GrantJournal(ctx context.Context, companyID string, targetUserID string, journalID string, requestingUserID string) error

	// RevokeJournal removes a user's access to a journal. Admin only.
	RevokeJournal(ctx context.Context, companyID string, targetUserID string, journalID string, requestingUserID string) error

	// OnJournalGrantsChanged invalidates any cached grant set for the user.
	// Called after every grant mutation, including ones made outside this
	// service.
	OnJournalGrantsChanged(userID string)
}

// PaymentMethodSvc defines read operations for payment methods
type PaymentMethodSvc interface {
	// ListPaymentMethods retrieves the payment methods for a direction.
	ListPaymentMethods(ctx context.Context, direction domain.PaymentDirection) ([]domain.PaymentMethod, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalAccessSvc
	PaymentMethodSvc
}
