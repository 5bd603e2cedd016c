package repositories

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// JournalReader defines read operations for cash journals
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.CashJournal, error)

	// FindJournalsByIDs retrieves multiple journals keyed by ID.
	FindJournalsByIDs(ctx context.Context, journalIDs []string) (map[string]domain.CashJournal, error)

	// ListJournalsByCompany retrieves all journals of a company.
	ListJournalsByCompany(ctx context.Context, companyID string) ([]domain.CashJournal, error)
}

// JournalWriter defines write operations for cash journals
type JournalWriter interface {
	// SaveJournal persists a new journal.
	SaveJournal(ctx context.Context, journal domain.CashJournal) error

	// UpdateJournal updates an existing journal's details.
	UpdateJournal(ctx context.Context, journal domain.CashJournal) error
}

// JournalGrantRepository manages the per-user journal access grants.
type JournalGrantRepository interface {
	// ListGrantedJournalIDs retrieves the IDs of all journals granted to a user.
	ListGrantedJournalIDs(ctx context.Context, userID string) ([]string, error)

	// SaveGrant persists a journal grant for a user.
	SaveGrant(ctx context.Context, grant domain.JournalGrant) error

	// DeleteGrant removes a journal grant from a user.
	DeleteGrant(ctx context.Context, userID string, journalID string) error
}

// PaymentMethodReader defines read operations for payment methods
type PaymentMethodReader interface {
	// FindPaymentMethodByID retrieves a specific payment method.
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)

	// ListPaymentMethods retrieves payment methods for a direction.
	ListPaymentMethods(ctx context.Context, direction domain.PaymentDirection) ([]domain.PaymentMethod, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalGrantRepository
	PaymentMethodReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
