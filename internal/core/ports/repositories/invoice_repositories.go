package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoices and vendor bills
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoicesByIDs retrieves multiple invoices keyed by ID.
	FindInvoicesByIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Invoice, error)

	// ListOpenInvoices retrieves the posted invoices of a partner in the
	// given direction that still carry a residual, oldest first.
	ListOpenInvoices(ctx context.Context, companyID string, partnerID string, direction domain.InvoiceDirection) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices and vendor bills
type InvoiceWriter interface {
	// SaveInvoiceInTx persists a new invoice within a caller-owned
	// transaction, so the invoice and its ledger entry commit together.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error

	// ApplyResidualDeltaInTx adjusts an invoice's residual by delta within a
	// caller-owned transaction (negative when settling, positive when
	// unwinding a settlement). Implementations must reject adjustments that
	// would push the residual below zero or above the total.
	ApplyResidualDeltaInTx(ctx context.Context, tx pgx.Tx, invoiceID string, delta decimal.Decimal) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
