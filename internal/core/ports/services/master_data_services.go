package services

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts of a company, optionally only the
	// cash/bank ones.
	ListAccounts(ctx context.Context, companyID string, cashBankOnly bool, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. Admin only.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an account's details. Admin only.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// PartnerReaderSvc defines read operations for partner data
type PartnerReaderSvc interface {
	// GetPartnerByID retrieves a specific partner by its ID.
	GetPartnerByID(ctx context.Context, companyID string, partnerID string, userID string) (*domain.Partner, error)

	// ListPartners retrieves the active partners of a company.
	ListPartners(ctx context.Context, companyID string, userID string) ([]domain.Partner, error)
}

// PartnerWriterSvc defines write operations for partner data
type PartnerWriterSvc interface {
	// CreatePartner persists a new partner. Admin only.
	CreatePartner(ctx context.Context, companyID string, req dto.CreatePartnerRequest, userID string) (*domain.Partner, error)

	// UpdatePartner updates a partner's details. Admin only.
	UpdatePartner(ctx context.Context, companyID string, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error)
}

// PartnerSvcFacade combines all partner-related service interfaces
type PartnerSvcFacade interface {
	PartnerReaderSvc
	PartnerWriterSvc
}

// InvoiceReaderSvc defines read operations for invoices and vendor bills
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice.
	GetInvoiceByID(ctx context.Context, companyID string, invoiceID string, userID string) (*domain.Invoice, error)

	// ListOpenInvoices retrieves a partner's open invoices in a direction.
	ListOpenInvoices(ctx context.Context, companyID string, partnerID string, direction domain.InvoiceDirection, userID string) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices and vendor bills
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new invoice with its residual set to the
	// total amount.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// CurrencySvcFacade defines operations for currency data
type CurrencySvcFacade interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)
}
