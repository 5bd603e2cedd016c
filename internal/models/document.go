package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// CashDocument represents a treasury document header row.
type CashDocument struct {
	DocumentID        string          `db:"document_id"`
	CompanyID         string          `db:"company_id"`
	Direction         string          `db:"direction"`
	Number            sql.NullString  `db:"number"`
	State             string          `db:"state"`
	CounterpartyMode  string          `db:"counterparty_mode"`
	PartnerID         sql.NullString  `db:"partner_id"`
	AccountID         sql.NullString  `db:"account_id"`
	MultiAccount      bool            `db:"multi_account"`
	AmountManual      decimal.Decimal `db:"amount_manual"`
	DocumentDate      time.Time       `db:"document_date"`
	SettlementDate    sql.NullTime    `db:"settlement_date"`
	JournalID         string          `db:"journal_id"`
	PaymentMethodID   string          `db:"payment_method_id"`
	CurrencyCode      string          `db:"currency_code"`
	Notes             string          `db:"notes"`
	AllocationsLoaded bool            `db:"allocations_loaded"`
	PostedEntryID     sql.NullString  `db:"posted_entry_id"`
	ReversalEntryID   sql.NullString  `db:"reversal_entry_id"`
	AuditFields
}

// AllocationLine represents an invoice allocation row of a document.
type AllocationLine struct {
	LineID          string          `db:"line_id"`
	DocumentID      string          `db:"document_id"`
	InvoiceID       string          `db:"invoice_id"`
	Selected        bool            `db:"selected"`
	Amount          decimal.Decimal `db:"amount"`
	InvoiceNumber   string          `db:"invoice_number"`
	InvoiceResidual decimal.Decimal `db:"invoice_residual"`
}

// MultiAccountLine represents a split disbursement row of a document.
type MultiAccountLine struct {
	LineID     string          `db:"line_id"`
	DocumentID string          `db:"document_id"`
	AccountID  string          `db:"account_id"`
	Amount     decimal.Decimal `db:"amount"`
	Note       string          `db:"note"`
}
