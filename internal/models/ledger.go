package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a ledger entry header row.
type LedgerEntry struct {
	EntryID   string    `db:"entry_id"`
	CompanyID string    `db:"company_id"`
	JournalID string    `db:"journal_id"`
	EntryDate time.Time `db:"entry_date"`
	Reference string    `db:"reference"`
	Status    string    `db:"status"`
	AuditFields
}

// LedgerLine represents one debit or credit row of a ledger entry.
type LedgerLine struct {
	LineID           string          `db:"line_id"`
	EntryID          string          `db:"entry_id"`
	AccountID        string          `db:"account_id"`
	PartnerID        sql.NullString  `db:"partner_id"`
	Label            string          `db:"label"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	CurrencyCode     string          `db:"currency_code"`
	Reconciled       bool            `db:"reconciled"`
	ReconcileGroupID sql.NullString  `db:"reconcile_group_id"`
	AuditFields
}

// ReconcileGroup represents a reconciliation group row.
type ReconcileGroup struct {
	GroupID   string          `db:"group_id"`
	InvoiceID sql.NullString  `db:"invoice_id"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
	CreatedBy string          `db:"created_by"`
}
