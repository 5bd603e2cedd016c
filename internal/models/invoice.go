package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents a customer invoice or vendor bill row.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	CompanyID      string          `db:"company_id"`
	Number         string          `db:"number"`
	Direction      string          `db:"direction"`
	PartnerID      string          `db:"partner_id"`
	InvoiceDate    time.Time       `db:"invoice_date"`
	CurrencyCode   string          `db:"currency_code"`
	AmountTotal    decimal.Decimal `db:"amount_total"`
	AmountResidual decimal.Decimal `db:"amount_residual"`
	Status         string          `db:"status"`
	LedgerEntryID  string          `db:"ledger_entry_id"`
	AuditFields
}
