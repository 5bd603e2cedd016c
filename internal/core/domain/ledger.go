package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryStatus is the lifecycle state of a ledger entry. Posted entries
// are immutable audit records; corrections happen through compensating
// entries, never by editing or deleting.
type LedgerEntryStatus string

const (
	EntryDraft  LedgerEntryStatus = "DRAFT"
	EntryPosted LedgerEntryStatus = "POSTED"
)

// LedgerEntry is a balanced set of debit/credit lines recorded in the
// general ledger.
type LedgerEntry struct {
	EntryID   string            `json:"entryID"` // Primary Key (UUID)
	CompanyID string            `json:"companyID"`
	JournalID string            `json:"journalID"`
	EntryDate time.Time         `json:"entryDate"`
	Reference string            `json:"reference"`
	Status    LedgerEntryStatus `json:"status"`
	Lines     []LedgerLine      `json:"lines,omitempty"`
	AuditFields
}

// LedgerLine is one debit or credit within a ledger entry.
type LedgerLine struct {
	LineID       string          `json:"lineID"` // Primary Key (UUID)
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	PartnerID    *string         `json:"partnerID,omitempty"`
	Label        string          `json:"label"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
	Reconciled   bool            `json:"reconciled"`
	// ReconcileGroupID links this line to the group of lines it settles with.
	ReconcileGroupID *string `json:"reconcileGroupID,omitempty"`
	AuditFields
}

// Amount returns the line's single-sided amount (debit for debit lines,
// credit for credit lines).
func (l LedgerLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Balance returns debit minus credit.
func (l LedgerLine) Balance() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// NewLedgerLine describes a line to be created as part of a new entry.
type NewLedgerLine struct {
	AccountID string
	PartnerID *string
	Label     string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// BalancedLines reports whether the lines' debits equal their credits.
func BalancedLines(lines []NewLedgerLine) bool {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits.Equal(credits)
}

// ReconcileGroup ties reconciled lines together. When the group settles an
// allocation against an invoice, InvoiceID and Amount record how much of the
// invoice's residual it consumed so unreconciling can restore it.
type ReconcileGroup struct {
	GroupID   string          `json:"groupID"` // Primary Key (UUID)
	InvoiceID *string         `json:"invoiceID,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}
