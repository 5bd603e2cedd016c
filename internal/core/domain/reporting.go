package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBookRow is one movement on a cash/bank account with a running balance,
// ordered by entry date and sequence within the journal.
type CashBookRow struct {
	EntryID        string          `json:"entryID"`
	LineID         string          `json:"lineID"`
	JournalID      string          `json:"journalID"`
	JournalName    string          `json:"journalName"`
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	EntryDate      time.Time       `json:"entryDate"`
	Reference      string          `json:"reference"`
	Label          string          `json:"label"`
	PartnerName    *string         `json:"partnerName,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// TransactionAnalysisRow aggregates posted treasury activity per journal,
// direction and counterparty account for a reporting period.
type TransactionAnalysisRow struct {
	JournalID     string           `json:"journalID"`
	JournalName   string           `json:"journalName"`
	Direction     PaymentDirection `json:"direction"`
	AccountID     string           `json:"accountID"`
	AccountName   string           `json:"accountName"`
	PartnerName   *string          `json:"partnerName,omitempty"`
	Period        string           `json:"period"` // YYYY-MM
	DocumentCount int64            `json:"documentCount"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
}

// CashBookFilter narrows a cash book query.
type CashBookFilter struct {
	CompanyID string
	JournalID *string
	FromDate  *time.Time
	ToDate    *time.Time
}

// TransactionAnalysisFilter narrows a transaction analysis query.
type TransactionAnalysisFilter struct {
	CompanyID string
	JournalID *string
	Direction *PaymentDirection
	FromDate  *time.Time
	ToDate    *time.Time
}
