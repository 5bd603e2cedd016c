package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// LedgerLineResponse defines the data returned for a ledger line.
type LedgerLineResponse struct {
	LineID     string          `json:"lineID"`
	AccountID  string          `json:"accountID"`
	PartnerID  *string         `json:"partnerID,omitempty"`
	Label      string          `json:"label"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Reconciled bool            `json:"reconciled"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID   string                   `json:"entryID"`
	CompanyID string                   `json:"companyID"`
	JournalID string                   `json:"journalID"`
	EntryDate time.Time                `json:"entryDate"`
	Reference string                   `json:"reference"`
	Status    domain.LedgerEntryStatus `json:"status"`
	Lines     []LedgerLineResponse     `json:"lines"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(entry *domain.LedgerEntry) LedgerEntryResponse {
	lines := make([]LedgerLineResponse, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = LedgerLineResponse{
			LineID:     l.LineID,
			AccountID:  l.AccountID,
			PartnerID:  l.PartnerID,
			Label:      l.Label,
			Debit:      l.Debit,
			Credit:     l.Credit,
			Reconciled: l.Reconciled,
		}
	}
	return LedgerEntryResponse{
		EntryID:   entry.EntryID,
		CompanyID: entry.CompanyID,
		JournalID: entry.JournalID,
		EntryDate: entry.EntryDate,
		Reference: entry.Reference,
		Status:    entry.Status,
		Lines:     lines,
	}
}
