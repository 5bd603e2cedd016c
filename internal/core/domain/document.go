package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentState is the workflow state of a cash document.
// Inbound documents move draft -> approved -> posted; outbound documents move
// draft -> reviewed -> approved -> paid. Both can be reset from the terminal
// state back to draft by a super approver through the reversal engine.
type DocumentState string

const (
	StateDraft    DocumentState = "DRAFT"
	StateReviewed DocumentState = "REVIEWED"
	StateApproved DocumentState = "APPROVED"
	StatePosted   DocumentState = "POSTED"
	StatePaid     DocumentState = "PAID"
)

// CounterpartyMode selects where the money comes from / goes to.
type CounterpartyMode string

const (
	// CounterpartyAccount books directly against a chosen ledger account.
	CounterpartyAccount CounterpartyMode = "ACCOUNT"
	// CounterpartyPartner books against a partner's receivable/payable account.
	CounterpartyPartner CounterpartyMode = "PARTNER"
)

var (
	ErrAmountNotPositive          = errors.New("amount must be greater than zero")
	ErrAllocationMismatch         = errors.New("total allocated must equal the document amount")
	ErrMultiAccountExclusive      = errors.New("multi-account mode requires direct-account mode without partner, manual amount or loaded allocations")
	ErrManualAmountInMultiAccount = errors.New("manual amount must be zero while multi-account mode is active")
)

// AllocationLine binds one open invoice/bill to an amount to collect or pay.
// InvoiceNumber and InvoiceResidual are read-only snapshots of the target
// taken when the line was loaded or last refreshed.
type AllocationLine struct {
	LineID          string          `json:"lineID"` // Primary Key (UUID)
	DocumentID      string          `json:"documentID"`
	InvoiceID       string          `json:"invoiceID"`
	Selected        bool            `json:"selected"`
	Amount          decimal.Decimal `json:"amount"` // Amount to settle against the invoice
	InvoiceNumber   string          `json:"invoiceNumber"`
	InvoiceResidual decimal.Decimal `json:"invoiceResidual"`
}

// Counts reports whether the line contributes to the allocated total.
func (l AllocationLine) Counts() bool {
	return l.Selected && l.Amount.IsPositive()
}

// Clamp enforces the line invariants in place: the amount is zeroed when the
// line is not selected and capped at the invoice residual otherwise. It
// returns a user-facing warning when a correction was applied, so callers
// surface the change instead of truncating silently.
func (l *AllocationLine) Clamp() (warning string) {
	if !l.Selected && !l.Amount.IsZero() {
		l.Amount = decimal.Zero
		return fmt.Sprintf("invoice %s must be selected before entering an amount", l.InvoiceNumber)
	}
	if l.Amount.GreaterThan(l.InvoiceResidual) {
		l.Amount = l.InvoiceResidual
		return fmt.Sprintf("amount for invoice %s cannot exceed its residual; reduced to %s", l.InvoiceNumber, l.InvoiceResidual.String())
	}
	return ""
}

// MultiAccountLine binds a target ledger account and a fixed amount for split
// disbursements. Lines never carry a partner.
type MultiAccountLine struct {
	LineID     string          `json:"lineID"` // Primary Key (UUID)
	DocumentID string          `json:"documentID"`
	AccountID  string          `json:"accountID"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

// CashDocument is a treasury document tracked through the approval/posting
// workflow: an inbound receipt or an outbound disbursement.
type CashDocument struct {
	DocumentID string           `json:"documentID"` // Primary Key (UUID)
	CompanyID  string           `json:"companyID"`
	Direction  PaymentDirection `json:"direction"`
	// Number is assigned from the journal sequence at posting time and
	// cleared again if a super approver reverts the document to draft.
	Number *string       `json:"number,omitempty"`
	State  DocumentState `json:"state"`

	CounterpartyMode CounterpartyMode `json:"counterpartyMode"`
	PartnerID        *string          `json:"partnerID,omitempty"`
	AccountID        *string          `json:"accountID,omitempty"`
	// MultiAccount enables split disbursement across MultiAccountLines
	// (outbound only).
	MultiAccount bool `json:"multiAccount"`

	// AmountManual is the manually entered amount; it is authoritative only
	// when no allocation or multi-account source applies.
	AmountManual decimal.Decimal `json:"amountManual"`

	DocumentDate time.Time `json:"documentDate"`
	// SettlementDate is the actual collection (inbound) or payment
	// (outbound) date. Cleared on approval, recorded by the entry role, and
	// required before posting.
	SettlementDate *time.Time `json:"settlementDate,omitempty"`

	JournalID       string `json:"journalID"`
	PaymentMethodID string `json:"paymentMethodID"`
	CurrencyCode    string `json:"currencyCode"` // Derived from the company
	Notes           string `json:"notes"`

	AllocationsLoaded bool               `json:"allocationsLoaded"`
	AllocationLines   []AllocationLine   `json:"allocationLines,omitempty"`
	MultiAccountLines []MultiAccountLine `json:"multiAccountLines,omitempty"`

	PostedEntryID   *string `json:"postedEntryID,omitempty"`
	ReversalEntryID *string `json:"reversalEntryID,omitempty"`
	AuditFields
}

// TerminalState returns the direction's fully-posted state.
func (d *CashDocument) TerminalState() DocumentState {
	if d.Direction == Outbound {
		return StatePaid
	}
	return StatePosted
}

// AmountSource is the single authoritative origin of the document amount.
// Exactly one variant applies at any time, selected by the document's mode
// flags: multi-account sum over partner-allocation sum over manual entry.
type AmountSource interface {
	isAmountSource()
}

// ManualAmount is the user-entered amount.
type ManualAmount struct {
	Value decimal.Decimal
}

// PartnerAllocation derives the amount from the selected allocation lines.
type PartnerAllocation struct {
	Lines []AllocationLine
}

// MultiAccountSplit derives the amount from the multi-account lines.
type MultiAccountSplit struct {
	Lines []MultiAccountLine
}

func (ManualAmount) isAmountSource()      {}
func (PartnerAllocation) isAmountSource() {}
func (MultiAccountSplit) isAmountSource() {}

// AmountSource returns the variant currently authoritative for this document.
func (d *CashDocument) AmountSource() AmountSource {
	switch {
	case d.MultiAccount:
		return MultiAccountSplit{Lines: d.MultiAccountLines}
	case d.AllocationsLoaded && d.CounterpartyMode == CounterpartyPartner:
		return PartnerAllocation{Lines: d.AllocationLines}
	default:
		return ManualAmount{Value: d.AmountManual}
	}
}

// ResolveAmount computes the authoritative amount for a source.
func ResolveAmount(source AmountSource) decimal.Decimal {
	switch s := source.(type) {
	case MultiAccountSplit:
		total := decimal.Zero
		for _, l := range s.Lines {
			total = total.Add(l.Amount)
		}
		return total
	case PartnerAllocation:
		total := decimal.Zero
		for _, l := range s.Lines {
			if l.Counts() {
				total = total.Add(l.Amount)
			}
		}
		return total
	case ManualAmount:
		return s.Value
	default:
		return decimal.Zero
	}
}

// Amount returns the document's authoritative amount.
func (d *CashDocument) Amount() decimal.Decimal {
	return ResolveAmount(d.AmountSource())
}

// SetAmount writes the amount field. The write lands in the manual amount
// unless multi-account mode is active, in which case it is rejected: the
// multi-account sum is authoritative and the manual amount must stay zero.
func (d *CashDocument) SetAmount(value decimal.Decimal) error {
	if d.MultiAccount {
		return ErrManualAmountInMultiAccount
	}
	d.AmountManual = value
	return nil
}

// LeaveMultiAccount switches multi-account mode off, mirroring the last
// derived total back into the manual amount so it becomes the new default.
func (d *CashDocument) LeaveMultiAccount() {
	if !d.MultiAccount {
		return
	}
	d.AmountManual = d.Amount()
	d.MultiAccount = false
	d.MultiAccountLines = nil
}

// AllocatedTotal sums the counting allocation lines.
func (d *CashDocument) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.AllocationLines {
		if l.Counts() {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// DestinationAccountID computes the non-journal side of the entry: the direct
// account in account mode, or the partner's receivable (inbound) / payable
// (outbound) account in partner mode. In multi-account mode each line carries
// its own destination and this returns an error.
func (d *CashDocument) DestinationAccountID(partner *Partner) (string, error) {
	if d.MultiAccount {
		return "", errors.New("multi-account documents have per-line destination accounts")
	}
	if d.CounterpartyMode == CounterpartyAccount {
		if d.AccountID == nil || *d.AccountID == "" {
			return "", errors.New("missing destination account")
		}
		return *d.AccountID, nil
	}
	if partner == nil {
		return "", errors.New("missing partner")
	}
	if d.Direction == Inbound {
		if partner.ReceivableAccountID == "" {
			return "", fmt.Errorf("partner %s has no receivable account", partner.Name)
		}
		return partner.ReceivableAccountID, nil
	}
	if partner.PayableAccountID == "" {
		return "", fmt.Errorf("partner %s has no payable account", partner.Name)
	}
	return partner.PayableAccountID, nil
}

// Validate enforces the standing document invariants for the given currency.
// It is checked on every save and again as a pre-posting guard.
func (d *CashDocument) Validate(currency Currency) error {
	if d.MultiAccount {
		if d.Direction != Outbound {
			return fmt.Errorf("%w: multi-account mode applies to outbound documents only", ErrMultiAccountExclusive)
		}
		if d.CounterpartyMode != CounterpartyAccount || d.PartnerID != nil || d.AllocationsLoaded {
			return ErrMultiAccountExclusive
		}
		if !d.AmountManual.IsZero() {
			return ErrManualAmountInMultiAccount
		}
		for _, l := range d.MultiAccountLines {
			if l.AccountID == "" {
				return fmt.Errorf("multi-account line is missing an account")
			}
			if !l.Amount.IsPositive() {
				return fmt.Errorf("multi-account line amount must be greater than zero")
			}
		}
	}

	if d.State == StateDraft {
		// Draft may hold a zero amount while fields are being composed.
		return nil
	}

	if !d.Amount().IsPositive() {
		return ErrAmountNotPositive
	}

	if d.AllocationsLoaded {
		if !currency.AmountsEqual(d.AllocatedTotal(), d.Amount()) {
			return ErrAllocationMismatch
		}
	}
	return nil
}
