package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDirection tells customer invoices (money owed to us) apart from
// vendor bills (money we owe).
type InvoiceDirection string

const (
	CustomerInvoice InvoiceDirection = "CUSTOMER_INVOICE"
	VendorBill      InvoiceDirection = "VENDOR_BILL"
)

// InvoiceStatus is the lifecycle state of an invoice in the general ledger.
type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "DRAFT"
	InvoicePosted InvoiceStatus = "POSTED"
)

// Invoice is a posted customer invoice or vendor bill with an open balance.
// Its ledger entry carries the receivable/payable line that treasury
// documents reconcile against; AmountResidual is the unsettled remainder,
// maintained by reconciliation.
type Invoice struct {
	InvoiceID      string           `json:"invoiceID"` // Primary Key (UUID)
	CompanyID      string           `json:"companyID"`
	Number         string           `json:"number"` // Human-readable invoice number
	Direction      InvoiceDirection `json:"direction"`
	PartnerID      string           `json:"partnerID"`
	InvoiceDate    time.Time        `json:"invoiceDate"`
	CurrencyCode   string           `json:"currencyCode"`
	AmountTotal    decimal.Decimal  `json:"amountTotal"`
	AmountResidual decimal.Decimal  `json:"amountResidual"`
	Status         InvoiceStatus    `json:"status"`
	// LedgerEntryID references the invoice's own posted entry; its line on
	// the partner's receivable/payable account is the reconciliation target.
	LedgerEntryID string `json:"ledgerEntryID"`
	AuditFields
}

// Open reports whether the invoice can still receive allocations.
func (i Invoice) Open() bool {
	return i.Status == InvoicePosted && i.AmountResidual.IsPositive()
}
