package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CreateInvoiceRequest defines the data needed to register a posted invoice
// or vendor bill with an open balance.
type CreateInvoiceRequest struct {
	Number      string                  `json:"number" binding:"required"`
	Direction   domain.InvoiceDirection `json:"direction" binding:"required,oneof=CUSTOMER_INVOICE VENDOR_BILL"`
	PartnerID   string                  `json:"partnerID" binding:"required"`
	InvoiceDate time.Time               `json:"invoiceDate" binding:"required"`
	AmountTotal decimal.Decimal         `json:"amountTotal" binding:"required"`
	// CounterAccountID is the revenue/expense account of the invoice's own
	// posted entry; the receivable/payable side comes from the partner.
	CounterAccountID string `json:"counterAccountID" binding:"required"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                  `json:"invoiceID"`
	CompanyID      string                  `json:"companyID"`
	Number         string                  `json:"number"`
	Direction      domain.InvoiceDirection `json:"direction"`
	PartnerID      string                  `json:"partnerID"`
	InvoiceDate    time.Time               `json:"invoiceDate"`
	CurrencyCode   string                  `json:"currencyCode"`
	AmountTotal    decimal.Decimal         `json:"amountTotal"`
	AmountResidual decimal.Decimal         `json:"amountResidual"`
	Status         domain.InvoiceStatus    `json:"status"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		CompanyID:      inv.CompanyID,
		Number:         inv.Number,
		Direction:      inv.Direction,
		PartnerID:      inv.PartnerID,
		InvoiceDate:    inv.InvoiceDate,
		CurrencyCode:   inv.CurrencyCode,
		AmountTotal:    inv.AmountTotal,
		AmountResidual: inv.AmountResidual,
		Status:         inv.Status,
	}
}

// ToListInvoicesResponse converts invoices to their response DTOs.
func ToListInvoicesResponse(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(&inv)
	}
	return responses
}
