package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CreateCashDocumentRequest defines the data needed to create a draft document.
// JournalID may be omitted when the user has exactly one granted journal.
type CreateCashDocumentRequest struct {
	JournalID        string                  `json:"journalID"`
	PaymentMethodID  string                  `json:"paymentMethodID" binding:"required"`
	CounterpartyMode domain.CounterpartyMode `json:"counterpartyMode" binding:"required,oneof=ACCOUNT PARTNER"`
	PartnerID        *string                 `json:"partnerID"`
	AccountID        *string                 `json:"accountID"`
	Amount           decimal.Decimal         `json:"amount"`
	DocumentDate     time.Time               `json:"documentDate" binding:"required"`
	Notes            string                  `json:"notes"`
}

// AllocationLineRequest is one allocation row in an update request.
type AllocationLineRequest struct {
	InvoiceID string          `json:"invoiceID" binding:"required"`
	Selected  bool            `json:"selected"`
	Amount    decimal.Decimal `json:"amount"`
}

// MultiAccountLineRequest is one split row in an update request.
type MultiAccountLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Note      string          `json:"note"`
}

// UpdateCashDocumentRequest defines the data allowed for updating a document.
// Using pointers to differentiate between omitted fields and zero-value
// fields; which fields are accepted depends on the document state and the
// caller's role.
type UpdateCashDocumentRequest struct {
	JournalID         *string                    `json:"journalID"`
	PaymentMethodID   *string                    `json:"paymentMethodID"`
	CounterpartyMode  *domain.CounterpartyMode   `json:"counterpartyMode"`
	PartnerID         *string                    `json:"partnerID"`
	AccountID         *string                    `json:"accountID"`
	MultiAccount      *bool                      `json:"multiAccount"`
	Amount            *decimal.Decimal           `json:"amount"`
	DocumentDate      *time.Time                 `json:"documentDate"`
	SettlementDate    *time.Time                 `json:"settlementDate"`
	Notes             *string                    `json:"notes"`
	AllocationLines   *[]AllocationLineRequest   `json:"allocationLines"`
	MultiAccountLines *[]MultiAccountLineRequest `json:"multiAccountLines"`
}

// RecordSettlementDateRequest sets the actual collection/payment date.
type RecordSettlementDateRequest struct {
	SettlementDate time.Time `json:"settlementDate" binding:"required"`
}

// ListCashDocumentsParams defines query parameters for listing documents.
type ListCashDocumentsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	State     *string `form:"state"`
	PartnerID *string `form:"partnerID"`
	JournalID *string `form:"journalID"`
	FromDate  *string `form:"fromDate"` // YYYY-MM-DD
	ToDate    *string `form:"toDate"`   // YYYY-MM-DD
}

// AllocationLineResponse defines the data returned for an allocation line.
type AllocationLineResponse struct {
	LineID          string          `json:"lineID"`
	InvoiceID       string          `json:"invoiceID"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	InvoiceResidual decimal.Decimal `json:"invoiceResidual"`
	Selected        bool            `json:"selected"`
	Amount          decimal.Decimal `json:"amount"`
}

// MultiAccountLineResponse defines the data returned for a split line.
type MultiAccountLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
}

// CashDocumentResponse defines the data returned for a cash document.
type CashDocumentResponse struct {
	DocumentID        string                     `json:"documentID"`
	CompanyID         string                     `json:"companyID"`
	Direction         domain.PaymentDirection    `json:"direction"`
	Number            *string                    `json:"number,omitempty"`
	State             domain.DocumentState       `json:"state"`
	CounterpartyMode  domain.CounterpartyMode    `json:"counterpartyMode"`
	PartnerID         *string                    `json:"partnerID,omitempty"`
	AccountID         *string                    `json:"accountID,omitempty"`
	MultiAccount      bool                       `json:"multiAccount"`
	Amount            decimal.Decimal            `json:"amount"`
	DocumentDate      time.Time                  `json:"documentDate"`
	SettlementDate    *time.Time                 `json:"settlementDate,omitempty"`
	JournalID         string                     `json:"journalID"`
	PaymentMethodID   string                     `json:"paymentMethodID"`
	CurrencyCode      string                     `json:"currencyCode"`
	Notes             string                     `json:"notes"`
	AllocationsLoaded bool                       `json:"allocationsLoaded"`
	AllocationLines   []AllocationLineResponse   `json:"allocationLines,omitempty"`
	MultiAccountLines []MultiAccountLineResponse `json:"multiAccountLines,omitempty"`
	PostedEntryID     *string                    `json:"postedEntryID,omitempty"`
	ReversalEntryID   *string                    `json:"reversalEntryID,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	CreatedBy         string                     `json:"createdBy"`
	LastUpdatedAt     time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy     string                     `json:"lastUpdatedBy"`
	Warnings          []string                   `json:"warnings,omitempty"`
}

// DocumentNoteResponse is one history entry of a document.
type DocumentNoteResponse struct {
	NoteID    string    `json:"noteID"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToDocumentNoteResponses converts history entries to their response DTOs.
func ToDocumentNoteResponses(notes []domain.DocumentNote) []DocumentNoteResponse {
	responses := make([]DocumentNoteResponse, len(notes))
	for i, n := range notes {
		responses[i] = DocumentNoteResponse{
			NoteID:    n.NoteID,
			Text:      n.Text,
			CreatedAt: n.CreatedAt,
			CreatedBy: n.CreatedBy,
		}
	}
	return responses
}

// ListCashDocumentsResponse wraps a page of documents.
type ListCashDocumentsResponse struct {
	Documents []CashDocumentResponse `json:"documents"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToCashDocumentResponse converts a domain.CashDocument to its response DTO.
func ToCashDocumentResponse(doc *domain.CashDocument) CashDocumentResponse {
	resp := CashDocumentResponse{
		DocumentID:        doc.DocumentID,
		CompanyID:         doc.CompanyID,
		Direction:         doc.Direction,
		Number:            doc.Number,
		State:             doc.State,
		CounterpartyMode:  doc.CounterpartyMode,
		PartnerID:         doc.PartnerID,
		AccountID:         doc.AccountID,
		MultiAccount:      doc.MultiAccount,
		Amount:            doc.Amount(),
		DocumentDate:      doc.DocumentDate,
		SettlementDate:    doc.SettlementDate,
		JournalID:         doc.JournalID,
		PaymentMethodID:   doc.PaymentMethodID,
		CurrencyCode:      doc.CurrencyCode,
		Notes:             doc.Notes,
		AllocationsLoaded: doc.AllocationsLoaded,
		PostedEntryID:     doc.PostedEntryID,
		ReversalEntryID:   doc.ReversalEntryID,
		CreatedAt:         doc.CreatedAt,
		CreatedBy:         doc.CreatedBy,
		LastUpdatedAt:     doc.LastUpdatedAt,
		LastUpdatedBy:     doc.LastUpdatedBy,
	}
	for _, l := range doc.AllocationLines {
		resp.AllocationLines = append(resp.AllocationLines, AllocationLineResponse{
			LineID:          l.LineID,
			InvoiceID:       l.InvoiceID,
			InvoiceNumber:   l.InvoiceNumber,
			InvoiceResidual: l.InvoiceResidual,
			Selected:        l.Selected,
			Amount:          l.Amount,
		})
	}
	for _, l := range doc.MultiAccountLines {
		resp.MultiAccountLines = append(resp.MultiAccountLines, MultiAccountLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Amount:    l.Amount,
			Note:      l.Note,
		})
	}
	return resp
}

// ToListCashDocumentsResponse converts a page of documents to its response DTO.
func ToListCashDocumentsResponse(docs []domain.CashDocument, nextToken *string) ListCashDocumentsResponse {
	responses := make([]CashDocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = ToCashDocumentResponse(&doc)
	}
	return ListCashDocumentsResponse{
		Documents: responses,
		NextToken: nextToken,
	}
}
