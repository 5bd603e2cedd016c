package dto

import (
	"time"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a new cash journal.
type CreateJournalRequest struct {
	Code             string             `json:"code" binding:"required,uppercase,max=8"`
	Name             string             `json:"name" binding:"required"`
	Kind             domain.JournalKind `json:"kind" binding:"required,oneof=CASH BANK"`
	DefaultAccountID string             `json:"defaultAccountID" binding:"required"`
}

// UpdateJournalRequest defines the data allowed for updating a journal.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateJournalRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// JournalResponse defines the data returned for a cash journal.
type JournalResponse struct {
	JournalID        string             `json:"journalID"`
	CompanyID        string             `json:"companyID"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	Kind             domain.JournalKind `json:"kind"`
	DefaultAccountID string             `json:"defaultAccountID"`
	IsActive         bool               `json:"isActive"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// GrantJournalRequest grants or revokes a user's access to a journal. The
// target user comes from the request path.
type GrantJournalRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	JournalID string `json:"journalID" binding:"required"`
}

// ListJournalGrantsParams defines query parameters for listing a user's
// journal grants.
type ListJournalGrantsParams struct {
	CompanyID string `form:"companyID" binding:"required"`
}

// JournalGrantsResponse lists the journals a user may work in. Unrestricted
// is true for company admins, whose access is not grant-based.
type JournalGrantsResponse struct {
	JournalIDs   []string `json:"journalIDs"`
	Unrestricted bool     `json:"unrestricted"`
}

// ToJournalResponse converts a domain.CashJournal to JournalResponse DTO.
func ToJournalResponse(j *domain.CashJournal) JournalResponse {
	return JournalResponse{
		JournalID:        j.JournalID,
		CompanyID:        j.CompanyID,
		Code:             j.Code,
		Name:             j.Name,
		Kind:             j.Kind,
		DefaultAccountID: j.DefaultAccountID,
		IsActive:         j.IsActive,
		CreatedAt:        j.CreatedAt,
	}
}

// ToListJournalsResponse converts journals to their response DTOs.
func ToListJournalsResponse(journals []domain.CashJournal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i, j := range journals {
		responses[i] = ToJournalResponse(&j)
	}
	return responses
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	PaymentMethodID string                  `json:"paymentMethodID"`
	Name            string                  `json:"name"`
	Direction       domain.PaymentDirection `json:"direction"`
}

// ToPaymentMethodResponses converts payment methods to their response DTOs.
func ToPaymentMethodResponses(methods []domain.PaymentMethod) []PaymentMethodResponse {
	responses := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		responses[i] = PaymentMethodResponse{
			PaymentMethodID: m.PaymentMethodID,
			Name:            m.Name,
			Direction:       m.Direction,
		}
	}
	return responses
}
