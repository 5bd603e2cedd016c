package dto

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CreatePartnerRequest defines the data needed to create a new partner.
type CreatePartnerRequest struct {
	Name                string `json:"name" binding:"required"`
	ReceivableAccountID string `json:"receivableAccountID" binding:"required"`
	PayableAccountID    string `json:"payableAccountID" binding:"required"`
}

// UpdatePartnerRequest defines the data allowed for updating a partner.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdatePartnerRequest struct {
	Name                *string `json:"name"`
	ReceivableAccountID *string `json:"receivableAccountID"`
	PayableAccountID    *string `json:"payableAccountID"`
	IsActive            *bool   `json:"isActive"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID           string `json:"partnerID"`
	CompanyID           string `json:"companyID"`
	Name                string `json:"name"`
	ReceivableAccountID string `json:"receivableAccountID"`
	PayableAccountID    string `json:"payableAccountID"`
	IsActive            bool   `json:"isActive"`
}

// ToPartnerResponse converts a domain.Partner to PartnerResponse DTO
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:           p.PartnerID,
		CompanyID:           p.CompanyID,
		Name:                p.Name,
		ReceivableAccountID: p.ReceivableAccountID,
		PayableAccountID:    p.PayableAccountID,
		IsActive:            p.IsActive,
	}
}

// ToListPartnersResponse converts partners to their response DTOs.
func ToListPartnersResponse(partners []domain.Partner) []PartnerResponse {
	responses := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		responses[i] = ToPartnerResponse(&p)
	}
	return responses
}
