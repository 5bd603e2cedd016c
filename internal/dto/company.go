package dto

import (
	"time"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a new company.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
}

// UpdateCompanyRequest defines the data allowed for updating a company.
type UpdateCompanyRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// AddCompanyMemberRequest adds a user to a company with a treasury role.
type AddCompanyMemberRequest struct {
	UserID string              `json:"userID" binding:"required"`
	Role   domain.TreasuryRole `json:"role" binding:"required,oneof=ENTRY REVIEWER APPROVER SUPER_APPROVER ADMIN"`
}

// UpdateCompanyMemberRoleRequest changes a member's treasury role.
type UpdateCompanyMemberRoleRequest struct {
	Role domain.TreasuryRole `json:"role" binding:"required,oneof=ENTRY REVIEWER APPROVER SUPER_APPROVER ADMIN"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID    string    `json:"companyID"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CompanyMemberResponse defines the data returned for a company membership.
type CompanyMemberResponse struct {
	UserID   string              `json:"userID"`
	Role     domain.TreasuryRole `json:"role"`
	JoinedAt time.Time           `json:"joinedAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		CurrencyCode: c.CurrencyCode,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}

// ToListCompaniesResponse converts companies to their response DTOs.
func ToListCompaniesResponse(companies []domain.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		responses[i] = ToCompanyResponse(&c)
	}
	return responses
}

// ToCompanyMemberResponses converts memberships to their response DTOs.
func ToCompanyMemberResponses(members []domain.CompanyMembership) []CompanyMemberResponse {
	responses := make([]CompanyMemberResponse, len(members))
	for i, m := range members {
		responses[i] = CompanyMemberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return responses
}
