package mapping

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Name:                   d.Name,
		Email:                  d.Email,
		AuthProvider:           string(d.AuthProvider),
		ProviderUserID:         PtrToNullString(d.ProviderUserID),
		PasswordHash:           d.PasswordHash,
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       PtrToNullString(d.RefreshTokenHash),
		RefreshTokenExpiryTime: PtrToNullTime(d.RefreshTokenExpiry),
		LastLoginAt:            PtrToNullTime(d.LastLoginAt),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:             m.UserID,
		Name:               m.Name,
		Email:              m.Email,
		AuthProvider:       domain.AuthProvider(m.AuthProvider),
		ProviderUserID:     NullStringToPtr(m.ProviderUserID),
		PasswordHash:       m.PasswordHash,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		DeletedAt:          m.DeletedAt,
		RefreshTokenHash:   NullStringToPtr(m.RefreshTokenHash),
		RefreshTokenExpiry: NullTimeToPtr(m.RefreshTokenExpiryTime),
		LastLoginAt:        NullTimeToPtr(m.LastLoginAt),
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanyMembership converts a model CompanyMembership to its domain form
func ToDomainCompanyMembership(m models.CompanyMembership) domain.CompanyMembership {
	return domain.CompanyMembership{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      domain.TreasuryRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}

// ToModelCompanyMembership converts a domain CompanyMembership to its model form
func ToModelCompanyMembership(d domain.CompanyMembership) models.CompanyMembership {
	return models.CompanyMembership{
		UserID:    d.UserID,
		CompanyID: d.CompanyID,
		Role:      string(d.Role),
		JoinedAt:  d.JoinedAt,
	}
}
