package mapping

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/models"
)

// ToModelCashJournal converts a domain CashJournal to a model CashJournal
func ToModelCashJournal(d domain.CashJournal) models.CashJournal {
	return models.CashJournal{
		JournalID:        d.JournalID,
		CompanyID:        d.CompanyID,
		Code:             d.Code,
		Name:             d.Name,
		Kind:             string(d.Kind),
		DefaultAccountID: d.DefaultAccountID,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashJournal converts a model CashJournal to a domain CashJournal
func ToDomainCashJournal(m models.CashJournal) domain.CashJournal {
	return domain.CashJournal{
		JournalID:        m.JournalID,
		CompanyID:        m.CompanyID,
		Code:             m.Code,
		Name:             m.Name,
		Kind:             domain.JournalKind(m.Kind),
		DefaultAccountID: m.DefaultAccountID,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentMethod converts a model PaymentMethod to a domain PaymentMethod
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		Name:            m.Name,
		Direction:       domain.PaymentDirection(m.Direction),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalGrant converts a model JournalGrant to a domain JournalGrant
func ToDomainJournalGrant(m models.JournalGrant) domain.JournalGrant {
	return domain.JournalGrant{
		UserID:    m.UserID,
		JournalID: m.JournalID,
		GrantedAt: m.GrantedAt,
		GrantedBy: m.GrantedBy,
	}
}

// ToModelJournalGrant converts a domain JournalGrant to a model JournalGrant
func ToModelJournalGrant(d domain.JournalGrant) models.JournalGrant {
	return models.JournalGrant{
		UserID:    d.UserID,
		JournalID: d.JournalID,
		GrantedAt: d.GrantedAt,
		GrantedBy: d.GrantedBy,
	}
}
