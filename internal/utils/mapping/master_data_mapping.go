package mapping

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		CompanyID:    d.CompanyID,
		Code:         d.Code,
		Name:         d.Name,
		AccountType:  string(d.AccountType),
		CurrencyCode: d.CurrencyCode,
		CashBank:     d.CashBank,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		CompanyID:    m.CompanyID,
		Code:         m.Code,
		Name:         m.Name,
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		CashBank:     m.CashBank,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Symbol:        d.Symbol,
		Name:          d.Name,
		DecimalPlaces: d.DecimalPlaces,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Symbol:        m.Symbol,
		Name:          m.Name,
		DecimalPlaces: m.DecimalPlaces,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPartner converts a domain Partner to a model Partner
func ToModelPartner(d domain.Partner) models.Partner {
	return models.Partner{
		PartnerID:           d.PartnerID,
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		ReceivableAccountID: d.ReceivableAccountID,
		PayableAccountID:    d.PayableAccountID,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPartner converts a model Partner to a domain Partner
func ToDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:           m.PartnerID,
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		ReceivableAccountID: m.ReceivableAccountID,
		PayableAccountID:    m.PayableAccountID,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		CompanyID:      d.CompanyID,
		Number:         d.Number,
		Direction:      string(d.Direction),
		PartnerID:      d.PartnerID,
		InvoiceDate:    d.InvoiceDate,
		CurrencyCode:   d.CurrencyCode,
		AmountTotal:    d.AmountTotal,
		AmountResidual: d.AmountResidual,
		Status:         string(d.Status),
		LedgerEntryID:  d.LedgerEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		CompanyID:      m.CompanyID,
		Number:         m.Number,
		Direction:      domain.InvoiceDirection(m.Direction),
		PartnerID:      m.PartnerID,
		InvoiceDate:    m.InvoiceDate,
		CurrencyCode:   m.CurrencyCode,
		AmountTotal:    m.AmountTotal,
		AmountResidual: m.AmountResidual,
		Status:         domain.InvoiceStatus(m.Status),
		LedgerEntryID:  m.LedgerEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
