package mapping

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		CompanyID:   d.CompanyID,
		JournalID:   d.JournalID,
		EntryDate:   d.EntryDate,
		Reference:   d.Reference,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		CompanyID:   m.CompanyID,
		JournalID:   m.JournalID,
		EntryDate:   m.EntryDate,
		Reference:   m.Reference,
		Status:      domain.LedgerEntryStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:           d.LineID,
		EntryID:          d.EntryID,
		AccountID:        d.AccountID,
		PartnerID:        PtrToNullString(d.PartnerID),
		Label:            d.Label,
		Debit:            d.Debit,
		Credit:           d.Credit,
		CurrencyCode:     d.CurrencyCode,
		Reconciled:       d.Reconciled,
		ReconcileGroupID: PtrToNullString(d.ReconcileGroupID),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:           m.LineID,
		EntryID:          m.EntryID,
		AccountID:        m.AccountID,
		PartnerID:        NullStringToPtr(m.PartnerID),
		Label:            m.Label,
		Debit:            m.Debit,
		Credit:           m.Credit,
		CurrencyCode:     m.CurrencyCode,
		Reconciled:       m.Reconciled,
		ReconcileGroupID: NullStringToPtr(m.ReconcileGroupID),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerLineSlice converts model LedgerLines to domain LedgerLines
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}

// ToModelReconcileGroup converts a domain ReconcileGroup to a model ReconcileGroup
func ToModelReconcileGroup(d domain.ReconcileGroup) models.ReconcileGroup {
	return models.ReconcileGroup{
		GroupID:   d.GroupID,
		InvoiceID: PtrToNullString(d.InvoiceID),
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainReconcileGroup converts a model ReconcileGroup to a domain ReconcileGroup
func ToDomainReconcileGroup(m models.ReconcileGroup) domain.ReconcileGroup {
	return domain.ReconcileGroup{
		GroupID:   m.GroupID,
		InvoiceID: NullStringToPtr(m.InvoiceID),
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
