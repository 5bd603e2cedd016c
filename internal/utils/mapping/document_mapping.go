package mapping

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	"github.com/atosolution/cash_treasury_backend/internal/models"
)

// ToModelCashDocument converts a domain CashDocument to a model CashDocument
func ToModelCashDocument(d domain.CashDocument) models.CashDocument {
	return models.CashDocument{
		DocumentID:        d.DocumentID,
		CompanyID:         d.CompanyID,
		Direction:         string(d.Direction),
		Number:            PtrToNullString(d.Number),
		State:             string(d.State),
		CounterpartyMode:  string(d.CounterpartyMode),
		PartnerID:         PtrToNullString(d.PartnerID),
		AccountID:         PtrToNullString(d.AccountID),
		MultiAccount:      d.MultiAccount,
		AmountManual:      d.AmountManual,
		DocumentDate:      d.DocumentDate,
		SettlementDate:    PtrToNullTime(d.SettlementDate),
		JournalID:         d.JournalID,
		PaymentMethodID:   d.PaymentMethodID,
		CurrencyCode:      d.CurrencyCode,
		Notes:             d.Notes,
		AllocationsLoaded: d.AllocationsLoaded,
		PostedEntryID:     PtrToNullString(d.PostedEntryID),
		ReversalEntryID:   PtrToNullString(d.ReversalEntryID),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashDocument converts a model CashDocument to a domain CashDocument
func ToDomainCashDocument(m models.CashDocument) domain.CashDocument {
	return domain.CashDocument{
		DocumentID:        m.DocumentID,
		CompanyID:         m.CompanyID,
		Direction:         domain.PaymentDirection(m.Direction),
		Number:            NullStringToPtr(m.Number),
		State:             domain.DocumentState(m.State),
		CounterpartyMode:  domain.CounterpartyMode(m.CounterpartyMode),
		PartnerID:         NullStringToPtr(m.PartnerID),
		AccountID:         NullStringToPtr(m.AccountID),
		MultiAccount:      m.MultiAccount,
		AmountManual:      m.AmountManual,
		DocumentDate:      m.DocumentDate,
		SettlementDate:    NullTimeToPtr(m.SettlementDate),
		JournalID:         m.JournalID,
		PaymentMethodID:   m.PaymentMethodID,
		CurrencyCode:      m.CurrencyCode,
		Notes:             m.Notes,
		AllocationsLoaded: m.AllocationsLoaded,
		PostedEntryID:     NullStringToPtr(m.PostedEntryID),
		ReversalEntryID:   NullStringToPtr(m.ReversalEntryID),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocationLine converts a domain AllocationLine to a model AllocationLine
func ToModelAllocationLine(d domain.AllocationLine) models.AllocationLine {
	return models.AllocationLine{
		LineID:          d.LineID,
		DocumentID:      d.DocumentID,
		InvoiceID:       d.InvoiceID,
		Selected:        d.Selected,
		Amount:          d.Amount,
		InvoiceNumber:   d.InvoiceNumber,
		InvoiceResidual: d.InvoiceResidual,
	}
}

// ToDomainAllocationLine converts a model AllocationLine to a domain AllocationLine
func ToDomainAllocationLine(m models.AllocationLine) domain.AllocationLine {
	return domain.AllocationLine{
		LineID:          m.LineID,
		DocumentID:      m.DocumentID,
		InvoiceID:       m.InvoiceID,
		Selected:        m.Selected,
		Amount:          m.Amount,
		InvoiceNumber:   m.InvoiceNumber,
		InvoiceResidual: m.InvoiceResidual,
	}
}

// ToModelMultiAccountLine converts a domain MultiAccountLine to a model MultiAccountLine
func ToModelMultiAccountLine(d domain.MultiAccountLine) models.MultiAccountLine {
	return models.MultiAccountLine{
		LineID:     d.LineID,
		DocumentID: d.DocumentID,
		AccountID:  d.AccountID,
		Amount:     d.Amount,
		Note:       d.Note,
	}
}

// ToDomainMultiAccountLine converts a model MultiAccountLine to a domain MultiAccountLine
func ToDomainMultiAccountLine(m models.MultiAccountLine) domain.MultiAccountLine {
	return domain.MultiAccountLine{
		LineID:     m.LineID,
		DocumentID: m.DocumentID,
		AccountID:  m.AccountID,
		Amount:     m.Amount,
		Note:       m.Note,
	}
}
