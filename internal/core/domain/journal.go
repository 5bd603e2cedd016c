package domain

// JournalKind distinguishes physical cash boxes from bank accounts.
type JournalKind string

const (
	JournalCash JournalKind = "CASH"
	JournalBank JournalKind = "BANK"
)

// CashJournal is a cash or bank journal documents are booked against. Its
// default account is the cash/bank side of every entry posted through it.
type CashJournal struct {
	JournalID        string      `json:"journalID"` // Primary Key (UUID)
	CompanyID        string      `json:"companyID"`
	Code             string      `json:"code"` // Short code used in document numbers, e.g. "CSH1"
	Name             string      `json:"name"`
	Kind             JournalKind `json:"kind"`
	DefaultAccountID string      `json:"defaultAccountID"` // Cash/bank account, required for posting
	IsActive         bool        `json:"isActive"`
	AuditFields
}

// PaymentDirection classifies payment methods and documents.
type PaymentDirection string

const (
	Inbound  PaymentDirection = "INBOUND"
	Outbound PaymentDirection = "OUTBOUND"
)

// PaymentMethod is a way money moves (cash, cheque, transfer), scoped to one direction.
type PaymentMethod struct {
	PaymentMethodID string           `json:"paymentMethodID"` // Primary Key (UUID)
	Name            string           `json:"name"`
	Direction       PaymentDirection `json:"direction"`
	AuditFields
}
