package models

// CashJournal represents a cash/bank journal row.
type CashJournal struct {
	JournalID        string `db:"journal_id"`
	CompanyID        string `db:"company_id"`
	Code             string `db:"code"`
	Name             string `db:"name"`
	Kind             string `db:"kind"`
	DefaultAccountID string `db:"default_account_id"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}

// PaymentMethod represents a payment method row.
type PaymentMethod struct {
	PaymentMethodID string `db:"payment_method_id"`
	Name            string `db:"name"`
	Direction       string `db:"direction"`
	AuditFields
}

// SequenceCounter represents a per-journal document numbering counter row.
type SequenceCounter struct {
	JournalID string `db:"journal_id"`
	Direction string `db:"direction"`
	NextValue int64  `db:"next_value"`
}
