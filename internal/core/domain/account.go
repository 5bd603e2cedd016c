package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a general-ledger account.
type Account struct {
	AccountID    string      `json:"accountID"` // Primary Key (UUID)
	CompanyID    string      `json:"companyID"`
	Code         string      `json:"code"` // Chart-of-accounts code, e.g. "1010"
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	// CashBank marks accounts eligible as a journal default (cash box / bank).
	CashBank bool `json:"cashBank"`
	IsActive bool `json:"isActive"`
	AuditFields
}
