package models

// Partner represents a counterparty row.
type Partner struct {
	PartnerID           string `db:"partner_id"`
	CompanyID           string `db:"company_id"`
	Name                string `db:"name"`
	ReceivableAccountID string `db:"receivable_account_id"`
	PayableAccountID    string `db:"payable_account_id"`
	IsActive            bool   `db:"is_active"`
	AuditFields
}
