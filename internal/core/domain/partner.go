package domain

// Partner is a counterparty (customer and/or vendor). The receivable and
// payable accounts are where its invoice and bill balances live, and are
// therefore the destination accounts for partner-mode documents.
type Partner struct {
	PartnerID            string `json:"partnerID"` // Primary Key (UUID)
	CompanyID            string `json:"companyID"`
	Name                 string `json:"name"`
	ReceivableAccountID  string `json:"receivableAccountID"`
	PayableAccountID     string `json:"payableAccountID"`
	IsActive             bool   `json:"isActive"`
	AuditFields
}
