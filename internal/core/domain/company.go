package domain

import "time"

// Company is the owning scope for all treasury records. Documents, journals,
// accounts, partners and invoices all belong to exactly one company, and the
// company's currency is the currency of every document in it.
type Company struct {
	CompanyID    string `json:"companyID"` // Primary Key (UUID)
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// TreasuryRole defines the treasury workflow roles a user can hold in a company.
type TreasuryRole string

const (
	// RoleEntry may create and edit draft documents and record settlement dates.
	RoleEntry TreasuryRole = "ENTRY"
	// RoleReviewer may additionally move outbound documents from draft to reviewed.
	RoleReviewer TreasuryRole = "REVIEWER"
	// RoleApprover may approve documents and run posting.
	RoleApprover TreasuryRole = "APPROVER"
	// RoleSuperApprover is the only role allowed to cancel a posted/paid
	// document back to draft.
	RoleSuperApprover TreasuryRole = "SUPER_APPROVER"
	// RoleAdmin bypasses all treasury role checks.
	RoleAdmin TreasuryRole = "ADMIN"
)

// roleRank orders roles for authorization checks; a higher role implies every
// lower one.
var roleRank = map[TreasuryRole]int{
	RoleEntry:         1,
	RoleReviewer:      2,
	RoleApprover:      3,
	RoleSuperApprover: 4,
	RoleAdmin:         5,
}

// AtLeast reports whether the role grants at least the permissions of required.
func (r TreasuryRole) AtLeast(required TreasuryRole) bool {
	return roleRank[r] >= roleRank[required]
}

// CompanyMembership represents a user's treasury role within a company.
type CompanyMembership struct {
	UserID    string       `json:"userID"`
	CompanyID string       `json:"companyID"`
	Role      TreasuryRole `json:"role"`
	JoinedAt  time.Time    `json:"joinedAt"`
}
