package domain

import "time"

// AuthProvider identifies the authentication provider for a user
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an authenticated user of the treasury backend.
type User struct {
	UserID string `json:"userID"` // Primary Key (UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`

	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"providerUserID,omitempty"`
	// PasswordHash is empty for users created through an external provider.
	PasswordHash string `json:"-"`

	RefreshTokenHash   *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// GoogleUserInfo holds the profile fields returned by Google's userinfo
// endpoint during the OAuth login flow.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// JournalGrant allows a user to create and process documents in a journal.
// The set of grants is the sole source of journal visibility for non-admins.
type JournalGrant struct {
	UserID    string    `json:"userID"`
	JournalID string    `json:"journalID"`
	GrantedAt time.Time `json:"grantedAt"`
	GrantedBy string    `json:"grantedBy"`
}
