package models

import (
	"database/sql"
	"time"
)

// User represents a user row.
type User struct {
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	PasswordHash   string         `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
	LastLoginAt            sql.NullTime   `db:"last_login_at"`
}

// JournalGrant represents a user's access grant to a journal.
type JournalGrant struct {
	UserID    string    `db:"user_id"`
	JournalID string    `db:"journal_id"`
	GrantedAt time.Time `db:"granted_at"`
	GrantedBy string    `db:"granted_by"`
}
