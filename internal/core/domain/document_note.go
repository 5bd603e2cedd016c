package domain

import "time"

// DocumentNote is one free-text history entry on a cash document. Workflow
// actions append them automatically; they are never edited or deleted.
type DocumentNote struct {
	NoteID     string    `json:"noteID"` // Primary Key (UUID)
	DocumentID string    `json:"documentID"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}
