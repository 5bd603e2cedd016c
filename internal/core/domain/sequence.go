package domain

import (
	"fmt"
	"time"
)

// SequenceCounter is a per-journal, per-direction document numbering counter.
// NextValue is the next number to hand out; reads for assignment must lock
// the row so concurrent postings in the same journal never collide.
type SequenceCounter struct {
	JournalID string           `json:"journalID"`
	Direction PaymentDirection `json:"direction"`
	NextValue int64            `json:"nextValue"`
}

// FormatDocumentNumber renders a document number for a journal sequence,
// anchored on the settlement date: <code>/IN/2025-07/0042 for inbound,
// <code>/OUT/... for outbound.
func FormatDocumentNumber(journalCode string, direction PaymentDirection, anchor time.Time, value int64) string {
	tag := "IN"
	if direction == Outbound {
		tag = "OUT"
	}
	return fmt.Sprintf("%s/%s/%04d-%02d/%04d", journalCode, tag, anchor.Year(), anchor.Month(), value)
}
