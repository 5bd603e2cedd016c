package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// SequenceRepository hands out document numbers from per-journal counters.
type SequenceRepository interface {
	// NextSequenceValueInTx returns the next value of the (journal,
	// direction) counter and advances it, locking the counter row for the
	// duration of the caller's transaction so concurrent postings in the
	// same journal receive distinct values.
	NextSequenceValueInTx(ctx context.Context, tx pgx.Tx, journalID string, direction domain.PaymentDirection) (int64, error)
}
