package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document numbering.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextSequenceValueInTx returns the next counter value and advances it.
// The row lock from FOR UPDATE holds until the caller's transaction ends, so
// two postings in the same journal cannot draw the same number.
func (r *PgxSequenceRepository) NextSequenceValueInTx(ctx context.Context, tx pgx.Tx, journalID string, direction domain.PaymentDirection) (int64, error) {
	var value int64
	err := tx.QueryRow(ctx, `
		SELECT next_value FROM sequence_counters
		WHERE journal_id = $1 AND direction = $2
		FOR UPDATE;
	`, journalID, string(direction)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock sequence counter for journal %s: %w", journalID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE sequence_counters SET next_value = next_value + 1
		WHERE journal_id = $1 AND direction = $2;
	`, journalID, string(direction))
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence counter for journal %s: %w", journalID, err)
	}

	return value, nil
}
