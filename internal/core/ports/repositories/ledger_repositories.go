package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries and lines
type LedgerReader interface {
	// FindEntryByID retrieves a ledger entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindLinesByReconcileGroup retrieves all lines tied to a reconcile group.
	FindLinesByReconcileGroup(ctx context.Context, groupID string) ([]domain.LedgerLine, error)

	// FindReconcileGroupsByEntry retrieves the reconcile groups any of the
	// entry's lines participate in.
	FindReconcileGroupsByEntry(ctx context.Context, entryID string) ([]domain.ReconcileGroup, error)
}

// LedgerWriter defines write operations for ledger entries and reconciliation.
// The InTx variants run inside a caller-owned transaction so posting and
// reversal stay atomic across repositories.
type LedgerWriter interface {
	// SaveEntryInTx persists a ledger entry and its lines.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error

	// FindUnreconciledLinesForUpdate retrieves and row-locks the
	// unreconciled lines on an account, optionally restricted to a partner,
	// oldest entry first. These are the candidates for amount matching.
	FindUnreconciledLinesForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountID string, partnerID *string) ([]domain.LedgerLine, error)

	// SaveReconcileGroupInTx persists a reconcile group and stamps the given
	// lines as reconciled members of it.
	SaveReconcileGroupInTx(ctx context.Context, tx pgx.Tx, group domain.ReconcileGroup, lineIDs []string) error

	// DeleteReconcileGroupInTx clears the reconciled flag from the group's
	// lines and removes the group. It returns the deleted group so callers
	// can restore invoice residuals.
	DeleteReconcileGroupInTx(ctx context.Context, tx pgx.Tx, groupID string) (*domain.ReconcileGroup, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
