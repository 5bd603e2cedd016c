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
	"github.com/atosolution/cash_treasury_backend/internal/models"
	"github.com/atosolution/cash_treasury_backend/internal/utils/mapping"
)

const ledgerLineColumns = `line_id, entry_id, account_id, partner_id, label, debit, credit, currency_code, reconciled, reconcile_group_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func scanLedgerLine(row pgx.Row) (models.LedgerLine, error) {
	var m models.LedgerLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.PartnerID,
		&m.Label,
		&m.Debit,
		&m.Credit,
		&m.CurrencyCode,
		&m.Reconciled,
		&m.ReconcileGroupID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectLedgerLines(rows pgx.Rows) ([]domain.LedgerLine, error) {
	defer rows.Close()
	var lines []models.LedgerLine
	for rows.Next() {
		m, err := scanLedgerLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger lines: %w", err)
	}
	return mapping.ToDomainLedgerLineSlice(lines), nil
}

// FindEntryByID retrieves a ledger entry with its lines.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, company_id, journal_id, entry_date, reference, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE entry_id = $1;
	`
	var m models.LedgerEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID, &m.CompanyID, &m.JournalID, &m.EntryDate, &m.Reference, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainLedgerEntry(m)

	rows, err := r.Pool.Query(ctx, `
		SELECT `+ledgerLineColumns+`
		FROM ledger_lines
		WHERE entry_id = $1
		ORDER BY debit DESC, line_id;
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of entry %s: %w", entryID, err)
	}
	entry.Lines, err = collectLedgerLines(rows)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindLinesByReconcileGroup retrieves all lines tied to a reconcile group.
func (r *PgxLedgerRepository) FindLinesByReconcileGroup(ctx context.Context, groupID string) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+ledgerLineColumns+`
		FROM ledger_lines
		WHERE reconcile_group_id = $1
		ORDER BY created_at, line_id;
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of reconcile group %s: %w", groupID, err)
	}
	return collectLedgerLines(rows)
}

// FindReconcileGroupsByEntry retrieves the reconcile groups any of the entry's
// lines participate in.
func (r *PgxLedgerRepository) FindReconcileGroupsByEntry(ctx context.Context, entryID string) ([]domain.ReconcileGroup, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT g.group_id, g.invoice_id, g.amount, g.created_at, g.created_by
		FROM reconcile_groups g
		JOIN ledger_lines l ON l.reconcile_group_id = g.group_id
		WHERE l.entry_id = $1
		ORDER BY g.created_at, g.group_id;
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconcile groups of entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var groups []domain.ReconcileGroup
	for rows.Next() {
		var m models.ReconcileGroup
		if err := rows.Scan(&m.GroupID, &m.InvoiceID, &m.Amount, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan reconcile group: %w", err)
		}
		groups = append(groups, mapping.ToDomainReconcileGroup(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reconcile groups: %w", err)
	}
	return groups, nil
}

// SaveEntryInTx persists a ledger entry and its lines within the caller's
// transaction.
func (r *PgxLedgerRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := tx.Exec(ctx, `
		INSERT INTO ledger_entries (entry_id, company_id, journal_id, entry_date, reference, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, m.EntryID, m.CompanyID, m.JournalID, m.EntryDate, m.Reference, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (` + ledgerLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, line := range entry.Lines {
		lm := mapping.ToModelLedgerLine(line)
		batch.Queue(lineQuery,
			lm.LineID, lm.EntryID, lm.AccountID, lm.PartnerID, lm.Label,
			lm.Debit, lm.Credit, lm.CurrencyCode, lm.Reconciled, lm.ReconcileGroupID,
			lm.CreatedAt, lm.CreatedBy, lm.LastUpdatedAt, lm.LastUpdatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert ledger line for entry %s: %w", m.EntryID, err)
		}
	}
	return nil
}

// FindUnreconciledLinesForUpdate retrieves and row-locks the unreconciled
// lines on an account, oldest entry first.
func (r *PgxLedgerRepository) FindUnreconciledLinesForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountID string, partnerID *string) ([]domain.LedgerLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.partner_id, l.label, l.debit, l.credit,
			l.currency_code, l.reconciled, l.reconcile_group_id,
			l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM ledger_lines l
		JOIN ledger_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND l.account_id = $2 AND NOT l.reconciled
	`
	args := []interface{}{companyID, accountID}
	if partnerID != nil {
		args = append(args, *partnerID)
		query += fmt.Sprintf(" AND l.partner_id = $%d", len(args))
	}
	query += `
		ORDER BY e.entry_date, l.created_at, l.line_id
		FOR UPDATE OF l;
	`
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to lock unreconciled lines on account %s: %w", accountID, err)
	}
	return collectLedgerLines(rows)
}

// SaveReconcileGroupInTx persists a reconcile group and stamps the given lines
// as reconciled members of it.
func (r *PgxLedgerRepository) SaveReconcileGroupInTx(ctx context.Context, tx pgx.Tx, group domain.ReconcileGroup, lineIDs []string) error {
	m := mapping.ToModelReconcileGroup(group)
	_, err := tx.Exec(ctx, `
		INSERT INTO reconcile_groups (group_id, invoice_id, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5);
	`, m.GroupID, m.InvoiceID, m.Amount, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert reconcile group %s: %w", m.GroupID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE ledger_lines
		SET reconciled = TRUE, reconcile_group_id = $1
		WHERE line_id = ANY($2) AND NOT reconciled;
	`, m.GroupID, lineIDs)
	if err != nil {
		return fmt.Errorf("failed to stamp lines of reconcile group %s: %w", m.GroupID, err)
	}
	if int(tag.RowsAffected()) != len(lineIDs) {
		return apperrors.NewAppError(409, "some lines are already reconciled", apperrors.ErrConflict)
	}
	return nil
}

// DeleteReconcileGroupInTx clears the reconciled flag from the group's lines
// and removes the group. It returns the deleted group so callers can restore
// invoice residuals.
func (r *PgxLedgerRepository) DeleteReconcileGroupInTx(ctx context.Context, tx pgx.Tx, groupID string) (*domain.ReconcileGroup, error) {
	var m models.ReconcileGroup
	err := tx.QueryRow(ctx, `
		SELECT group_id, invoice_id, amount, created_at, created_by
		FROM reconcile_groups
		WHERE group_id = $1
		FOR UPDATE;
	`, groupID).Scan(&m.GroupID, &m.InvoiceID, &m.Amount, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock reconcile group %s: %w", groupID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE ledger_lines
		SET reconciled = FALSE, reconcile_group_id = NULL
		WHERE reconcile_group_id = $1;
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to unstamp lines of reconcile group %s: %w", groupID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reconcile_groups WHERE group_id = $1;`, groupID); err != nil {
		return nil, fmt.Errorf("failed to delete reconcile group %s: %w", groupID, err)
	}

	group := mapping.ToDomainReconcileGroup(m)
	return &group, nil
}
