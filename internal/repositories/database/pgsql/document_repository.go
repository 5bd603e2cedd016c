package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	"github.com/atosolution/cash_treasury_backend/internal/models"
	"github.com/atosolution/cash_treasury_backend/internal/utils/mapping"
	"github.com/atosolution/cash_treasury_backend/internal/utils/pagination"
)

const documentColumns = `document_id, company_id, direction, number, state, counterparty_mode, partner_id, account_id, multi_account, amount_manual, document_date, settlement_date, journal_id, payment_method_id, currency_code, notes, allocations_loaded, posted_entry_id, reversal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for cash documents.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (models.CashDocument, error) {
	var m models.CashDocument
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.Direction,
		&m.Number,
		&m.State,
		&m.CounterpartyMode,
		&m.PartnerID,
		&m.AccountID,
		&m.MultiAccount,
		&m.AmountManual,
		&m.DocumentDate,
		&m.SettlementDate,
		&m.JournalID,
		&m.PaymentMethodID,
		&m.CurrencyCode,
		&m.Notes,
		&m.AllocationsLoaded,
		&m.PostedEntryID,
		&m.ReversalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDocument inserts a document and its lines atomically.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.CashDocument) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCashDocument(document)
	query := `
		INSERT INTO cash_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, query,
		m.DocumentID, m.CompanyID, m.Direction, m.Number, m.State, m.CounterpartyMode,
		m.PartnerID, m.AccountID, m.MultiAccount, m.AmountManual, m.DocumentDate,
		m.SettlementDate, m.JournalID, m.PaymentMethodID, m.CurrencyCode, m.Notes,
		m.AllocationsLoaded, m.PostedEntryID, m.ReversalEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", m.DocumentID, err)
	}

	if err := insertAllocationLines(ctx, tx, document.DocumentID, document.AllocationLines); err != nil {
		return err
	}
	if err := insertMultiAccountLines(ctx, tx, document.DocumentID, document.MultiAccountLines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateDocument updates a document's header fields.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, document domain.CashDocument) error {
	m := mapping.ToModelCashDocument(document)
	query := `
		UPDATE cash_documents
		SET state = $2, counterparty_mode = $3, partner_id = $4, account_id = $5,
			multi_account = $6, amount_manual = $7, document_date = $8, settlement_date = $9,
			journal_id = $10, payment_method_id = $11, notes = $12, allocations_loaded = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.State, m.CounterpartyMode, m.PartnerID, m.AccountID,
		m.MultiAccount, m.AmountManual, m.DocumentDate, m.SettlementDate,
		m.JournalID, m.PaymentMethodID, m.Notes, m.AllocationsLoaded,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertAllocationLines(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.AllocationLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO allocation_lines (line_id, document_id, invoice_id, selected, amount, invoice_number, invoice_residual)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		m := mapping.ToModelAllocationLine(line)
		batch.Queue(query, m.LineID, documentID, m.InvoiceID, m.Selected, m.Amount, m.InvoiceNumber, m.InvoiceResidual)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert allocation line for document %s: %w", documentID, err)
		}
	}
	return nil
}

func insertMultiAccountLines(ctx context.Context, tx pgx.Tx, documentID string, lines []domain.MultiAccountLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO multi_account_lines (line_id, document_id, account_id, amount, note)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, line := range lines {
		m := mapping.ToModelMultiAccountLine(line)
		batch.Queue(query, m.LineID, documentID, m.AccountID, m.Amount, m.Note)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert multi-account line for document %s: %w", documentID, err)
		}
	}
	return nil
}

// ReplaceAllocationLines atomically replaces a document's allocation lines.
func (r *PgxDocumentRepository) ReplaceAllocationLines(ctx context.Context, documentID string, lines []domain.AllocationLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM allocation_lines WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to clear allocation lines for document %s: %w", documentID, err)
	}
	if err := insertAllocationLines(ctx, tx, documentID, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceMultiAccountLines atomically replaces a document's multi-account lines.
func (r *PgxDocumentRepository) ReplaceMultiAccountLines(ctx context.Context, documentID string, lines []domain.MultiAccountLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM multi_account_lines WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to clear multi-account lines for document %s: %w", documentID, err)
	}
	if err := insertMultiAccountLines(ctx, tx, documentID, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateDocumentStateInTx updates the workflow state, settlement date and
// posting linkage of a document within the caller's transaction.
func (r *PgxDocumentRepository) UpdateDocumentStateInTx(ctx context.Context, tx pgx.Tx, documentID string, state domain.DocumentState, number *string, settlementDate *time.Time, postedEntryID *string, reversalEntryID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE cash_documents
		SET state = $2, number = $3, settlement_date = $4, posted_entry_id = $5,
			reversal_entry_id = $6, last_updated_at = $7, last_updated_by = $8
		WHERE document_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		documentID, string(state),
		mapping.PtrToNullString(number),
		mapping.PtrToNullTime(settlementDate),
		mapping.PtrToNullString(postedEntryID),
		mapping.PtrToNullString(reversalEntryID),
		updatedAt, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update state of document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocument removes a document and its lines.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM allocation_lines WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to delete allocation lines of document %s: %w", documentID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM multi_account_lines WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to delete multi-account lines of document %s: %w", documentID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM document_notes WHERE document_id = $1;`, documentID); err != nil {
		return fmt.Errorf("failed to delete notes of document %s: %w", documentID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM cash_documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

// FindDocumentByID retrieves a document with its lines loaded.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.CashDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM cash_documents WHERE document_id = $1 AND company_id = $2;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	doc := mapping.ToDomainCashDocument(m)

	allocationRows, err := r.Pool.Query(ctx, `
		SELECT line_id, document_id, invoice_id, selected, amount, invoice_number, invoice_residual
		FROM allocation_lines
		WHERE document_id = $1
		ORDER BY invoice_number;
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation lines of document %s: %w", documentID, err)
	}
	defer allocationRows.Close()
	for allocationRows.Next() {
		var lm models.AllocationLine
		if err := allocationRows.Scan(&lm.LineID, &lm.DocumentID, &lm.InvoiceID, &lm.Selected, &lm.Amount, &lm.InvoiceNumber, &lm.InvoiceResidual); err != nil {
			return nil, fmt.Errorf("failed to scan allocation line: %w", err)
		}
		doc.AllocationLines = append(doc.AllocationLines, mapping.ToDomainAllocationLine(lm))
	}
	if err := allocationRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read allocation lines: %w", err)
	}

	multiRows, err := r.Pool.Query(ctx, `
		SELECT line_id, document_id, account_id, amount, note
		FROM multi_account_lines
		WHERE document_id = $1
		ORDER BY line_id;
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query multi-account lines of document %s: %w", documentID, err)
	}
	defer multiRows.Close()
	for multiRows.Next() {
		var lm models.MultiAccountLine
		if err := multiRows.Scan(&lm.LineID, &lm.DocumentID, &lm.AccountID, &lm.Amount, &lm.Note); err != nil {
			return nil, fmt.Errorf("failed to scan multi-account line: %w", err)
		}
		doc.MultiAccountLines = append(doc.MultiAccountLines, mapping.ToDomainMultiAccountLine(lm))
	}
	if err := multiRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read multi-account lines: %w", err)
	}

	return &doc, nil
}

// ListDocuments retrieves a page of documents matching the filter using
// token-based pagination keyed on (document_date, created_at).
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentListFilter, limit int, nextToken *string) ([]domain.CashDocument, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + documentColumns + ` FROM cash_documents WHERE company_id = $1 AND direction = $2`
	args := []interface{}{filter.CompanyID, string(filter.Direction)}

	if filter.JournalIDs != nil {
		if len(filter.JournalIDs) == 0 {
			return []domain.CashDocument{}, nil, nil
		}
		args = append(args, filter.JournalIDs)
		query += fmt.Sprintf(" AND journal_id = ANY($%d)", len(args))
	}
	if filter.State != nil {
		args = append(args, string(*filter.State))
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if filter.PartnerID != nil {
		args = append(args, *filter.PartnerID)
		query += fmt.Sprintf(" AND partner_id = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND document_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND document_date <= $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		args = append(args, tokenDate)
		dateArg := len(args)
		args = append(args, tokenCreatedAt)
		createdArg := len(args)
		query += fmt.Sprintf(" AND (document_date, created_at) < ($%d, $%d)", dateArg, createdArg)
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY document_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []domain.CashDocument
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, mapping.ToDomainCashDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read documents: %w", err)
	}

	var token *string
	if len(documents) > limit {
		documents = documents[:limit]
		last := documents[len(documents)-1]
		t := pagination.EncodeToken(last.DocumentDate, last.CreatedAt)
		token = &t
	}
	return documents, token, nil
}

// SaveDocumentNote appends a history entry to a document.
func (r *PgxDocumentRepository) SaveDocumentNote(ctx context.Context, note domain.DocumentNote) error {
	query := `
		INSERT INTO document_notes (note_id, document_id, text, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, note.NoteID, note.DocumentID, note.Text, note.CreatedAt, note.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert note for document %s: %w", note.DocumentID, err)
	}
	return nil
}

// ListDocumentNotes retrieves a document's history entries, oldest first.
func (r *PgxDocumentRepository) ListDocumentNotes(ctx context.Context, documentID string) ([]domain.DocumentNote, error) {
	query := `
		SELECT note_id, document_id, text, created_at, created_by
		FROM document_notes
		WHERE document_id = $1
		ORDER BY created_at, note_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes of document %s: %w", documentID, err)
	}
	defer rows.Close()

	var notes []domain.DocumentNote
	for rows.Next() {
		var n domain.DocumentNote
		if err := rows.Scan(&n.NoteID, &n.DocumentID, &n.Text, &n.CreatedAt, &n.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan document note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read document notes: %w", err)
	}
	return notes, nil
}
