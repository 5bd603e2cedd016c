package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	"github.com/atosolution/cash_treasury_backend/internal/models"
	"github.com/atosolution/cash_treasury_backend/internal/utils/mapping"
)

const invoiceColumns = `invoice_id, company_id, number, direction, partner_id, invoice_date, currency_code, amount_total, amount_residual, status, ledger_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.Number,
		&m.Direction,
		&m.PartnerID,
		&m.InvoiceDate,
		&m.CurrencyCode,
		&m.AmountTotal,
		&m.AmountResidual,
		&m.Status,
		&m.LedgerEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoiceInTx inserts a new invoice within the caller's transaction so
// the invoice commits or rolls back together with its ledger entry.
func (r *PgxInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID, m.CompanyID, m.Number, m.Direction, m.PartnerID, m.InvoiceDate,
		m.CurrencyCode, m.AmountTotal, m.AmountResidual, m.Status, m.LedgerEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves an invoice by its unique identifier.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// FindInvoicesByIDs retrieves multiple invoices keyed by ID.
func (r *PgxInvoiceRepository) FindInvoicesByIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Invoice, error) {
	if len(invoiceIDs) == 0 {
		return map[string]domain.Invoice{}, nil
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Invoice, len(invoiceIDs))
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		result[m.InvoiceID] = mapping.ToDomainInvoice(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return result, nil
}

// ListOpenInvoices retrieves the posted invoices of a partner in the given
// direction that still carry a residual, oldest first.
func (r *PgxInvoiceRepository) ListOpenInvoices(ctx context.Context, companyID string, partnerID string, direction domain.InvoiceDirection) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE company_id = $1 AND partner_id = $2 AND direction = $3
			AND status = 'POSTED' AND amount_residual > 0
		ORDER BY invoice_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, partnerID, string(direction))
	if err != nil {
		return nil, fmt.Errorf("failed to query open invoices for partner %s: %w", partnerID, err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoices: %w", err)
	}
	return invoices, nil
}

// ApplyResidualDeltaInTx adjusts an invoice's residual within the caller's
// transaction. The WHERE clause keeps the residual inside [0, amount_total];
// an adjustment that would leave the range affects no rows and fails.
func (r *PgxInvoiceRepository) ApplyResidualDeltaInTx(ctx context.Context, tx pgx.Tx, invoiceID string, delta decimal.Decimal) error {
	query := `
		UPDATE invoices
		SET amount_residual = amount_residual + $2, last_updated_at = NOW()
		WHERE invoice_id = $1
			AND amount_residual + $2 >= 0
			AND amount_residual + $2 <= amount_total;
	`
	tag, err := tx.Exec(ctx, query, invoiceID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust residual of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, fmt.Sprintf("residual adjustment of %s rejected for invoice %s", delta, invoiceID), apperrors.ErrConflict)
	}
	return nil
}
