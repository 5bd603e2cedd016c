package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	"github.com/atosolution/cash_treasury_backend/internal/utils/mapping"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CashBookRows retrieves cash/bank account movements with a running balance
// per journal. The running balance is computed over the full history of each
// journal's liquidity account so a date-filtered page still carries the true
// balance.
func (r *PgxReportingRepository) CashBookRows(ctx context.Context, filter domain.CashBookFilter) ([]domain.CashBookRow, error) {
	query := `
		WITH movements AS (
			SELECT e.entry_id, l.line_id, j.journal_id, j.name AS journal_name,
				a.account_id, a.name AS account_name,
				e.entry_date, e.reference, l.label, p.name AS partner_name,
				l.debit, l.credit,
				SUM(l.debit - l.credit) OVER (
					PARTITION BY j.journal_id
					ORDER BY e.entry_date, l.created_at, l.line_id
				) AS running_balance
			FROM ledger_lines l
			JOIN ledger_entries e ON e.entry_id = l.entry_id
			JOIN cash_journals j ON j.journal_id = e.journal_id
			JOIN accounts a ON a.account_id = l.account_id
			LEFT JOIN partners p ON p.partner_id = l.partner_id
			WHERE e.company_id = $1
			  AND e.status = 'POSTED'
			  AND l.account_id = j.default_account_id
		)
		SELECT entry_id, line_id, journal_id, journal_name, account_id, account_name,
			entry_date, reference, label, partner_name, debit, credit, running_balance
		FROM movements
		WHERE 1 = 1
	`
	args := []interface{}{filter.CompanyID}
	if filter.JournalID != nil {
		args = append(args, *filter.JournalID)
		query += fmt.Sprintf(" AND journal_id = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY journal_id, entry_date, line_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash book: %w", err)
	}
	defer rows.Close()

	var result []domain.CashBookRow
	for rows.Next() {
		var row domain.CashBookRow
		var partnerName sql.NullString
		err := rows.Scan(
			&row.EntryID, &row.LineID, &row.JournalID, &row.JournalName,
			&row.AccountID, &row.AccountName, &row.EntryDate, &row.Reference,
			&row.Label, &partnerName, &row.Debit, &row.Credit, &row.RunningBalance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash book row: %w", err)
		}
		row.PartnerName = mapping.NullStringToPtr(partnerName)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cash book rows: %w", err)
	}
	return result, nil
}

// TransactionAnalysisRows retrieves per-month aggregates of posted treasury
// documents grouped by journal, direction, counterparty account and partner.
func (r *PgxReportingRepository) TransactionAnalysisRows(ctx context.Context, filter domain.TransactionAnalysisFilter) ([]domain.TransactionAnalysisRow, error) {
	query := `
		SELECT j.journal_id, j.name AS journal_name, d.direction,
			l.account_id, a.name AS account_name, p.name AS partner_name,
			to_char(e.entry_date, 'YYYY-MM') AS period,
			COUNT(DISTINCT d.document_id) AS document_count,
			SUM(l.debit + l.credit) AS total_amount
		FROM cash_documents d
		JOIN ledger_entries e ON e.entry_id = d.posted_entry_id
		JOIN cash_journals j ON j.journal_id = d.journal_id
		JOIN ledger_lines l ON l.entry_id = e.entry_id AND l.account_id <> j.default_account_id
		JOIN accounts a ON a.account_id = l.account_id
		LEFT JOIN partners p ON p.partner_id = d.partner_id
		WHERE d.company_id = $1 AND d.state IN ('POSTED', 'PAID')
	`
	args := []interface{}{filter.CompanyID}
	if filter.JournalID != nil {
		args = append(args, *filter.JournalID)
		query += fmt.Sprintf(" AND d.journal_id = $%d", len(args))
	}
	if filter.Direction != nil {
		args = append(args, string(*filter.Direction))
		query += fmt.Sprintf(" AND d.direction = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND e.entry_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND e.entry_date <= $%d", len(args))
	}
	query += `
		GROUP BY j.journal_id, j.name, d.direction, l.account_id, a.name, p.name, to_char(e.entry_date, 'YYYY-MM')
		ORDER BY period, j.name, d.direction, a.name;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction analysis: %w", err)
	}
	defer rows.Close()

	var result []domain.TransactionAnalysisRow
	for rows.Next() {
		var row domain.TransactionAnalysisRow
		var direction string
		var partnerName sql.NullString
		err := rows.Scan(
			&row.JournalID, &row.JournalName, &direction,
			&row.AccountID, &row.AccountName, &partnerName,
			&row.Period, &row.DocumentCount, &row.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction analysis row: %w", err)
		}
		row.Direction = domain.PaymentDirection(direction)
		row.PartnerName = mapping.NullStringToPtr(partnerName)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction analysis rows: %w", err)
	}
	return result, nil
}
