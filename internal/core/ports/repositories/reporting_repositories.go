package repositories

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// ReportingRepository defines read-only reporting queries over posted entries.
type ReportingRepository interface {
	// CashBookRows retrieves cash/bank account movements with a running
	// balance per journal, ordered by entry date and creation order.
	CashBookRows(ctx context.Context, filter domain.CashBookFilter) ([]domain.CashBookRow, error)

	// TransactionAnalysisRows retrieves per-period aggregates of posted
	// treasury documents.
	TransactionAnalysisRows(ctx context.Context, filter domain.TransactionAnalysisFilter) ([]domain.TransactionAnalysisRow, error)
}
