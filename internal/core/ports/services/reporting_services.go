package services

import (
	"context"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// ReportingService defines operations for generating treasury reports
type ReportingService interface {
	// CashBook generates the cash book: movements on cash/bank accounts with
	// a running balance, restricted to the user's granted journals.
	CashBook(ctx context.Context, filter domain.CashBookFilter, userID string) ([]domain.CashBookRow, error)

	// TransactionAnalysis generates per-period aggregates of posted treasury
	// documents, restricted to the user's granted journals.
	TransactionAnalysis(ctx context.Context, filter domain.TransactionAnalysisFilter, userID string) ([]domain.TransactionAnalysisRow, error)
}
