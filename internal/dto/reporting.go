package dto

import (
	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// CashBookParams defines query parameters for the cash book report.
type CashBookParams struct {
	JournalID *string `form:"journalID"`
	FromDate  *string `form:"fromDate"` // YYYY-MM-DD
	ToDate    *string `form:"toDate"`   // YYYY-MM-DD
}

// TransactionAnalysisParams defines query parameters for the analysis report.
type TransactionAnalysisParams struct {
	JournalID *string `form:"journalID"`
	Direction *string `form:"direction"` // INBOUND or OUTBOUND
	FromDate  *string `form:"fromDate"`  // YYYY-MM-DD
	ToDate    *string `form:"toDate"`    // YYYY-MM-DD
}

// CashBookResponse wraps the cash book rows with totals.
type CashBookResponse struct {
	Rows        []domain.CashBookRow `json:"rows"`
	TotalDebit  decimal.Decimal      `json:"totalDebit"`
	TotalCredit decimal.Decimal      `json:"totalCredit"`
}

// TransactionAnalysisResponse wraps the analysis rows.
type TransactionAnalysisResponse struct {
	Rows []domain.TransactionAnalysisRow `json:"rows"`
}

// ToCashBookResponse converts cash book rows to the response DTO.
func ToCashBookResponse(rows []domain.CashBookRow) CashBookResponse {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, r := range rows {
		totalDebit = totalDebit.Add(r.Debit)
		totalCredit = totalCredit.Add(r.Credit)
	}
	if rows == nil {
		rows = []domain.CashBookRow{}
	}
	return CashBookResponse{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}
}
