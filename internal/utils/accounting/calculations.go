package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
)

// ValidateEntryLines checks that a set of new ledger lines forms a valid,
// balanced entry: at least two lines, every line single-sided with a positive
// amount, and total debits equal to total credits.
func ValidateEntryLines(lines []domain.NewLedgerLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d has a negative amount", i)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return fmt.Errorf("line %d carries both a debit and a credit", i)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return fmt.Errorf("line %d has no amount", i)
		}
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("entry does not balance: debits %s, credits %s", debits, credits)
	}
	return nil
}

// SignedBalance applies the accounting convention sign to a line's balance
// for an account type. A debit increases assets and expenses, a credit
// increases liabilities, equity and revenue.
func SignedBalance(line domain.LedgerLine, accountType domain.AccountType) (decimal.Decimal, error) {
	balance := line.Balance()
	switch accountType {
	case domain.Asset, domain.Expense:
		return balance, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return balance.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account ID %s", accountType, line.AccountID)
	}
}
