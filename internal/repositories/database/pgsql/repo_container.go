package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgx-backed repositories and returns them
// bundled for the service container.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		CurrencyRepo:  newPgxCurrencyRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		CompanyRepo:   newPgxCompanyRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		PartnerRepo:   newPgxPartnerRepository(dbPool),
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		DocumentRepo:  newPgxDocumentRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		SequenceRepo:  newPgxSequenceRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
