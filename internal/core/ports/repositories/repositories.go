package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	CurrencyRepo  CurrencyRepositoryFacade
	UserRepo      UserRepositoryFacade
	CompanyRepo   CompanyRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	PartnerRepo   PartnerRepositoryFacade
	InvoiceRepo   InvoiceRepositoryFacade
	DocumentRepo  DocumentRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	SequenceRepo  SequenceRepository
	ReportingRepo ReportingRepository
}
