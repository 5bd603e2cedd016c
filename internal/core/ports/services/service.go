package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User      UserSvcFacade
	Company   CompanySvcFacade
	Currency  CurrencySvcFacade
	Account   AccountSvcFacade
	Partner   PartnerSvcFacade
	Invoice   InvoiceSvcFacade
	Journal   JournalSvcFacade
	CashIn    CashDocumentSvcFacade
	CashOut   CashDocumentSvcFacade
	Ledger    LedgerReaderSvc
	Reporting ReportingService

	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
