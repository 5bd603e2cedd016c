package services

import (
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since nearly everything authorizes through it.
	container.Company = NewCompanyService(repos.CompanyRepo, repos.CurrencyRepo)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo, container.Company)
	container.Partner = NewPartnerService(repos.PartnerRepo, repos.AccountRepo, container.Company)
	container.Invoice = NewInvoiceService(repos, container.Company)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.Company)
	container.Ledger = NewLedgerService(repos.LedgerRepo, container.Company)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Company, container.Journal)

	// One document service per payment direction; they share the engines and
	// differ only in workflow shape and invoice kind.
	container.CashIn = NewCashDocumentService(domain.Inbound, repos, container.Company, container.Journal)
	container.CashOut = NewCashDocumentService(domain.Outbound, repos, container.Company, container.Journal)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
