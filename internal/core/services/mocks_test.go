package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
)

// Shared mocks for the service tests. Repositories that support transactions
// return a nil pgx.Tx from Begin; the services only thread the value through,
// so nothing dereferences it.

// MockCompanyService is a mock type for the CompanySvcFacade interface
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListCompanyMembers(ctx context.Context, companyID string, requestingUserID string) ([]domain.CompanyMembership, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyMembership), args.Error(1)
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, name string, currencyCode string, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, name, currencyCode, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) UpdateCompany(ctx context.Context, companyID string, name string, isActive bool, requestingUserID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID, name, isActive, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) AddUserToCompany(ctx context.Context, requestingUserID string, targetUserID string, companyID string, role domain.TreasuryRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, companyID, role)
	return args.Error(0)
}

func (m *MockCompanyService) RemoveUserFromCompany(ctx context.Context, requestingUserID string, targetUserID string, companyID string) error {
	args := m.Called(ctx, requestingUserID, targetUserID, companyID)
	return args.Error(0)
}

func (m *MockCompanyService) UpdateUserRole(ctx context.Context, requestingUserID string, targetUserID string, companyID string, newRole domain.TreasuryRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, companyID, newRole)
	return args.Error(0)
}

func (m *MockCompanyService) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.TreasuryRole) (*domain.CompanyMembership, error) {
	args := m.Called(ctx, userID, companyID, requiredRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyMembership), args.Error(1)
}

// MockJournalAccess is a mock type for the JournalAccessSvc interface
type MockJournalAccess struct {
	mock.Mock
}

func (m *MockJournalAccess) AllowedJournals(ctx context.Context, userID string, companyID string) ([]string, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalAccess) GrantJournal(ctx context.Context, companyID string, targetUserID string, journalID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, targetUserID, journalID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalAccess) RevokeJournal(ctx context.Context, companyID string, targetUserID string, journalID string, requestingUserID string) error {
	args := m.Called(ctx, companyID, targetUserID, journalID, requestingUserID)
	return args.Error(0)
}

func (m *MockJournalAccess) OnJournalGrantsChanged(userID string) {
	m.Called(userID)
}

// MockDocumentRepository is a mock type for the DocumentRepositoryWithTx interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, companyID string, documentID string) (*domain.CashDocument, error) {
	args := m.Called(ctx, companyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashDocument), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, filter portsrepo.DocumentListFilter, limit int, nextToken *string) ([]domain.CashDocument, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var docs []domain.CashDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.CashDocument)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return docs, token, args.Error(2)
}

func (m *MockDocumentRepository) ListDocumentNotes(ctx context.Context, documentID string) ([]domain.DocumentNote, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentNote), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.CashDocument) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, document domain.CashDocument) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) ReplaceAllocationLines(ctx context.Context, documentID string, lines []domain.AllocationLine) error {
	args := m.Called(ctx, documentID, lines)
	return args.Error(0)
}

func (m *MockDocumentRepository) ReplaceMultiAccountLines(ctx context.Context, documentID string, lines []domain.MultiAccountLine) error {
	args := m.Called(ctx, documentID, lines)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStateInTx(ctx context.Context, tx pgx.Tx, documentID string, state domain.DocumentState, number *string, settlementDate *time.Time, postedEntryID *string, reversalEntryID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, documentID, state, number, settlementDate, postedEntryID, reversalEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveDocumentNote(ctx context.Context, note domain.DocumentNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockDocumentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDocumentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDocumentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByReconcileGroup(ctx context.Context, groupID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) FindReconcileGroupsByEntry(ctx context.Context, entryID string) ([]domain.ReconcileGroup, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconcileGroup), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindUnreconciledLinesForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountID string, partnerID *string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tx, companyID, accountID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) SaveReconcileGroupInTx(ctx context.Context, tx pgx.Tx, group domain.ReconcileGroup, lineIDs []string) error {
	args := m.Called(ctx, tx, group, lineIDs)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteReconcileGroupInTx(ctx context.Context, tx pgx.Tx, groupID string) (*domain.ReconcileGroup, error) {
	args := m.Called(ctx, tx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileGroup), args.Error(1)
}

// MockInvoiceRepository is a mock type for the InvoiceRepositoryWithTx interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoicesByIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Invoice, error) {
	args := m.Called(ctx, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListOpenInvoices(ctx context.Context, companyID string, partnerID string, direction domain.InvoiceDirection) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, partnerID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error {
	args := m.Called(ctx, tx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ApplyResidualDeltaInTx(ctx context.Context, tx pgx.Tx, invoiceID string, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, invoiceID, delta)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockInvoiceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.CashJournal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashJournal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByIDs(ctx context.Context, journalIDs []string) (map[string]domain.CashJournal, error) {
	args := m.Called(ctx, journalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CashJournal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string) ([]domain.CashJournal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashJournal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.CashJournal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.CashJournal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) ListGrantedJournalIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) SaveGrant(ctx context.Context, grant domain.JournalGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteGrant(ctx context.Context, userID string, journalID string) error {
	args := m.Called(ctx, userID, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockJournalRepository) ListPaymentMethods(ctx context.Context, direction domain.PaymentDirection) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

// MockPartnerRepository is a mock type for the PartnerRepositoryFacade interface
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ListPartnersByCompany(ctx context.Context, companyID string) ([]domain.Partner, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string, cashBankOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, cashBankOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockCurrencyRepository is a mock type for the CurrencyRepositoryFacade interface
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockSequenceRepository is a mock type for the SequenceRepository interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextSequenceValueInTx(ctx context.Context, tx pgx.Tx, journalID string, direction domain.PaymentDirection) (int64, error) {
	args := m.Called(ctx, tx, journalID, direction)
	return args.Get(0).(int64), args.Error(1)
}

// MockCompanyRepository is a mock type for the CompanyRepositoryFacade interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindMembership(ctx context.Context, userID string, companyID string) (*domain.CompanyMembership, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyMembership), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanyMembers(ctx context.Context, companyID string) ([]domain.CompanyMembership, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyMembership), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveMembership(ctx context.Context, membership domain.CompanyMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeleteMembership(ctx context.Context, userID string, companyID string) error {
	args := m.Called(ctx, userID, companyID)
	return args.Error(0)
}
