package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portsrepo "github.com/atosolution/cash_treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/core/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
)

// --- Test Suite Setup ---

type CashDocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo      *MockDocumentRepository
	mockLedgerRepo   *MockLedgerRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockJournalRepo  *MockJournalRepository
	mockPartnerRepo  *MockPartnerRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockSequenceRepo *MockSequenceRepository
	mockCompanySvc   *MockCompanyService
	mockAccess       *MockJournalAccess
	inbound          portssvc.CashDocumentSvcFacade
	outbound         portssvc.CashDocumentSvcFacade

	companyID string
	userID    string
	journalID string
	accountID string
}

func (suite *CashDocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPartnerRepo = new(MockPartnerRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.mockAccess = new(MockJournalAccess)

	repos := portsrepo.RepositoryProvider{
		CurrencyRepo: suite.mockCurrencyRepo,
		JournalRepo:  suite.mockJournalRepo,
		PartnerRepo:  suite.mockPartnerRepo,
		InvoiceRepo:  suite.mockInvoiceRepo,
		DocumentRepo: suite.mockDocRepo,
		LedgerRepo:   suite.mockLedgerRepo,
		SequenceRepo: suite.mockSequenceRepo,
	}
	suite.inbound = services.NewCashDocumentService(domain.Inbound, repos, suite.mockCompanySvc, suite.mockAccess)
	suite.outbound = services.NewCashDocumentService(domain.Outbound, repos, suite.mockCompanySvc, suite.mockAccess)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.journalID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *CashDocumentServiceTestSuite) membership(role domain.TreasuryRole) *domain.CompanyMembership {
	return &domain.CompanyMembership{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
}

func (suite *CashDocumentServiceTestSuite) journal() *domain.CashJournal {
	return &domain.CashJournal{
		JournalID:        suite.journalID,
		CompanyID:        suite.companyID,
		Code:             "CSH1",
		Name:             "Main cash box",
		Kind:             domain.JournalCash,
		DefaultAccountID: uuid.NewString(),
		IsActive:         true,
	}
}

func (suite *CashDocumentServiceTestSuite) draftDocument(direction domain.PaymentDirection) *domain.CashDocument {
	return &domain.CashDocument{
		DocumentID:       uuid.NewString(),
		CompanyID:        suite.companyID,
		Direction:        direction,
		State:            domain.StateDraft,
		CounterpartyMode: domain.CounterpartyAccount,
		AccountID:        &suite.accountID,
		AmountManual:     decimal.NewFromInt(500),
		DocumentDate:     time.Now(),
		JournalID:        suite.journalID,
		PaymentMethodID:  "pm-cash-in",
		CurrencyCode:     "EUR",
	}
}

func (suite *CashDocumentServiceTestSuite) euro() *domain.Currency {
	return &domain.Currency{CurrencyCode: "EUR", DecimalPlaces: 2}
}

// --- CreateDocument ---

func (suite *CashDocumentServiceTestSuite) TestCreateDocument_Success() {
	ctx := context.Background()
	req := dto.CreateCashDocumentRequest{
		JournalID:        suite.journalID,
		PaymentMethodID:  "pm-cash-in",
		CounterpartyMode: domain.CounterpartyAccount,
		AccountID:        &suite.accountID,
		Amount:           decimal.NewFromInt(500),
		DocumentDate:     time.Now(),
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockCompanySvc.On("GetCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, CurrencyCode: "EUR", IsActive: true}, nil).Once()
	suite.mockAccess.On("AllowedJournals", ctx, suite.userID, suite.companyID).
		Return([]string{suite.journalID}, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journalID).Return(suite.journal(), nil).Once()
	suite.mockJournalRepo.On("FindPaymentMethodByID", ctx, "pm-cash-in").
		Return(&domain.PaymentMethod{PaymentMethodID: "pm-cash-in", Direction: domain.Inbound}, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()
	suite.mockDocRepo.On("SaveDocumentNote", ctx, mock.AnythingOfType("domain.DocumentNote")).Return(nil).Maybe()

	doc, err := suite.inbound.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.NotEmpty(doc.DocumentID)
	suite.Equal(domain.StateDraft, doc.State)
	suite.Equal(domain.Inbound, doc.Direction)
	suite.Equal(suite.journalID, doc.JournalID)
	suite.Equal("EUR", doc.CurrencyCode)
	suite.True(doc.Amount().Equal(decimal.NewFromInt(500)))
	suite.Nil(doc.Number)
	suite.Equal(suite.userID, doc.CreatedBy)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *CashDocumentServiceTestSuite) TestCreateDocument_AutoAssignsSingleGrantedJournal() {
	ctx := context.Background()
	req := dto.CreateCashDocumentRequest{
		PaymentMethodID:  "pm-cash-in",
		CounterpartyMode: domain.CounterpartyAccount,
		AccountID:        &suite.accountID,
		DocumentDate:     time.Now(),
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockCompanySvc.On("GetCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockAccess.On("AllowedJournals", ctx, suite.userID, suite.companyID).
		Return([]string{suite.journalID}, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journalID).Return(suite.journal(), nil).Once()
	suite.mockJournalRepo.On("FindPaymentMethodByID", ctx, "pm-cash-in").
		Return(&domain.PaymentMethod{PaymentMethodID: "pm-cash-in", Direction: domain.Inbound}, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()
	suite.mockDocRepo.On("SaveDocumentNote", ctx, mock.AnythingOfType("domain.DocumentNote")).Return(nil).Maybe()

	doc, err := suite.inbound.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.journalID, doc.JournalID)
}

func (suite *CashDocumentServiceTestSuite) TestCreateDocument_AmbiguousWithTwoGrants() {
	ctx := context.Background()
	req := dto.CreateCashDocumentRequest{
		PaymentMethodID:  "pm-cash-in",
		CounterpartyMode: domain.CounterpartyAccount,
		DocumentDate:     time.Now(),
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockCompanySvc.On("GetCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockAccess.On("AllowedJournals", ctx, suite.userID, suite.companyID).
		Return([]string{suite.journalID, uuid.NewString()}, nil).Once()

	doc, err := suite.inbound.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrJournalAmbiguous)
}

func (suite *CashDocumentServiceTestSuite) TestCreateDocument_NoGrantedJournals() {
	ctx := context.Background()
	req := dto.CreateCashDocumentRequest{
		PaymentMethodID:  "pm-cash-in",
		CounterpartyMode: domain.CounterpartyAccount,
		DocumentDate:     time.Now(),
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockCompanySvc.On("GetCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockAccess.On("AllowedJournals", ctx, suite.userID, suite.companyID).
		Return([]string{}, nil).Once()

	_, err := suite.inbound.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.ErrorIs(err, services.ErrNoJournalAccess)
}

func (suite *CashDocumentServiceTestSuite) TestCreateDocument_RejectsWrongDirectionPaymentMethod() {
	ctx := context.Background()
	req := dto.CreateCashDocumentRequest{
		JournalID:        suite.journalID,
		PaymentMethodID:  "pm-transfer-out",
		CounterpartyMode: domain.CounterpartyAccount,
		DocumentDate:     time.Now(),
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockCompanySvc.On("GetCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journalID).Return(suite.journal(), nil).Once()
	suite.mockJournalRepo.On("FindPaymentMethodByID", ctx, "pm-transfer-out").
		Return(&domain.PaymentMethod{PaymentMethodID: "pm-transfer-out", Direction: domain.Outbound}, nil).Once()

	_, err := suite.inbound.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashDocumentServiceTestSuite) TestCreateDocument_PartnerModeRequiresPartner() {
	ctx := context.Background()
	req := dto.CreateCashDocumentRequest{
		JournalID:        suite.journalID,
		PaymentMethodID:  "pm-cash-in",
		CounterpartyMode: domain.CounterpartyPartner,
		DocumentDate:     time.Now(),
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockCompanySvc.On("GetCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, CurrencyCode: "EUR"}, nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.journalID).Return(suite.journal(), nil).Once()
	suite.mockJournalRepo.On("FindPaymentMethodByID", ctx, "pm-cash-in").
		Return(&domain.PaymentMethod{PaymentMethodID: "pm-cash-in", Direction: domain.Inbound}, nil).Once()

	_, err := suite.inbound.CreateDocument(ctx, suite.companyID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Journal visibility ---

func (suite *CashDocumentServiceTestSuite) TestGetDocumentByID_HidesUngrantedJournal() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockAccess.On("AllowedJournals", ctx, suite.userID, suite.companyID).
		Return([]string{uuid.NewString()}, nil).Once()

	got, err := suite.inbound.GetDocumentByID(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CashDocumentServiceTestSuite) TestGetDocumentByID_WrongDirectionIsNotFound() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Outbound)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.inbound.GetDocumentByID(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CashDocumentServiceTestSuite) TestListDocuments_RestrictsFilterToGrantedJournals() {
	ctx := context.Background()
	otherJournal := uuid.NewString()
	filter := portsrepo.DocumentListFilter{
		CompanyID:  suite.companyID,
		JournalIDs: []string{suite.journalID, otherJournal},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockAccess.On("AllowedJournals", ctx, suite.userID, suite.companyID).
		Return([]string{suite.journalID}, nil).Once()
	suite.mockDocRepo.On("ListDocuments", ctx, mock.MatchedBy(func(f portsrepo.DocumentListFilter) bool {
		return f.Direction == domain.Inbound && len(f.JournalIDs) == 1 && f.JournalIDs[0] == suite.journalID
	}), 20, (*string)(nil)).Return([]domain.CashDocument{}, nil, nil).Once()

	_, _, err := suite.inbound.ListDocuments(ctx, filter, 20, nil, suite.userID)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

// --- UpdateDocument and the write guard ---

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_AmountInDraft() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	newAmount := decimal.NewFromInt(750)
	req := dto.UpdateCashDocumentRequest{Amount: &newAmount}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()

	updated, warnings, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(warnings)
	suite.True(updated.Amount().Equal(newAmount))
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_RejectsAmountOutsideDraft() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StateApproved
	newAmount := decimal.NewFromInt(999)
	req := dto.UpdateCashDocumentRequest{Amount: &newAmount}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, _, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_SettlementDateAloneAllowedWhileApproved() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StateApproved
	settlement := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	req := dto.UpdateCashDocumentRequest{SettlementDate: &settlement}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()

	updated, _, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.SettlementDate)
	suite.True(settlement.Equal(*updated.SettlementDate))
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_SettlementDateWithOtherFieldRejectedWhileApproved() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StateApproved
	settlement := time.Now()
	notes := "late edit"
	req := dto.UpdateCashDocumentRequest{SettlementDate: &settlement, Notes: &notes}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, _, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_ClampsAllocationAboveResidual() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	partnerID := uuid.NewString()
	invoiceID := uuid.NewString()
	doc.CounterpartyMode = domain.CounterpartyPartner
	doc.PartnerID = &partnerID
	doc.AccountID = nil
	doc.AmountManual = decimal.Zero
	doc.AllocationsLoaded = true
	doc.AllocationLines = []domain.AllocationLine{{
		LineID:          uuid.NewString(),
		DocumentID:      doc.DocumentID,
		InvoiceID:       invoiceID,
		InvoiceNumber:   "INV-001",
		InvoiceResidual: decimal.NewFromInt(300),
	}}

	over := decimal.NewFromInt(450)
	req := dto.UpdateCashDocumentRequest{
		AllocationLines: &[]dto.AllocationLineRequest{{InvoiceID: invoiceID, Selected: true, Amount: over}},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("ReplaceAllocationLines", ctx, doc.DocumentID, mock.Anything).Return(nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()

	updated, warnings, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(warnings, 1)
	suite.Contains(warnings[0], "INV-001")
	suite.True(updated.AllocationLines[0].Amount.Equal(decimal.NewFromInt(300)))
	suite.True(updated.Amount().Equal(decimal.NewFromInt(300)))
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_ChangingPartnerDropsAllocations() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	oldPartner := uuid.NewString()
	newPartner := uuid.NewString()
	doc.CounterpartyMode = domain.CounterpartyPartner
	doc.PartnerID = &oldPartner
	doc.AccountID = nil
	doc.AllocationsLoaded = true
	doc.AllocationLines = []domain.AllocationLine{{LineID: uuid.NewString(), InvoiceID: uuid.NewString(), Selected: true, Amount: decimal.NewFromInt(100)}}

	req := dto.UpdateCashDocumentRequest{PartnerID: &newPartner}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockPartnerRepo.On("FindPartnerByID", ctx, newPartner).
		Return(&domain.Partner{PartnerID: newPartner, CompanyID: suite.companyID, IsActive: true}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()
	suite.mockDocRepo.On("ReplaceAllocationLines", ctx, doc.DocumentID, ([]domain.AllocationLine)(nil)).Return(nil).Once()
	suite.mockDocRepo.On("ReplaceMultiAccountLines", ctx, doc.DocumentID, ([]domain.MultiAccountLine)(nil)).Return(nil).Once()

	updated, _, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(updated.AllocationsLoaded)
	suite.Empty(updated.AllocationLines)
	suite.Equal(newPartner, *updated.PartnerID)
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_MultiAccountInboundRejected() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	multi := true
	req := dto.UpdateCashDocumentRequest{MultiAccount: &multi}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, _, err := suite.inbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.ErrorIs(err, domain.ErrMultiAccountExclusive)
}

func (suite *CashDocumentServiceTestSuite) TestUpdateDocument_InvalidSplitLineKeepsStoredLines() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Outbound)
	doc.PaymentMethodID = "pm-cash-out"
	doc.MultiAccount = true
	doc.AmountManual = decimal.Zero
	doc.MultiAccountLines = []domain.MultiAccountLine{{
		LineID:     uuid.NewString(),
		DocumentID: doc.DocumentID,
		AccountID:  uuid.NewString(),
		Amount:     decimal.NewFromInt(500),
	}}

	req := dto.UpdateCashDocumentRequest{
		MultiAccountLines: &[]dto.MultiAccountLineRequest{{AccountID: uuid.NewString(), Amount: decimal.Zero}},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()

	_, _, err := suite.outbound.UpdateDocument(ctx, suite.companyID, doc.DocumentID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "ReplaceMultiAccountLines", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

// --- Workflow transitions ---

func (suite *CashDocumentServiceTestSuite) expectTransition(ctx context.Context, doc *domain.CashDocument, role domain.TreasuryRole) {
	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, role).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()
	suite.mockDocRepo.On("SaveDocumentNote", ctx, mock.AnythingOfType("domain.DocumentNote")).Return(nil).Maybe()
}

func (suite *CashDocumentServiceTestSuite) TestApprove_InboundFromDraftClearsSettlementDate() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	settlement := time.Now()
	doc.SettlementDate = &settlement

	suite.expectTransition(ctx, doc, domain.RoleApprover)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()

	approved, err := suite.inbound.Approve(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StateApproved, approved.State)
	suite.Nil(approved.SettlementDate)
}

func (suite *CashDocumentServiceTestSuite) TestApprove_OutboundRequiresReviewed() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Outbound)
	doc.PaymentMethodID = "pm-cash-out"

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleApprover).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.outbound.Approve(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashDocumentServiceTestSuite) TestApprove_ZeroAmountRejected() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.AmountManual = decimal.Zero

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleApprover).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()

	_, err := suite.inbound.Approve(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashDocumentServiceTestSuite) TestSubmitForReview_OutboundFromDraft() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Outbound)
	doc.PaymentMethodID = "pm-cash-out"

	suite.expectTransition(ctx, doc, domain.RoleReviewer)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(suite.euro(), nil).Once()

	reviewed, err := suite.outbound.SubmitForReview(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StateReviewed, reviewed.State)
}

func (suite *CashDocumentServiceTestSuite) TestSubmitForReview_InboundRejected() {
	ctx := context.Background()

	_, err := suite.inbound.SubmitForReview(ctx, suite.companyID, uuid.NewString(), suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashDocumentServiceTestSuite) TestBackToDraft_OutboundFromReviewed() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Outbound)
	doc.State = domain.StateReviewed

	suite.expectTransition(ctx, doc, domain.RoleReviewer)

	back, err := suite.outbound.BackToDraft(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StateDraft, back.State)
}

func (suite *CashDocumentServiceTestSuite) TestBackToDraft_InboundFromApproved() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StateApproved
	settlement := time.Now()
	doc.SettlementDate = &settlement

	suite.expectTransition(ctx, doc, domain.RoleApprover)

	back, err := suite.inbound.BackToDraft(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StateDraft, back.State)
	suite.Nil(back.SettlementDate)
}

func (suite *CashDocumentServiceTestSuite) TestBackToDraft_ClearsPostingReferences() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StateApproved
	number := "CSH1/2025/00042"
	postedID := uuid.NewString()
	reversalID := uuid.NewString()
	doc.Number = &number
	doc.PostedEntryID = &postedID
	doc.ReversalEntryID = &reversalID

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleApprover).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	var saved domain.CashDocument
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.CashDocument)
		}).Return(nil).Once()
	suite.mockDocRepo.On("SaveDocumentNote", ctx, mock.AnythingOfType("domain.DocumentNote")).Return(nil).Maybe()

	back, err := suite.inbound.BackToDraft(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StateDraft, back.State)
	suite.Nil(saved.Number)
	suite.Nil(saved.PostedEntryID)
	suite.Nil(saved.ReversalEntryID)
}

// --- Allocations ---

func (suite *CashDocumentServiceTestSuite) TestLoadAllocations_OneLinePerOpenInvoice() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	partnerID := uuid.NewString()
	doc.CounterpartyMode = domain.CounterpartyPartner
	doc.PartnerID = &partnerID
	doc.AccountID = nil

	invoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), Number: "INV-001", AmountResidual: decimal.NewFromInt(300), Status: domain.InvoicePosted},
		{InvoiceID: uuid.NewString(), Number: "INV-002", AmountResidual: decimal.NewFromInt(200), Status: domain.InvoicePosted},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockInvoiceRepo.On("ListOpenInvoices", ctx, suite.companyID, partnerID, domain.CustomerInvoice).
		Return(invoices, nil).Once()
	suite.mockDocRepo.On("ReplaceAllocationLines", ctx, doc.DocumentID, mock.Anything).Return(nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()

	loaded, err := suite.inbound.LoadAllocations(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.True(loaded.AllocationsLoaded)
	suite.Require().Len(loaded.AllocationLines, 2)
	for i, line := range loaded.AllocationLines {
		suite.False(line.Selected)
		suite.True(line.Amount.IsZero())
		suite.Equal(invoices[i].InvoiceID, line.InvoiceID)
		suite.True(line.InvoiceResidual.Equal(invoices[i].AmountResidual))
	}
	suite.True(loaded.Amount().IsZero())
}

func (suite *CashDocumentServiceTestSuite) TestLoadAllocations_RejectsAccountMode() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.inbound.LoadAllocations(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashDocumentServiceTestSuite) TestLoadAllocations_RejectsOutsideDraft() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StateApproved

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.inbound.LoadAllocations(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CashDocumentServiceTestSuite) TestClearAllocations_RevertsToManualAmount() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	partnerID := uuid.NewString()
	doc.CounterpartyMode = domain.CounterpartyPartner
	doc.PartnerID = &partnerID
	doc.AccountID = nil
	doc.AmountManual = decimal.NewFromInt(120)
	doc.AllocationsLoaded = true
	doc.AllocationLines = []domain.AllocationLine{{LineID: uuid.NewString(), Selected: true, Amount: decimal.NewFromInt(80)}}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("ReplaceAllocationLines", ctx, doc.DocumentID, ([]domain.AllocationLine)(nil)).Return(nil).Once()
	suite.mockDocRepo.On("UpdateDocument", ctx, mock.AnythingOfType("domain.CashDocument")).Return(nil).Once()

	cleared, err := suite.inbound.ClearAllocations(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.False(cleared.AllocationsLoaded)
	suite.Empty(cleared.AllocationLines)
	suite.True(cleared.Amount().Equal(decimal.NewFromInt(120)))
}

// --- DeleteDocument ---

func (suite *CashDocumentServiceTestSuite) TestDeleteDocument_Draft() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()
	suite.mockDocRepo.On("DeleteDocument", ctx, doc.DocumentID).Return(nil).Once()

	err := suite.inbound.DeleteDocument(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *CashDocumentServiceTestSuite) TestDeleteDocument_RejectsNonDraft() {
	ctx := context.Background()
	doc := suite.draftDocument(domain.Inbound)
	doc.State = domain.StatePosted

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.companyID, doc.DocumentID).Return(doc, nil).Once()

	err := suite.inbound.DeleteDocument(ctx, suite.companyID, doc.DocumentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "DeleteDocument", mock.Anything, mock.Anything)
}

func TestCashDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashDocumentServiceTestSuite))
}
