package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/atosolution/cash_treasury_backend/internal/apperrors"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/core/services"
	"github.com/atosolution/cash_treasury_backend/internal/dto"
)

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockCompanySvc  *MockCompanyService
	service         portssvc.JournalSvcFacade

	companyID string
	userID    string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockCompanySvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) membership(role domain.TreasuryRole) *domain.CompanyMembership {
	return &domain.CompanyMembership{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
}

// --- CreateJournal ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateJournalRequest{
		Code:             "BNK1",
		Name:             "Main bank account",
		Kind:             domain.JournalBank,
		DefaultAccountID: accountID,
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, CompanyID: suite.companyID, CashBank: true}, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.CashJournal")).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.NotEmpty(journal.JournalID)
	suite.Equal("BNK1", journal.Code)
	suite.Equal(domain.JournalBank, journal.Kind)
	suite.Equal(accountID, journal.DefaultAccountID)
	suite.True(journal.IsActive)
	suite.Equal(suite.userID, journal.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsNonCashBankDefaultAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateJournalRequest{
		Code:             "CSH2",
		Name:             "Petty cash",
		Kind:             domain.JournalCash,
		DefaultAccountID: accountID,
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, CompanyID: suite.companyID, CashBank: false}, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.companyID, req, suite.userID)

	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RequiresAdmin() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(nil, apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateJournal(ctx, suite.companyID, dto.CreateJournalRequest{}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Visibility ---

func (suite *JournalServiceTestSuite) TestGetJournalByID_HiddenWithoutGrant() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.CashJournal{JournalID: journalID, CompanyID: suite.companyID, Code: "CSH1", IsActive: true}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil)
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("ListGrantedJournalIDs", ctx, suite.userID).Return([]string{uuid.NewString()}, nil).Once()

	got, err := suite.service.GetJournalByID(ctx, suite.companyID, journalID, suite.userID)

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListJournals_AdminSeesAll() {
	ctx := context.Background()
	journals := []domain.CashJournal{
		{JournalID: uuid.NewString(), CompanyID: suite.companyID, Code: "CSH1"},
		{JournalID: uuid.NewString(), CompanyID: suite.companyID, Code: "BNK1"},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockJournalRepo.On("ListJournalsByCompany", ctx, suite.companyID).Return(journals, nil).Once()

	got, err := suite.service.ListJournals(ctx, suite.companyID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *JournalServiceTestSuite) TestListJournals_FiltersToGrantedSubset() {
	ctx := context.Background()
	granted := uuid.NewString()
	journals := []domain.CashJournal{
		{JournalID: granted, CompanyID: suite.companyID, Code: "CSH1"},
		{JournalID: uuid.NewString(), CompanyID: suite.companyID, Code: "BNK1"},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil)
	suite.mockJournalRepo.On("ListJournalsByCompany", ctx, suite.companyID).Return(journals, nil).Once()
	suite.mockJournalRepo.On("ListGrantedJournalIDs", ctx, suite.userID).Return([]string{granted}, nil).Once()

	got, err := suite.service.ListJournals(ctx, suite.companyID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(granted, got[0].JournalID)
}

// --- AllowedJournals and the grant cache ---

func (suite *JournalServiceTestSuite) TestAllowedJournals_AdminIsUnrestricted() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleAdmin), nil).Once()

	allowed, err := suite.service.AllowedJournals(ctx, suite.userID, suite.companyID)

	suite.Require().NoError(err)
	suite.Nil(allowed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListGrantedJournalIDs", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestAllowedJournals_NoGrantsIsEmptyNotNil() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockJournalRepo.On("ListGrantedJournalIDs", ctx, suite.userID).Return(nil, nil).Once()

	allowed, err := suite.service.AllowedJournals(ctx, suite.userID, suite.companyID)

	suite.Require().NoError(err)
	suite.NotNil(allowed)
	suite.Empty(allowed)
}

func (suite *JournalServiceTestSuite) TestAllowedJournals_CachedUntilInvalidated() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil)
	suite.mockJournalRepo.On("ListGrantedJournalIDs", ctx, suite.userID).Return([]string{journalID}, nil).Twice()

	first, err := suite.service.AllowedJournals(ctx, suite.userID, suite.companyID)
	suite.Require().NoError(err)
	second, err := suite.service.AllowedJournals(ctx, suite.userID, suite.companyID)
	suite.Require().NoError(err)
	suite.Equal(first, second)

	suite.service.OnJournalGrantsChanged(suite.userID)

	_, err = suite.service.AllowedJournals(ctx, suite.userID, suite.companyID)
	suite.Require().NoError(err)

	// Two repository reads: one before caching, one after invalidation.
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Grants ---

func (suite *JournalServiceTestSuite) TestGrantJournal_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()
	journalID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).
		Return(&domain.CashJournal{JournalID: journalID, CompanyID: suite.companyID}, nil).Once()
	suite.mockJournalRepo.On("SaveGrant", ctx, mock.MatchedBy(func(g domain.JournalGrant) bool {
		return g.UserID == targetUserID && g.JournalID == journalID && g.GrantedBy == suite.userID
	})).Return(nil).Once()

	err := suite.service.GrantJournal(ctx, suite.companyID, targetUserID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGrantJournal_RejectsForeignJournal() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).
		Return(&domain.CashJournal{JournalID: journalID, CompanyID: uuid.NewString()}, nil).Once()

	err := suite.service.GrantJournal(ctx, suite.companyID, uuid.NewString(), journalID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveGrant", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestRevokeJournal_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()
	journalID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockJournalRepo.On("DeleteGrant", ctx, targetUserID, journalID).Return(nil).Once()

	err := suite.service.RevokeJournal(ctx, suite.companyID, targetUserID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Payment methods ---

func (suite *JournalServiceTestSuite) TestListPaymentMethods_ByDirection() {
	ctx := context.Background()
	methods := []domain.PaymentMethod{
		{PaymentMethodID: "pm-cash-in", Name: "Cash", Direction: domain.Inbound},
		{PaymentMethodID: "pm-transfer-in", Name: "Bank transfer", Direction: domain.Inbound},
	}

	suite.mockJournalRepo.On("ListPaymentMethods", ctx, domain.Inbound).Return(methods, nil).Once()

	got, err := suite.service.ListPaymentMethods(ctx, domain.Inbound)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
