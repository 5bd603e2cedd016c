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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockCompanySvc   *MockCompanyService
	service          portssvc.AccountSvcFacade

	companyID string
	userID    string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockCompanySvc = new(MockCompanyService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencyRepo, suite.mockCompanySvc)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) membership(role domain.TreasuryRole) *domain.CompanyMembership {
	return &domain.CompanyMembership{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "572000",
		Name:         "Bank current account",
		AccountType:  domain.Asset,
		CurrencyCode: "EUR",
		CashBank:     true,
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", DecimalPlaces: 2}, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.companyID, account.CompanyID)
	suite.Equal("572000", account.Code)
	suite.True(account.CashBank)
	suite.True(account.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "572000",
		Name:         "Bank current account",
		AccountType:  domain.Asset,
		CurrencyCode: "XXX",
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RequiresAdmin() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(nil, apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, dto.CreateAccountRequest{}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Reads ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_WrongCompanyIsNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, CompanyID: uuid.NewString()}, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.companyID, accountID, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_CashBankOnlyPassthrough() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), CompanyID: suite.companyID, CashBank: true},
	}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockAccountRepo.On("ListAccountsByCompany", ctx, suite.companyID, true).Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(ctx, suite.companyID, true, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleEntry).
		Return(suite.membership(domain.RoleEntry), nil).Once()
	suite.mockAccountRepo.On("ListAccountsByCompany", ctx, suite.companyID, false).Return(nil, nil).Once()

	got, err := suite.service.ListAccounts(ctx, suite.companyID, false, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	newName := "Bank savings account"
	inactive := false
	req := dto.UpdateAccountRequest{Name: &newName, IsActive: &inactive}

	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, suite.userID, suite.companyID, domain.RoleAdmin).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, CompanyID: suite.companyID, Name: "Bank current account", IsActive: true}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && !a.IsActive && a.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, suite.companyID, accountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.False(account.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
