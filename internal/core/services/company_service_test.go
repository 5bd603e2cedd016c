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
)

// --- Test Suite Setup ---

type CompanyServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo  *MockCompanyRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.CompanySvcFacade

	companyID string
	userID    string
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCompanyService(suite.mockCompanyRepo, suite.mockCurrencyRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *CompanyServiceTestSuite) membership(role domain.TreasuryRole) *domain.CompanyMembership {
	return &domain.CompanyMembership{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
}

// --- CreateCompany ---

func (suite *CompanyServiceTestSuite) TestCreateCompany_CreatorBecomesAdmin() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", DecimalPlaces: 2}, nil).Once()
	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).Return(nil).Once()

	var savedMembership domain.CompanyMembership
	suite.mockCompanyRepo.On("SaveMembership", ctx, mock.AnythingOfType("domain.CompanyMembership")).
		Run(func(args mock.Arguments) {
			savedMembership = args.Get(1).(domain.CompanyMembership)
		}).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, "Test Treasury SL", "EUR", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(company)
	suite.NotEmpty(company.CompanyID)
	suite.Equal("EUR", company.CurrencyCode)
	suite.True(company.IsActive)

	suite.Equal(suite.userID, savedMembership.UserID)
	suite.Equal(company.CompanyID, savedMembership.CompanyID)
	suite.Equal(domain.RoleAdmin, savedMembership.Role)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_UnknownCurrency() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	company, err := suite.service.CreateCompany(ctx, "Test Treasury SL", "XYZ", suite.userID)

	suite.Nil(company)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_EmptyName() {
	ctx := context.Background()

	company, err := suite.service.CreateCompany(ctx, "", "EUR", suite.userID)

	suite.Nil(company)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- AuthorizeUserAction ---

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_SufficientRole() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("FindMembership", ctx, suite.userID, suite.companyID).
		Return(suite.membership(domain.RoleApprover), nil).Once()

	membership, err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.companyID, domain.RoleReviewer)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleApprover, membership.Role)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_InsufficientRole() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("FindMembership", ctx, suite.userID, suite.companyID).
		Return(suite.membership(domain.RoleEntry), nil).Once()

	membership, err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.companyID, domain.RoleApprover)

	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_NonMemberIsNotFound() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("FindMembership", ctx, suite.userID, suite.companyID).
		Return(nil, apperrors.ErrNotFound).Once()

	membership, err := suite.service.AuthorizeUserAction(ctx, suite.userID, suite.companyID, domain.RoleEntry)

	suite.Nil(membership)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Membership management ---

func (suite *CompanyServiceTestSuite) TestUpdateUserRole_Success() {
	ctx := context.Background()
	targetUserID := uuid.NewString()

	suite.mockCompanyRepo.On("FindMembership", ctx, suite.userID, suite.companyID).
		Return(suite.membership(domain.RoleAdmin), nil).Once()
	suite.mockCompanyRepo.On("FindMembership", ctx, targetUserID, suite.companyID).
		Return(&domain.CompanyMembership{UserID: targetUserID, CompanyID: suite.companyID, Role: domain.RoleEntry}, nil).Once()
	suite.mockCompanyRepo.On("SaveMembership", ctx, mock.MatchedBy(func(m domain.CompanyMembership) bool {
		return m.UserID == targetUserID && m.Role == domain.RoleReviewer
	})).Return(nil).Once()

	err := suite.service.UpdateUserRole(ctx, suite.userID, targetUserID, suite.companyID, domain.RoleReviewer)

	suite.Require().NoError(err)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestRemoveUserFromCompany_AdminCannotRemoveSelf() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("FindMembership", ctx, suite.userID, suite.companyID).
		Return(suite.membership(domain.RoleAdmin), nil).Once()

	err := suite.service.RemoveUserFromCompany(ctx, suite.userID, suite.userID, suite.companyID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "DeleteMembership", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestListUserCompanies_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockCompanyRepo.On("ListUserCompanies", ctx, suite.userID).Return(nil, nil).Once()

	companies, err := suite.service.ListUserCompanies(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(companies)
	suite.Empty(companies)
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
