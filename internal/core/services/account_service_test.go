package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/core/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1500",
		Name:        "Prepaid Expenses",
		AccountType: string(domain.Asset),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, "co-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("co-1", account.CompanyID)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal("user-1", account.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CodeOutsideTypeRange() {
	ctx := context.Background()
	// 4000s are revenue codes; an asset may not use one.
	req := dto.CreateAccountRequest{
		Code:        "4100",
		Name:        "Mislabeled",
		AccountType: string(domain.Asset),
	}

	account, err := suite.service.CreateAccount(ctx, "co-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCodeOrName() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: string(domain.Asset),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, "co-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NilFieldsUnchanged() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:   accountID,
		CompanyID:   "co-1",
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Description: "Cash on hand",
		IsActive:    true,
	}
	suite.mockRepo.On("FindAccountByID", ctx, "co-1", accountID).Return(existing, nil).Once()

	newName := "Cash and Equivalents"
	var updated domain.Account
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, "co-1", accountID, dto.UpdateAccountRequest{Name: &newName}, "user-2")

	suite.Require().NoError(err)
	suite.Equal("Cash and Equivalents", account.Name)
	suite.Equal("Cash on hand", updated.Description)
	suite.True(updated.IsActive)
	suite.Equal("user-2", updated.LastUpdatedBy)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RejectedWhenReferenced() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, CompanyID: "co-1", Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, "co-1", accountID).Return(existing, nil).Once()
	suite.mockRepo.On("HasEntries", ctx, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, "co-1", accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasEntries)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Unreferenced() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, CompanyID: "co-1", Code: "1900", Name: "Petty Cash", AccountType: domain.Asset, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, "co-1", accountID).Return(existing, nil).Once()
	suite.mockRepo.On("HasEntries", ctx, accountID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, "co-1", accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "co-1", accountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
