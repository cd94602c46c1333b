package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/core/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockFiscalPeriodRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodRepo)
}

func (suite *JournalServiceTestSuite) accounts() (cash, revenue domain.Account) {
	cash = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   "co-1",
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	revenue = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   "co-1",
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	return cash, revenue
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_Success() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-03-15",
		Description: "Cash sale",
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromFloat(150.50)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromFloat(150.50)},
		},
	}

	// No fiscal_periods row for the month means posting is allowed.
	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-03").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, "co-1", mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal(domain.Posted, journal.Status)
	suite.Equal(domain.SourceManual, journal.SourceType)
	suite.True(journal.Amount.Equal(decimal.NewFromFloat(150.50)))

	// Both SignedAmounts are positive: the cash debit lands on the asset's
	// normal side and the revenue credit on the revenue's normal side.
	suite.True(savedChanges[cash.AccountID].Equal(decimal.NewFromFloat(150.50)))
	suite.True(savedChanges[revenue.AccountID].Equal(decimal.NewFromFloat(150.50)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_PreservesLineOrder() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	// Credit line first: the batch must keep the caller's order, not
	// reorder by account or generated ID.
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-03-15",
		Description: "Credit-first sale",
		Entries: []dto.CreateEntryRequest{
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(75)},
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(75)},
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-03").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, "co-1", mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()

	var savedEntries []domain.JournalEntry
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).
		Return(nil).Once()

	_, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(savedEntries, 2)
	suite.Equal(1, savedEntries[0].LineNo)
	suite.Equal(revenue.AccountID, savedEntries[0].AccountID)
	suite.Equal(2, savedEntries[1].LineNo)
	suite.Equal(cash.AccountID, savedEntries[1].AccountID)
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_DebitAndCreditOnOneLine() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	// A single line may carry both sides in unusual adjustments; only the
	// batch-level balance matters.
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-03-15",
		Description: "Netting adjustment",
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(20)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(80)},
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-03").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, "co-1", mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.True(journal.Amount.Equal(decimal.NewFromInt(100)))
	// Cash nets to +80 on its debit-normal side.
	suite.True(savedChanges[cash.AccountID].Equal(decimal.NewFromInt(80)))
	suite.True(savedChanges[revenue.AccountID].Equal(decimal.NewFromInt(80)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_Unbalanced() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-03-15",
		Description: "Off by a cent",
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromFloat(100.00)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromFloat(99.99)},
		},
	}

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_SubCentImbalanceRoundsAway() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	// 0.004 below the credit sum rounds away at currency precision.
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-03-15",
		Description: "Sub-cent residue",
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Debit: decimal.RequireFromString("99.996")},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromFloat(100.00)},
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-03").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, "co-1", mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.True(journal.Amount.Equal(decimal.NewFromFloat(100.00)))
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_PeriodClosed() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-02-28",
		Description: "Late posting",
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(50)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(50)},
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-02").
		Return(&domain.FiscalPeriod{PeriodKey: "2025-02", CompanyID: "co-1", Status: domain.PeriodClosed}, nil).Once()

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_InvalidDate() {
	ctx := context.Background()
	req := dto.CreateJournalBatchRequest{
		Date:        "15-03-2025",
		Description: "Bad date",
		Entries:     []dto.CreateEntryRequest{{AccountID: "acc-1", Debit: decimal.NewFromInt(1)}},
	}

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalBatch_NoEntries() {
	ctx := context.Background()
	req := dto.CreateJournalBatchRequest{
		Date:        "2025-03-15",
		Description: "Empty",
	}

	journal, err := suite.service.CreateJournalBatch(ctx, "co-1", req, "user-1")

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalMinEntries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestReverseJournalBatch_SwapsSides() {
	ctx := context.Background()
	cash, revenue := suite.accounts()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:   originalID,
		CompanyID:   "co-1",
		JournalDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		SourceType:  domain.SourceManual,
		Status:      domain.Posted,
		Amount:      decimal.NewFromInt(200),
	}
	originalEntries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), JournalID: originalID, LineNo: 1, AccountID: cash.AccountID, Debit: decimal.NewFromInt(200), Credit: decimal.Zero},
		{EntryID: uuid.NewString(), JournalID: originalID, LineNo: 2, AccountID: revenue.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindEntriesByJournalID", ctx, originalID).Return(originalEntries, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-04").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, "co-1", mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()

	var savedJournal domain.Journal
	var savedEntries []domain.JournalEntry
	var savedChanges map[string]decimal.Decimal
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalEntry"), mock.Anything).
		Run(func(args mock.Arguments) {
			savedJournal = args.Get(1).(domain.Journal)
			savedEntries = args.Get(2).([]domain.JournalEntry)
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatusAndLinks", ctx, originalID, domain.Reversed, mock.AnythingOfType("*string"), "user-2", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	reversing, err := suite.service.ReverseJournalBatch(ctx, "co-1", originalID, dto.ReverseJournalBatchRequest{Date: "2025-04-01", Reason: "wrong amount"}, "user-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(reversing)
	suite.Require().NotNil(reversing.OriginalJournalID)
	suite.Equal(originalID, *reversing.OriginalJournalID)
	suite.True(reversing.SourceType.IsReversal())
	suite.True(reversing.Amount.Equal(original.Amount))
	suite.Contains(savedJournal.Description, "Reversal of: Cash sale")
	suite.Contains(savedJournal.Description, "wrong amount")

	// Debits and credits are swapped line for line, keeping the original
	// line order.
	suite.Require().Len(savedEntries, 2)
	suite.Equal(1, savedEntries[0].LineNo)
	suite.True(savedEntries[0].Debit.IsZero())
	suite.True(savedEntries[0].Credit.Equal(decimal.NewFromInt(200)))
	suite.Equal(2, savedEntries[1].LineNo)
	suite.True(savedEntries[1].Debit.Equal(decimal.NewFromInt(200)))
	suite.True(savedEntries[1].Credit.IsZero())

	// Balance deltas cancel the original's exactly.
	suite.True(savedChanges[cash.AccountID].Equal(decimal.NewFromInt(-200)))
	suite.True(savedChanges[revenue.AccountID].Equal(decimal.NewFromInt(-200)))

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournalBatch_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).
		Return(&domain.Journal{JournalID: originalID, CompanyID: "co-1", Status: domain.Reversed}, nil).Once()

	reversing, err := suite.service.ReverseJournalBatch(ctx, "co-1", originalID, dto.ReverseJournalBatchRequest{Date: "2025-04-01"}, "user-2")

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
}

func (suite *JournalServiceTestSuite) TestReverseJournalBatch_NotFound() {
	ctx := context.Background()
	suite.mockJournalRepo.On("FindJournalByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	reversing, err := suite.service.ReverseJournalBatch(ctx, "co-1", "missing", dto.ReverseJournalBatchRequest{Date: "2025-04-01"}, "user-2")

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, services.ErrBatchNotFound)
}

func (suite *JournalServiceTestSuite) TestReverseJournalBatch_OtherCompanyLooksMissing() {
	ctx := context.Background()
	originalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).
		Return(&domain.Journal{JournalID: originalID, CompanyID: "co-other", Status: domain.Posted}, nil).Once()

	reversing, err := suite.service.ReverseJournalBatch(ctx, "co-1", originalID, dto.ReverseJournalBatchRequest{Date: "2025-04-01"}, "user-2")

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, services.ErrBatchNotFound)
}

func (suite *JournalServiceTestSuite) TestReverseJournalBatch_ReversalIsNotReversible() {
	ctx := context.Background()
	originalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).
		Return(&domain.Journal{
			JournalID:  originalID,
			CompanyID:  "co-1",
			Status:     domain.Posted,
			SourceType: domain.ReversalOf(domain.SourceManual),
		}, nil).Once()

	reversing, err := suite.service.ReverseJournalBatch(ctx, "co-1", originalID, dto.ReverseJournalBatchRequest{Date: "2025-04-01"}, "user-2")

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseJournalBatch_ClosedPeriodOnReversalDate() {
	ctx := context.Background()
	originalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).
		Return(&domain.Journal{JournalID: originalID, CompanyID: "co-1", Status: domain.Posted, SourceType: domain.SourceManual}, nil).Once()
	suite.mockJournalRepo.On("FindEntriesByJournalID", ctx, originalID).
		Return([]domain.JournalEntry{{EntryID: "e1", AccountID: "a1", Debit: decimal.NewFromInt(10)}}, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-04").
		Return(&domain.FiscalPeriod{PeriodKey: "2025-04", Status: domain.PeriodClosed}, nil).Once()

	reversing, err := suite.service.ReverseJournalBatch(ctx, "co-1", originalID, dto.ReverseJournalBatchRequest{Date: "2025-04-01"}, "user-2")

	suite.Require().Error(err)
	suite.Nil(reversing)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournalBatch_ScopedToCompany() {
	ctx := context.Background()
	journalID := uuid.NewString()
	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).
		Return(&domain.Journal{JournalID: journalID, CompanyID: "co-other"}, nil).Once()

	journal, err := suite.service.GetJournalBatch(ctx, "co-1", journalID)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
