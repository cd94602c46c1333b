package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/core/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

type FiscalPeriodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFiscalPeriodRepository
	service  portssvc.FiscalPeriodSvcFacade
}

func (suite *FiscalPeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFiscalPeriodRepository)
	suite.service = services.NewFiscalPeriodService(suite.mockRepo)
}

func (suite *FiscalPeriodServiceTestSuite) TestUpsertPeriod_ClosesMonth() {
	ctx := context.Background()
	suite.mockRepo.On("FindPeriodByKey", ctx, "co-1", "2025-02").Return(nil, apperrors.ErrNotFound).Once()

	var upserted domain.FiscalPeriod
	suite.mockRepo.On("UpsertPeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.FiscalPeriod)
		}).
		Return(nil).Once()

	period, err := suite.service.UpsertPeriod(ctx, "co-1", dto.UpsertFiscalPeriodRequest{
		PeriodKey: "2025-02",
		Status:    string(domain.PeriodClosed),
	}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosed, period.Status)
	suite.Equal("admin-1", upserted.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FiscalPeriodServiceTestSuite) TestUpsertPeriod_ReopenPreservesCreation() {
	ctx := context.Background()
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	existing := &domain.FiscalPeriod{
		PeriodKey: "2025-02",
		CompanyID: "co-1",
		Status:    domain.PeriodClosed,
		AuditFields: domain.AuditFields{
			CreatedAt: created,
			CreatedBy: "admin-1",
		},
	}
	suite.mockRepo.On("FindPeriodByKey", ctx, "co-1", "2025-02").Return(existing, nil).Once()

	var upserted domain.FiscalPeriod
	suite.mockRepo.On("UpsertPeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.FiscalPeriod)
		}).
		Return(nil).Once()

	period, err := suite.service.UpsertPeriod(ctx, "co-1", dto.UpsertFiscalPeriodRequest{
		PeriodKey: "2025-02",
		Status:    string(domain.PeriodOpen),
	}, "admin-2")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Equal(created, upserted.CreatedAt)
	suite.Equal("admin-1", upserted.CreatedBy)
	suite.Equal("admin-2", upserted.LastUpdatedBy)
}

func (suite *FiscalPeriodServiceTestSuite) TestUpsertPeriod_BadKey() {
	ctx := context.Background()

	period, err := suite.service.UpsertPeriod(ctx, "co-1", dto.UpsertFiscalPeriodRequest{
		PeriodKey: "2025-13",
		Status:    string(domain.PeriodClosed),
	}, "admin-1")

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertPeriod", mock.Anything, mock.Anything)
}

func (suite *FiscalPeriodServiceTestSuite) TestListPeriods() {
	ctx := context.Background()
	periods := []domain.FiscalPeriod{
		{PeriodKey: "2025-03", CompanyID: "co-1", Status: domain.PeriodOpen},
		{PeriodKey: "2025-02", CompanyID: "co-1", Status: domain.PeriodClosed},
	}
	suite.mockRepo.On("ListPeriods", ctx, "co-1").Return(periods, nil).Once()

	result, err := suite.service.ListPeriods(ctx, "co-1")

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func TestFiscalPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FiscalPeriodServiceTestSuite))
}
