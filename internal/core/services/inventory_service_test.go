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

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockPeriodRepo    *MockFiscalPeriodRepository
	service           portssvc.InventorySvcFacade
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockPeriodRepo)
}

func (suite *InventoryServiceTestSuite) product(avgCost string) *domain.Product {
	return &domain.Product{
		ProductID: uuid.NewString(),
		CompanyID: "co-1",
		SKU:       "WIDGET-01",
		Name:      "Widget",
		AvgCost:   decimal.RequireFromString(avgCost),
		IsActive:  true,
	}
}

// expectTx sets up the transaction lifecycle expectations used by every
// receipt test. Rollback runs unconditionally via defer, including after a
// successful commit.
func (suite *InventoryServiceTestSuite) expectTx() {
	suite.mockInventoryRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockInventoryRepo.On("Rollback", mock.Anything, nil).Return(nil)
}

func (suite *InventoryServiceTestSuite) TestReceivePurchaseLine_BlendsAverageCost() {
	ctx := context.Background()
	product := suite.product("10.00")
	suite.expectTx()
	suite.mockInventoryRepo.On("FindProductForUpdate", ctx, nil, "co-1", product.ProductID).Return(product, nil).Once()
	suite.mockInventoryRepo.On("CurrentQtyInTx", ctx, nil, "co-1", product.ProductID).Return(decimal.NewFromInt(10), nil).Once()

	// 10 on hand at 10.00, receiving 10 at 20.00 blends to 15.00.
	var newAvg decimal.Decimal
	suite.mockInventoryRepo.On("UpdateAvgCostInTx", ctx, nil, product.ProductID, mock.AnythingOfType("decimal.Decimal"), "user-1", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			newAvg = args.Get(3).(decimal.Decimal)
		}).
		Return(nil).Once()

	var movement domain.StockMovement
	suite.mockInventoryRepo.On("InsertMovementInTx", ctx, nil, mock.AnythingOfType("domain.StockMovement")).
		Run(func(args mock.Arguments) {
			movement = args.Get(2).(domain.StockMovement)
		}).
		Return(nil).Once()
	suite.mockInventoryRepo.On("Commit", ctx, nil).Return(nil).Once()

	updated, err := suite.service.ReceivePurchaseLine(ctx, "co-1", dto.ReceivePurchaseLineRequest{
		ProductID: product.ProductID,
		Quantity:  decimal.NewFromInt(10),
		UnitCost:  decimal.NewFromInt(20),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(newAvg.Equal(decimal.NewFromInt(15)), "expected blended average 15, got %s", newAvg)
	suite.True(updated.AvgCost.Equal(newAvg))
	suite.Equal(domain.MovementPurchase, movement.Reason)
	suite.True(movement.QtyChange.Equal(decimal.NewFromInt(10)))
	suite.True(movement.UnitCost.Equal(decimal.NewFromInt(20)))

	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReceivePurchaseLine_FirstReceiptDefinesCost() {
	ctx := context.Background()
	product := suite.product("0")
	suite.expectTx()
	suite.mockInventoryRepo.On("FindProductForUpdate", ctx, nil, "co-1", product.ProductID).Return(product, nil).Once()
	suite.mockInventoryRepo.On("CurrentQtyInTx", ctx, nil, "co-1", product.ProductID).Return(decimal.Zero, nil).Once()

	var newAvg decimal.Decimal
	suite.mockInventoryRepo.On("UpdateAvgCostInTx", ctx, nil, product.ProductID, mock.AnythingOfType("decimal.Decimal"), "user-1", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			newAvg = args.Get(3).(decimal.Decimal)
		}).
		Return(nil).Once()
	suite.mockInventoryRepo.On("InsertMovementInTx", ctx, nil, mock.AnythingOfType("domain.StockMovement")).Return(nil).Once()
	suite.mockInventoryRepo.On("Commit", ctx, nil).Return(nil).Once()

	_, err := suite.service.ReceivePurchaseLine(ctx, "co-1", dto.ReceivePurchaseLineRequest{
		ProductID: product.ProductID,
		Quantity:  decimal.NewFromInt(5),
		UnitCost:  decimal.RequireFromString("4.25"),
	}, "user-1")

	suite.Require().NoError(err)
	suite.True(newAvg.Equal(decimal.RequireFromString("4.25")))
}

func (suite *InventoryServiceTestSuite) TestReceivePurchaseLine_InactiveProduct() {
	ctx := context.Background()
	product := suite.product("10.00")
	product.IsActive = false
	suite.expectTx()
	suite.mockInventoryRepo.On("FindProductForUpdate", ctx, nil, "co-1", product.ProductID).Return(product, nil).Once()

	updated, err := suite.service.ReceivePurchaseLine(ctx, "co-1", dto.ReceivePurchaseLineRequest{
		ProductID: product.ProductID,
		Quantity:  decimal.NewFromInt(1),
		UnitCost:  decimal.NewFromInt(1),
	}, "user-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrProductInactive)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestReceivePurchaseLine_NonPositiveQuantity() {
	ctx := context.Background()

	updated, err := suite.service.ReceivePurchaseLine(ctx, "co-1", dto.ReceivePurchaseLineRequest{
		ProductID: "prod-1",
		Quantity:  decimal.Zero,
		UnitCost:  decimal.NewFromInt(1),
	}, "user-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestReceivePurchaseLine_ProductNotFound() {
	ctx := context.Background()
	suite.expectTx()
	suite.mockInventoryRepo.On("FindProductForUpdate", ctx, nil, "co-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.ReceivePurchaseLine(ctx, "co-1", dto.ReceivePurchaseLineRequest{
		ProductID: "missing",
		Quantity:  decimal.NewFromInt(1),
		UnitCost:  decimal.NewFromInt(1),
	}, "user-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, services.ErrProductNotFound)
}

func (suite *InventoryServiceTestSuite) TestCogsForSale_PureRead() {
	ctx := context.Background()
	product := suite.product("12.345")
	suite.mockInventoryRepo.On("FindProductByID", ctx, "co-1", product.ProductID).Return(product, nil).Once()

	amount, err := suite.service.CogsForSale(ctx, "co-1", product.ProductID, decimal.NewFromInt(2))

	suite.Require().NoError(err)
	suite.True(amount.Equal(decimal.RequireFromString("24.69")), "expected 24.69, got %s", amount)

	// Nothing written: a quote must not move stock or cost.
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "InsertMovement", mock.Anything, mock.Anything)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpdateAvgCostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestCogsForSale_NonPositiveQuantity() {
	ctx := context.Background()

	_, err := suite.service.CogsForSale(ctx, "co-1", "prod-1", decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_ClosedPeriod() {
	ctx := context.Background()
	date := "2025-01-15"
	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-01").
		Return(&domain.FiscalPeriod{PeriodKey: "2025-01", Status: domain.PeriodClosed}, nil).Once()

	movement, err := suite.service.AdjustStock(ctx, "co-1", dto.AdjustStockRequest{
		ProductID: "prod-1",
		QtyChange: decimal.NewFromInt(-3),
		Reason:    string(domain.MovementAdjustment),
		Date:      &date,
	}, "user-1")

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, services.ErrPeriodClosed)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "InsertMovement", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_DefaultsUnitCostToAverage() {
	ctx := context.Background()
	product := suite.product("7.50")
	date := "2025-03-10"
	suite.mockPeriodRepo.On("FindPeriodByKey", ctx, "co-1", "2025-03").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInventoryRepo.On("FindProductByID", ctx, "co-1", product.ProductID).Return(product, nil).Once()
	suite.mockInventoryRepo.On("InsertMovement", ctx, mock.AnythingOfType("domain.StockMovement")).Return(nil).Once()

	movement, err := suite.service.AdjustStock(ctx, "co-1", dto.AdjustStockRequest{
		ProductID: product.ProductID,
		QtyChange: decimal.NewFromInt(-2),
		Reason:    string(domain.MovementAdjustment),
		Date:      &date,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.True(movement.UnitCost.Equal(decimal.RequireFromString("7.50")))
	suite.Equal(domain.MovementAdjustment, movement.Reason)
	suite.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), movement.OccurredAt)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAdjustStock_ZeroQtyChange() {
	ctx := context.Background()

	movement, err := suite.service.AdjustStock(ctx, "co-1", dto.AdjustStockRequest{
		ProductID: "prod-1",
		QtyChange: decimal.Zero,
		Reason:    string(domain.MovementAdjustment),
	}, "user-1")

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InventoryServiceTestSuite) TestCreateProduct_StartsAtZeroCost() {
	ctx := context.Background()
	suite.mockInventoryRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, "co-1", dto.CreateProductRequest{
		SKU:  "WIDGET-01",
		Name: "Widget",
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.True(product.AvgCost.IsZero())
	suite.True(product.IsActive)
}

func (suite *InventoryServiceTestSuite) TestListMovements_ClampsLimit() {
	ctx := context.Background()
	product := suite.product("5.00")
	movements := []domain.StockMovement{
		{MovementID: uuid.NewString(), ProductID: product.ProductID, QtyChange: decimal.NewFromInt(-2), Reason: domain.MovementSale},
		{MovementID: uuid.NewString(), ProductID: product.ProductID, QtyChange: decimal.NewFromInt(10), Reason: domain.MovementPurchase},
	}
	suite.mockInventoryRepo.On("FindProductByID", ctx, "co-1", product.ProductID).Return(product, nil).Once()
	suite.mockInventoryRepo.On("ListMovementsByProduct", ctx, "co-1", product.ProductID, 100).Return(movements, nil).Once()

	result, err := suite.service.ListMovements(ctx, "co-1", product.ProductID, -5)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestListMovements_UnknownProduct() {
	ctx := context.Background()
	suite.mockInventoryRepo.On("FindProductByID", ctx, "co-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListMovements(ctx, "co-1", "missing", 10)

	suite.Require().ErrorIs(err, services.ErrProductNotFound)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "ListMovementsByProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
