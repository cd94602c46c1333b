package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/bizfolio/biz_management_app/internal/middleware"
	"github.com/bizfolio/biz_management_app/internal/utils/accounting"
)

var (
	// ErrProductNotFound indicates the product does not exist or belongs to
	// another company.
	ErrProductNotFound = errors.New("product not found")

	// ErrProductInactive indicates a costing operation targeted a
	// deactivated product.
	ErrProductInactive = errors.New("product is inactive")
)

// inventoryService maintains each product's weighted-average unit cost and
// the append-only stock movement log. All receipt updates for one product run
// under a row lock so concurrent receipts blend sequentially.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	periodRepo    portsrepo.FiscalPeriodRepositoryFacade
}

// NewInventoryService creates the inventory costing engine.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, periodRepo portsrepo.FiscalPeriodRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		periodRepo:    periodRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// CreateProduct registers a product. AvgCost starts at zero and stays
// undefined until the first receipt defines it.
func (s *inventoryService) CreateProduct(ctx context.Context, companyID string, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ProductID: uuid.NewString(),
		CompanyID: companyID,
		SKU:       req.SKU,
		Name:      req.Name,
		AvgCost:   decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.inventoryRepo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &product, nil
}

// GetProduct retrieves a product.
func (s *inventoryService) GetProduct(ctx context.Context, companyID, productID string) (*domain.Product, error) {
	product, err := s.inventoryRepo.FindProductByID(ctx, companyID, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListStockLevels retrieves all products with their movement-derived
// on-hand quantities.
func (s *inventoryService) ListStockLevels(ctx context.Context, companyID string) ([]domain.StockLevel, error) {
	levels, err := s.inventoryRepo.ListStockLevels(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}
	return levels, nil
}

// ReceivePurchaseLine blends a receipt into the product's running
// weighted-average cost and appends a purchase movement, atomically. The
// product row is locked for the duration of the transaction so two receipts
// arriving together read the cost sequentially, never from the same snapshot.
func (s *inventoryService) ReceivePurchaseLine(ctx context.Context, companyID string, req dto.ReceivePurchaseLineRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrValidation, req.Quantity)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unitCost must not be negative", apperrors.ErrValidation)
	}

	tx, err := s.inventoryRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := s.inventoryRepo.Rollback(ctx, tx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Transaction rollback failed", slog.String("error", err.Error()))
		}
	}()

	product, err := s.inventoryRepo.FindProductForUpdate(ctx, tx, companyID, req.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to lock product %s: %w", req.ProductID, err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrProductInactive, req.ProductID)
	}

	oldQty, err := s.inventoryRepo.CurrentQtyInTx(ctx, tx, companyID, product.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to read current quantity for %s: %w", product.ProductID, err)
	}

	now := time.Now().UTC()
	newAvg := accounting.WeightedAverageCost(oldQty, product.AvgCost, req.Quantity, req.UnitCost)

	if err := s.inventoryRepo.UpdateAvgCostInTx(ctx, tx, product.ProductID, newAvg, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update average cost for %s: %w", product.ProductID, err)
	}
	if err := s.inventoryRepo.InsertMovementInTx(ctx, tx, domain.StockMovement{
		MovementID: uuid.NewString(),
		CompanyID:  companyID,
		ProductID:  product.ProductID,
		QtyChange:  req.Quantity,
		Reason:     domain.MovementPurchase,
		RefType:    req.RefType,
		RefID:      req.RefID,
		UnitCost:   req.UnitCost,
		OccurredAt: now,
		CreatedBy:  userID,
	}); err != nil {
		return nil, fmt.Errorf("failed to insert purchase movement: %w", err)
	}

	if err := s.inventoryRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit receipt: %w", err)
	}

	logger.Info("Purchase line received",
		slog.String("product_id", product.ProductID),
		slog.String("qty", req.Quantity.String()),
		slog.String("new_avg_cost", newAvg.String()))

	product.AvgCost = newAvg
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID
	return product, nil
}

// CogsForSale quotes round(avg_cost * quantity, 2) for a prospective sale.
// It reads the current average cost and nothing else; no movement is
// recorded and no state changes.
func (s *inventoryService) CogsForSale(ctx context.Context, companyID, productID string, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrValidation, quantity)
	}
	product, err := s.GetProduct(ctx, companyID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.RoundCurrency(product.AvgCost.Mul(quantity)), nil
}

// AdjustStock appends one signed movement for shrinkage, counts and
// corrections. The movement date must fall in an open fiscal period; the
// average cost is never touched.
func (s *inventoryService) AdjustStock(ctx context.Context, companyID string, req dto.AdjustStockRequest, userID string) (*domain.StockMovement, error) {
	if req.QtyChange.IsZero() {
		return nil, fmt.Errorf("%w: qtyChange must not be zero", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, *req.Date)
		}
		occurredAt = parsed
	}

	periodKey := domain.PeriodKeyForDate(occurredAt)
	period, err := s.periodRepo.FindPeriodByKey(ctx, companyID, periodKey)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check fiscal period %s: %w", periodKey, err)
	}
	if err == nil && period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %s", ErrPeriodClosed, periodKey)
	}

	product, err := s.GetProduct(ctx, companyID, req.ProductID)
	if err != nil {
		return nil, err
	}

	unitCost := req.UnitCost
	if unitCost.IsZero() {
		unitCost = product.AvgCost
	}

	movement := domain.StockMovement{
		MovementID: uuid.NewString(),
		CompanyID:  companyID,
		ProductID:  product.ProductID,
		QtyChange:  req.QtyChange,
		Reason:     domain.MovementReason(req.Reason),
		RefType:    req.RefType,
		RefID:      req.RefID,
		UnitCost:   unitCost,
		OccurredAt: occurredAt,
		CreatedBy:  userID,
	}
	if err := s.inventoryRepo.InsertMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to insert adjustment movement: %w", err)
	}
	return &movement, nil
}

// ListMovements retrieves a product's recent movements, newest first.
func (s *inventoryService) ListMovements(ctx context.Context, companyID, productID string, limit int) ([]domain.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if _, err := s.GetProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	movements, err := s.inventoryRepo.ListMovementsByProduct(ctx, companyID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for product %s: %w", productID, err)
	}
	return movements, nil
}
