package services

import (
	"context"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/shopspring/decimal"
)

// InventorySvcFacade maintains the weighted-average unit cost per product and
// the append-only stock movement log.
type InventorySvcFacade interface {
	// CreateProduct registers a new product with undefined (zero) average cost.
	CreateProduct(ctx context.Context, companyID string, req dto.CreateProductRequest, userID string) (*domain.Product, error)

	// GetProduct retrieves a product.
	GetProduct(ctx context.Context, companyID, productID string) (*domain.Product, error)

	// ListStockLevels retrieves products with their on-hand quantities.
	ListStockLevels(ctx context.Context, companyID string) ([]domain.StockLevel, error)

	// ReceivePurchaseLine blends a receipt into the product's running
	// weighted-average cost and appends a purchase movement. Updates for the
	// same product are serialized by a row lock.
	ReceivePurchaseLine(ctx context.Context, companyID string, req dto.ReceivePurchaseLineRequest, userID string) (*domain.Product, error)

	// CogsForSale quotes round(avg_cost * quantity, 2) for a prospective sale.
	// Pure read: it mutates nothing and records no movement.
	CogsForSale(ctx context.Context, companyID, productID string, quantity decimal.Decimal) (decimal.Decimal, error)

	// AdjustStock appends one signed movement after checking the fiscal
	// period containing the movement date is open.
	AdjustStock(ctx context.Context, companyID string, req dto.AdjustStockRequest, userID string) (*domain.StockMovement, error)

	// ListMovements retrieves a product's recent movements, newest first.
	ListMovements(ctx context.Context, companyID, productID string, limit int) ([]domain.StockMovement, error)
}
