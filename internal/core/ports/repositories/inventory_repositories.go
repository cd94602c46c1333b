package repositories

import (
	"context"
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for product costing data.
type ProductReader interface {
	// FindProductByID retrieves a single product.
	FindProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error)

	// ListStockLevels retrieves all products joined with the v_product_stock
	// quantity aggregate.
	ListStockLevels(ctx context.Context, companyID string) ([]domain.StockLevel, error)
}

// ProductWriter defines write operations for product data.
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error
}

// InventoryTxOperations are the costing operations that run inside a
// caller-owned transaction, serializing the avg_cost read-modify-write
// per product via a row lock.
type InventoryTxOperations interface {
	// FindProductForUpdate retrieves a product and locks its row.
	// Must be called within a transaction.
	FindProductForUpdate(ctx context.Context, tx pgx.Tx, companyID, productID string) (*domain.Product, error)

	// CurrentQtyInTx reads the product's implied quantity from the stock
	// movement aggregate within the transaction.
	CurrentQtyInTx(ctx context.Context, tx pgx.Tx, companyID, productID string) (decimal.Decimal, error)

	// UpdateAvgCostInTx persists a new weighted-average cost within the transaction.
	UpdateAvgCostInTx(ctx context.Context, tx pgx.Tx, productID string, avgCost decimal.Decimal, userID string, now time.Time) error

	// InsertMovementInTx appends a stock movement row within the transaction.
	InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error
}

// MovementWriter appends stock movement rows outside any caller transaction.
type MovementWriter interface {
	// InsertMovement appends one stock movement row.
	InsertMovement(ctx context.Context, movement domain.StockMovement) error
}

// MovementReader defines read operations over the stock movement log.
type MovementReader interface {
	// ListMovementsByProduct retrieves the most recent movements for a
	// product, newest first, capped at limit rows.
	ListMovementsByProduct(ctx context.Context, companyID, productID string, limit int) ([]domain.StockMovement, error)
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	ProductReader
	ProductWriter
	InventoryTxOperations
	MovementWriter
	MovementReader
	TransactionManager
}
