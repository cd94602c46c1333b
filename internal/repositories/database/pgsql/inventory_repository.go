package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	"github.com/bizfolio/biz_management_app/internal/models"
	"github.com/bizfolio/biz_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `product_id, company_id, sku, name, avg_cost, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for product costing and
// stock movement data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.CompanyID,
		&m.SKU,
		&m.Name,
		&m.AvgCost,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// SaveProduct persists a new product.
func (r *PgxInventoryRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.CompanyID,
		m.SKU,
		m.Name,
		m.AvgCost,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product SKU %s already exists", apperrors.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a single product scoped to the company.
func (r *PgxInventoryRepository) FindProductByID(ctx context.Context, companyID, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1 AND company_id = $2;
	`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListStockLevels retrieves all active products joined with the
// v_product_stock quantity aggregate.
func (r *PgxInventoryRepository) ListStockLevels(ctx context.Context, companyID string) ([]domain.StockLevel, error) {
	query := `
		SELECT p.product_id, p.sku, p.name, COALESCE(v.current_qty, 0), p.avg_cost
		FROM products p
		LEFT JOIN v_product_stock v ON p.product_id = v.product_id
		WHERE p.company_id = $1 AND p.is_active = TRUE
		ORDER BY p.sku;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels for company %s: %w", companyID, err)
	}
	defer rows.Close()

	levels := []domain.StockLevel{}
	for rows.Next() {
		var l domain.StockLevel
		if err := rows.Scan(&l.ProductID, &l.SKU, &l.Name, &l.CurrentQty, &l.AvgCost); err != nil {
			return nil, fmt.Errorf("failed to scan stock level row: %w", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock level rows: %w", err)
	}
	return levels, nil
}

// FindProductForUpdate retrieves a product and locks its row. Must be called
// within a transaction; the lock serializes avg_cost updates per product.
func (r *PgxInventoryRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, companyID, productID string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1 AND company_id = $2
		FOR UPDATE;
	`
	product, err := scanProduct(tx.QueryRow(ctx, query, productID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock product %s: %w", productID, err)
	}
	return product, nil
}

// CurrentQtyInTx sums the product's movement log within the transaction.
func (r *PgxInventoryRepository) CurrentQtyInTx(ctx context.Context, tx pgx.Tx, companyID, productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty_change), 0)
		FROM stock_movements
		WHERE company_id = $1 AND product_id = $2;
	`
	var qty decimal.Decimal
	if err := tx.QueryRow(ctx, query, companyID, productID).Scan(&qty); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum movements for product %s: %w", productID, err)
	}
	return qty, nil
}

// UpdateAvgCostInTx persists a new weighted-average cost within the transaction.
func (r *PgxInventoryRepository) UpdateAvgCostInTx(ctx context.Context, tx pgx.Tx, productID string, avgCost decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET avg_cost = $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, productID, avgCost, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update avg cost for product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s not found during avg cost update", apperrors.ErrNotFound, productID)
	}
	return nil
}

func insertMovement(ctx context.Context, execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (movement_id, company_id, product_id, qty_change, reason, ref_type, ref_id, unit_cost, occurred_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := execer.Exec(ctx, query,
		m.MovementID,
		m.CompanyID,
		m.ProductID,
		m.QtyChange,
		m.Reason,
		m.RefType,
		m.RefID,
		m.UnitCost,
		m.OccurredAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", m.MovementID, err)
	}
	return nil
}

// InsertMovementInTx appends a stock movement row within the transaction.
func (r *PgxInventoryRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	return insertMovement(ctx, tx, movement)
}

// InsertMovement appends one stock movement row outside any caller transaction.
func (r *PgxInventoryRepository) InsertMovement(ctx context.Context, movement domain.StockMovement) error {
	return insertMovement(ctx, r.Pool, movement)
}

// ListMovementsByProduct retrieves the most recent movements for a product,
// newest first.
func (r *PgxInventoryRepository) ListMovementsByProduct(ctx context.Context, companyID, productID string, limit int) ([]domain.StockMovement, error) {
	query := `
		SELECT movement_id, company_id, product_id, qty_change, reason, ref_type, ref_id, unit_cost, occurred_at, created_by
		FROM stock_movements
		WHERE company_id = $1 AND product_id = $2
		ORDER BY occurred_at DESC, movement_id DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for product %s: %w", productID, err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(
			&m.MovementID,
			&m.CompanyID,
			&m.ProductID,
			&m.QtyChange,
			&m.Reason,
			&m.RefType,
			&m.RefID,
			&m.UnitCost,
			&m.OccurredAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement row: %w", err)
		}
		movements = append(movements, mapping.ToDomainStockMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movement rows: %w", err)
	}
	return movements, nil
}
