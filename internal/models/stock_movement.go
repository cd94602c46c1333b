package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement is the stock_movements table row. The table is append-only.
type StockMovement struct {
	MovementID string          `db:"movement_id"`
	CompanyID  string          `db:"company_id"`
	ProductID  string          `db:"product_id"`
	QtyChange  decimal.Decimal `db:"qty_change"`
	Reason     string          `db:"reason"`
	RefType    string          `db:"ref_type"`
	RefID      string          `db:"ref_id"`
	UnitCost   decimal.Decimal `db:"unit_cost"`
	OccurredAt time.Time       `db:"occurred_at"`
	CreatedBy  string          `db:"created_by"`
}
