package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementReason classifies a stock movement.
type MovementReason string

const (
	MovementSale       MovementReason = "sale"
	MovementPurchase   MovementReason = "purchase"
	MovementAdjustment MovementReason = "adjustment"
	MovementReturn     MovementReason = "return"
	MovementTransfer   MovementReason = "transfer"
)

// Product carries the costing state for one inventory item. AvgCost is the
// running weighted-average unit cost: it is recomputed only on receipts, never
// on sales. Quantity on hand is derived from the stock movement log, not
// stored on the product.
type Product struct {
	ProductID string          `json:"productID"` // Primary Key (UUID)
	CompanyID string          `json:"companyID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	AvgCost   decimal.Decimal `json:"avgCost"` // Weighted-average unit cost
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// StockMovement is one row of the append-only inventory log. QtyChange is
// signed: positive for receipts, negative for sales and issues. Rows are never
// updated or deleted.
type StockMovement struct {
	MovementID string          `json:"movementID"` // Primary Key (UUID)
	CompanyID  string          `json:"companyID"`
	ProductID  string          `json:"productID"`
	QtyChange  decimal.Decimal `json:"qtyChange"`
	Reason     MovementReason  `json:"reason"`
	RefType    string          `json:"refType"` // Nullable originating record type
	RefID      string          `json:"refID"`   // Nullable originating record id
	UnitCost   decimal.Decimal `json:"unitCost"`
	OccurredAt time.Time       `json:"occurredAt"`
	CreatedBy  string          `json:"createdBy"`
}

// StockLevel is a read view of a product joined with its movement aggregate.
type StockLevel struct {
	ProductID  string          `json:"productID"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CurrentQty decimal.Decimal `json:"currentQty"`
	AvgCost    decimal.Decimal `json:"avgCost"`
}
