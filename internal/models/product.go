package models

import "github.com/shopspring/decimal"

// Product is the products table row. AvgCost is the running weighted-average
// unit cost; quantity on hand comes from the v_product_stock view.
type Product struct {
	ProductID string          `db:"product_id"`
	CompanyID string          `db:"company_id"`
	SKU       string          `db:"sku"`
	Name      string          `db:"name"`
	AvgCost   decimal.Decimal `db:"avg_cost"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}
