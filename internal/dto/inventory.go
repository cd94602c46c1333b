package dto

import (
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for registering a product.
type CreateProductRequest struct {
	SKU  string `json:"sku" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// ReceivePurchaseLineRequest records a purchase receipt into stock, blending
// the receipt into the product's weighted-average cost.
type ReceivePurchaseLineRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"required"`
	RefType   string          `json:"refType"`
	RefID     string          `json:"refID"`
}

// AdjustStockRequest appends one signed stock movement. Date defaults to
// today and must fall in an open fiscal period.
type AdjustStockRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	QtyChange decimal.Decimal `json:"qtyChange" binding:"required"`
	Reason    string          `json:"reason" binding:"required,movementreason"`
	RefType   string          `json:"refType"`
	RefID     string          `json:"refID"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Date      *string         `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	AvgCost   decimal.Decimal `json:"avgCost"`
	IsActive  bool            `json:"isActive"`
}

// StockLevelResponse is one row of the stock-on-hand listing.
type StockLevelResponse struct {
	ProductID  string          `json:"productID"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CurrentQty decimal.Decimal `json:"currentQty"`
	AvgCost    decimal.Decimal `json:"avgCost"`
}

// CogsQuoteResponse is the cost-of-goods-sold quote for a prospective sale.
type CogsQuoteResponse struct {
	ProductID string          `json:"productID"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToProductResponse converts a domain.Product to ProductResponse.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		SKU:       p.SKU,
		Name:      p.Name,
		AvgCost:   p.AvgCost,
		IsActive:  p.IsActive,
	}
}

// ToStockLevelResponses converts domain stock levels to responses.
func ToStockLevelResponses(levels []domain.StockLevel) []StockLevelResponse {
	responses := make([]StockLevelResponse, len(levels))
	for i, l := range levels {
		responses[i] = StockLevelResponse{
			ProductID:  l.ProductID,
			SKU:        l.SKU,
			Name:       l.Name,
			CurrentQty: l.CurrentQty,
			AvgCost:    l.AvgCost,
		}
	}
	return responses
}
