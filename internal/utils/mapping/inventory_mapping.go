package mapping

import (
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/bizfolio/biz_management_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		CompanyID:   d.CompanyID,
		SKU:         d.SKU,
		Name:        d.Name,
		AvgCost:     d.AvgCost,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		CompanyID:   m.CompanyID,
		SKU:         m.SKU,
		Name:        m.Name,
		AvgCost:     m.AvgCost,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStockMovement converts a domain StockMovement to a model StockMovement.
func ToModelStockMovement(d domain.StockMovement) models.StockMovement {
	return models.StockMovement{
		MovementID: d.MovementID,
		CompanyID:  d.CompanyID,
		ProductID:  d.ProductID,
		QtyChange:  d.QtyChange,
		Reason:     string(d.Reason),
		RefType:    d.RefType,
		RefID:      d.RefID,
		UnitCost:   d.UnitCost,
		OccurredAt: d.OccurredAt,
		CreatedBy:  d.CreatedBy,
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement.
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID: m.MovementID,
		CompanyID:  m.CompanyID,
		ProductID:  m.ProductID,
		QtyChange:  m.QtyChange,
		Reason:     domain.MovementReason(m.Reason),
		RefType:    m.RefType,
		RefID:      m.RefID,
		UnitCost:   m.UnitCost,
		OccurredAt: m.OccurredAt,
		CreatedBy:  m.CreatedBy,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:    m.InvoiceID,
		CompanyID:    m.CompanyID,
		Number:       m.Number,
		CustomerName: m.CustomerName,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Total:        m.Total,
		PaidAmount:   m.PaidAmount,
		Status:       domain.InvoiceStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoice converts a domain Invoice to a model Invoice.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:    d.InvoiceID,
		CompanyID:    d.CompanyID,
		Number:       d.Number,
		CustomerName: d.CustomerName,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		Total:        d.Total,
		PaidAmount:   d.PaidAmount,
		Status:       models.InvoiceStatus(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}
