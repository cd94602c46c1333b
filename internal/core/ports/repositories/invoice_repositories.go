package repositories

import (
	"context"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceRepositoryFacade provides access to customer invoice records.
type InvoiceRepositoryFacade interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByID retrieves a single invoice.
	FindInvoiceByID(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)

	// ListOpenInvoices retrieves all invoices with an outstanding balance.
	ListOpenInvoices(ctx context.Context, companyID string) ([]domain.Invoice, error)

	// ApplyPayment increases an invoice's paid amount, marking it PAID when
	// the outstanding balance reaches zero.
	ApplyPayment(ctx context.Context, companyID, invoiceID string, amount decimal.Decimal, userID string) error
}
