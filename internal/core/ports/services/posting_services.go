package services

import (
	"context"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/bizfolio/biz_management_app/internal/dto"
)

// PostingSvcFacade builds the correct balanced entry sets for specific
// business events and delegates to the journal posting engine. Required
// accounts are resolved by their stable names; a missing account is a fatal
// chart-of-accounts configuration error.
type PostingSvcFacade interface {
	// VerifyRequiredAccounts checks at startup that every account role the
	// posting helpers depend on exists in the company's chart of accounts.
	VerifyRequiredAccounts(ctx context.Context, companyID string) error

	// PostARInvoice debits AR for amount+tax, credits revenue for amount, and
	// credits tax payable for tax when positive.
	PostARInvoice(ctx context.Context, companyID string, req dto.PostARInvoiceRequest, userID string) (*domain.Journal, error)

	// PostCOGS debits cost of goods sold and credits inventory.
	PostCOGS(ctx context.Context, companyID string, req dto.PostCOGSRequest, userID string) (*domain.Journal, error)

	// PostARPayment debits cash (or a named account) and credits AR, applying
	// the payment to an invoice when one is referenced.
	PostARPayment(ctx context.Context, companyID string, req dto.PostARPaymentRequest, userID string) (*domain.Journal, error)

	// RecordSale posts a sale end-to-end in a single balanced batch:
	// AR/revenue recognition plus COGS/inventory consumption.
	RecordSale(ctx context.Context, companyID string, req dto.RecordSaleRequest, userID string) (*domain.Journal, error)

	// IssueInvoice creates the invoice record and posts its journal batch.
	IssueInvoice(ctx context.Context, companyID string, req dto.IssueInvoiceRequest, userID string) (*domain.Invoice, error)

	// GetInvoice retrieves a single invoice.
	GetInvoice(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error)

	// ListOpenInvoices retrieves invoices with an outstanding balance.
	ListOpenInvoices(ctx context.Context, companyID string) ([]domain.Invoice, error)
}
