package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portsrepo "github.com/bizfolio/biz_management_app/internal/core/ports/repositories"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/bizfolio/biz_management_app/internal/middleware"
)

// postingService builds balanced entry sets for specific business events and
// delegates to the journal posting engine. It owns no balance or period
// logic; batches it constructs are balanced by construction and the engine
// re-checks them anyway.
type postingService struct {
	journalSvc  portssvc.JournalSvcFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	resolver    *accountResolver
}

// NewPostingService creates the domain posting helpers.
func NewPostingService(journalSvc portssvc.JournalSvcFacade, accountRepo portsrepo.AccountReader, invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.PostingSvcFacade {
	return &postingService{
		journalSvc:  journalSvc,
		invoiceRepo: invoiceRepo,
		resolver:    newAccountResolver(accountRepo),
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// VerifyRequiredAccounts checks that all required named accounts exist and
// are active. Run at startup so a misconfigured chart of accounts fails fast
// instead of surfacing on the first posting.
func (s *postingService) VerifyRequiredAccounts(ctx context.Context, companyID string) error {
	return s.resolver.VerifyRequired(ctx, companyID)
}

func requirePositive(name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive, got %s", apperrors.ErrValidation, name, amount)
	}
	return nil
}

// PostARInvoice posts the accounting effect of an issued invoice:
// AR debit for amount+tax, revenue credit for amount, tax payable credit for
// tax when positive. Two or three lines, balanced by construction.
func (s *postingService) PostARInvoice(ctx context.Context, companyID string, req dto.PostARInvoiceRequest, userID string) (*domain.Journal, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.TaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: taxAmount must not be negative", apperrors.ErrValidation)
	}

	ar, err := s.resolver.Resolve(ctx, companyID, AccountAR)
	if err != nil {
		return nil, err
	}
	revenue, err := s.resolver.Resolve(ctx, companyID, AccountSalesRevenue)
	if err != nil {
		return nil, err
	}

	memo := fmt.Sprintf("Invoice %s", req.InvoiceID)
	if req.CustomerName != "" {
		memo = fmt.Sprintf("%s - %s", memo, req.CustomerName)
	}

	entries := []dto.CreateEntryRequest{
		{AccountID: ar.AccountID, Debit: req.Amount.Add(req.TaxAmount), Memo: memo},
		{AccountID: revenue.AccountID, Credit: req.Amount, Memo: memo},
	}
	if req.TaxAmount.IsPositive() {
		taxPayable, err := s.resolver.Resolve(ctx, companyID, AccountTaxPayable)
		if err != nil {
			return nil, err
		}
		entries = append(entries, dto.CreateEntryRequest{
			AccountID: taxPayable.AccountID,
			Credit:    req.TaxAmount,
			Memo:      memo,
			TaxCode:   req.TaxCode,
		})
	}

	return s.journalSvc.CreateJournalBatch(ctx, companyID, dto.CreateJournalBatchRequest{
		Date:        req.Date,
		Description: memo,
		SourceType:  string(domain.SourceARInvoice),
		SourceID:    req.InvoiceID,
		Entries:     entries,
	}, userID)
}

// PostCOGS recognizes cost of goods sold: COGS debit, inventory credit.
func (s *postingService) PostCOGS(ctx context.Context, companyID string, req dto.PostCOGSRequest, userID string) (*domain.Journal, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	cogs, err := s.resolver.Resolve(ctx, companyID, AccountCostOfGoodsSold)
	if err != nil {
		return nil, err
	}
	inventory, err := s.resolver.Resolve(ctx, companyID, AccountInventory)
	if err != nil {
		return nil, err
	}

	memo := fmt.Sprintf("COGS for %s", req.ReferenceID)
	return s.journalSvc.CreateJournalBatch(ctx, companyID, dto.CreateJournalBatchRequest{
		Date:        req.Date,
		Description: memo,
		SourceType:  string(domain.SourceCOGS),
		SourceID:    req.ReferenceID,
		Entries: []dto.CreateEntryRequest{
			{AccountID: cogs.AccountID, Debit: req.Amount, Memo: memo},
			{AccountID: inventory.AccountID, Credit: req.Amount, Memo: memo},
		},
	}, userID)
}

// PostARPayment records a customer payment: cash (or the named account)
// debit, AR credit. When the payment references an invoice, the paid amount
// is applied to it after the batch commits.
func (s *postingService) PostARPayment(ctx context.Context, companyID string, req dto.PostARPaymentRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	cashName := req.CashAccountName
	if cashName == "" {
		cashName = AccountCash
	}
	cash, err := s.resolver.Resolve(ctx, companyID, cashName)
	if err != nil {
		return nil, err
	}
	ar, err := s.resolver.Resolve(ctx, companyID, AccountAR)
	if err != nil {
		return nil, err
	}

	memo := fmt.Sprintf("Payment receipt %s", req.ReceiptID)
	journal, err := s.journalSvc.CreateJournalBatch(ctx, companyID, dto.CreateJournalBatchRequest{
		Date:        req.Date,
		Description: memo,
		SourceType:  string(domain.SourceARPayment),
		SourceID:    req.ReceiptID,
		Entries: []dto.CreateEntryRequest{
			{AccountID: cash.AccountID, Debit: req.Amount, Memo: memo},
			{AccountID: ar.AccountID, Credit: req.Amount, Memo: memo},
		},
	}, userID)
	if err != nil {
		return nil, err
	}

	if req.InvoiceID != "" {
		if err := s.invoiceRepo.ApplyPayment(ctx, companyID, req.InvoiceID, req.Amount, userID); err != nil {
			// The ledger entry is committed; invoice bookkeeping lagging
			// behind is reported but does not undo the posting.
			logger.Error("Failed to apply payment to invoice",
				slog.String("invoice_id", req.InvoiceID),
				slog.String("journal_id", journal.JournalID),
				slog.String("error", err.Error()))
			return journal, fmt.Errorf("payment posted (batch %s) but invoice update failed: %w", journal.JournalID, err)
		}
	}

	return journal, nil
}

// RecordSale posts one sale end-to-end in a single balanced batch: AR debit
// and revenue credit for the sale amount, plus COGS debit and inventory
// credit for the cost. Revenue recognition and inventory consumption commit
// atomically so the books balance at every point in time.
func (s *postingService) RecordSale(ctx context.Context, companyID string, req dto.RecordSaleRequest, userID string) (*domain.Journal, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.COGS.IsNegative() {
		return nil, fmt.Errorf("%w: cogs must not be negative", apperrors.ErrValidation)
	}

	ar, err := s.resolver.Resolve(ctx, companyID, AccountAR)
	if err != nil {
		return nil, err
	}
	revenue, err := s.resolver.Resolve(ctx, companyID, AccountSalesRevenue)
	if err != nil {
		return nil, err
	}

	memo := fmt.Sprintf("Sale %s - customer %s", req.InvoiceID, req.CustomerID)
	entries := []dto.CreateEntryRequest{
		{AccountID: ar.AccountID, Debit: req.Amount, Memo: memo},
		{AccountID: revenue.AccountID, Credit: req.Amount, Memo: memo},
	}

	if req.COGS.IsPositive() {
		cogs, err := s.resolver.Resolve(ctx, companyID, AccountCostOfGoodsSold)
		if err != nil {
			return nil, err
		}
		inventory, err := s.resolver.Resolve(ctx, companyID, AccountInventory)
		if err != nil {
			return nil, err
		}
		entries = append(entries,
			dto.CreateEntryRequest{AccountID: cogs.AccountID, Debit: req.COGS, Memo: memo},
			dto.CreateEntryRequest{AccountID: inventory.AccountID, Credit: req.COGS, Memo: memo},
		)
	}

	return s.journalSvc.CreateJournalBatch(ctx, companyID, dto.CreateJournalBatchRequest{
		Date:        req.Date,
		Description: memo,
		SourceType:  string(domain.SourceSale),
		SourceID:    req.InvoiceID,
		Entries:     entries,
	}, userID)
}

// IssueInvoice creates the invoice record and posts its journal batch.
func (s *postingService) IssueInvoice(ctx context.Context, companyID string, req dto.IssueInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid issueDate %q", apperrors.ErrValidation, req.IssueDate)
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dueDate %q", apperrors.ErrValidation, req.DueDate)
	}
	if dueDate.Before(issueDate) {
		return nil, fmt.Errorf("%w: dueDate precedes issueDate", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:    uuid.NewString(),
		CompanyID:    companyID,
		Number:       req.Number,
		CustomerName: req.CustomerName,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Total:        req.Amount.Add(req.TaxAmount),
		PaidAmount:   decimal.Zero,
		Status:       domain.InvoiceOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	if _, err := s.PostARInvoice(ctx, companyID, dto.PostARInvoiceRequest{
		Date:         req.IssueDate,
		InvoiceID:    invoice.InvoiceID,
		Amount:       req.Amount,
		TaxAmount:    req.TaxAmount,
		TaxCode:      req.TaxCode,
		CustomerName: req.CustomerName,
	}, userID); err != nil {
		return nil, err
	}

	return &invoice, nil
}

// GetInvoice retrieves a single invoice scoped to the company.
func (s *postingService) GetInvoice(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListOpenInvoices retrieves invoices with an outstanding balance.
func (s *postingService) ListOpenInvoices(ctx context.Context, companyID string) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListOpenInvoices(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open invoices: %w", err)
	}
	return invoices, nil
}
