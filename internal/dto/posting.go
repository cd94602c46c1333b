package dto

import (
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostARInvoiceRequest posts the accounting effect of an issued invoice:
// AR debit for amount+tax, revenue credit for amount, tax payable credit for
// tax when positive.
type PostARInvoiceRequest struct {
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
	InvoiceID    string          `json:"invoiceID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	TaxCode      string          `json:"taxCode"`
	CustomerName string          `json:"customerName"`
}

// PostCOGSRequest recognizes cost of goods sold against inventory.
type PostCOGSRequest struct {
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	ReferenceID string          `json:"referenceID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// PostARPaymentRequest records a customer payment: cash (or a named account)
// debit, AR credit. InvoiceID optionally applies the payment to an invoice.
type PostARPaymentRequest struct {
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
	ReceiptID       string          `json:"receiptID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CashAccountName string          `json:"cashAccountName"`
	InvoiceID       string          `json:"invoiceID"`
}

// RecordSaleRequest posts a complete sale in one batch: revenue recognition
// and cost-of-goods-sold consumption together.
type RecordSaleRequest struct {
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	InvoiceID  string          `json:"invoiceID" binding:"required"`
	CustomerID string          `json:"customerID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	COGS       decimal.Decimal `json:"cogs"`
}

// IssueInvoiceRequest creates an invoice record and posts its journal batch.
type IssueInvoiceRequest struct {
	Number       string          `json:"number" binding:"required"`
	CustomerName string          `json:"customerName" binding:"required"`
	IssueDate    string          `json:"issueDate" binding:"required,datetime=2006-01-02"`
	DueDate      string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	TaxCode      string          `json:"taxCode"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID    string          `json:"invoiceID"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customerName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	Total        decimal.Decimal `json:"total"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Status       string          `json:"status"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse.
func ToInvoiceResponse(i *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:    i.InvoiceID,
		Number:       i.Number,
		CustomerName: i.CustomerName,
		IssueDate:    i.IssueDate,
		DueDate:      i.DueDate,
		Total:        i.Total,
		PaidAmount:   i.PaidAmount,
		Outstanding:  i.Outstanding(),
		Status:       string(i.Status),
	}
}
