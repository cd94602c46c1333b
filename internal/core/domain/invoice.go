package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the payment state of a customer invoice.
type InvoiceStatus string

const (
	InvoiceOpen InvoiceStatus = "OPEN"
	InvoicePaid InvoiceStatus = "PAID"
)

// Invoice is a customer receivable backing the AR aging report and payment
// recording. The accounting effect of an invoice lives in the journal; this
// record tracks the open balance and due date.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"` // Primary Key (UUID)
	CompanyID    string          `json:"companyID"`
	Number       string          `json:"number"` // Human-facing invoice number
	CustomerName string          `json:"customerName"`
	IssueDate    time.Time       `json:"issueDate"`
	DueDate      time.Time       `json:"dueDate"`
	Total        decimal.Decimal `json:"total"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Status       InvoiceStatus   `json:"status"`
	AuditFields
}

// Outstanding returns the unpaid portion of the invoice.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount)
}

// DaysOverdue returns floor((today - due date) / 1 day), clamped to >= 0.
func (i Invoice) DaysOverdue(today time.Time) int {
	days := int(today.Sub(i.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
