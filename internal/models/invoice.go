package models

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

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID    string          `db:"invoice_id"`
	CompanyID    string          `db:"company_id"`
	Number       string          `db:"number"`
	CustomerName string          `db:"customer_name"`
	IssueDate    time.Time       `db:"issue_date"`
	DueDate      time.Time       `db:"due_date"`
	Total        decimal.Decimal `db:"total"`
	PaidAmount   decimal.Decimal `db:"paid_amount"`
	Status       InvoiceStatus   `db:"status"`
	AuditFields
}
