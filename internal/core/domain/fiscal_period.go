package domain

import "time"

// PeriodStatus indicates whether a fiscal period accepts new postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// DefaultPeriodStatus is the status assumed for a month with no fiscal_periods
// row. The default-open policy is intentional: periods are only recorded once
// an administrator closes (or explicitly reopens) them, so a missing row means
// posting is allowed.
const DefaultPeriodStatus = PeriodOpen

// FiscalPeriod is a calendar month treated as a lockable accounting window.
// Rows are created and toggled by administrative flows; the posting engine
// only reads them.
type FiscalPeriod struct {
	PeriodKey string       `json:"periodKey"` // YYYY-MM
	CompanyID string       `json:"companyID"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// PeriodKeyForDate derives the fiscal period key (YYYY-MM) for a date.
func PeriodKeyForDate(t time.Time) string {
	return t.Format("2006-01")
}
