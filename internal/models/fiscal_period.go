package models

// PeriodStatus indicates whether a fiscal period accepts new postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is the fiscal_periods table row. Absence of a row for a month
// means the month is open.
type FiscalPeriod struct {
	PeriodKey string       `db:"period_key"` // YYYY-MM
	CompanyID string       `db:"company_id"`
	Status    PeriodStatus `db:"status"`
	AuditFields
}
