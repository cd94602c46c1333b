package dto

// UpsertFiscalPeriodRequest opens or closes a fiscal period. PeriodKey is a
// YYYY-MM month key.
type UpsertFiscalPeriodRequest struct {
	PeriodKey string `json:"periodKey" binding:"required,len=7"`
	Status    string `json:"status" binding:"required,oneof=OPEN CLOSED"`
}
