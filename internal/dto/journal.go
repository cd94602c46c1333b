package dto

import (
	"time"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one debit/credit line of a batch being posted.
// Exactly one of debit/credit is normally non-zero; the engine does not
// forbid both, but callers should avoid it outside adjustment cases.
type CreateEntryRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
	TaxCode   string          `json:"taxCode"`
}

// CreateJournalBatchRequest is the payload for posting a journal batch.
// Date is an ISO date string (YYYY-MM-DD); its first seven characters are the
// fiscal period key.
type CreateJournalBatchRequest struct {
	Date        string               `json:"date" binding:"required,datetime=2006-01-02"`
	Description string               `json:"description" binding:"required"`
	SourceType  string               `json:"sourceType"`
	SourceID    string               `json:"sourceID"`
	Entries     []CreateEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// ReverseJournalBatchRequest is the payload for reversing a committed batch.
type ReverseJournalBatchRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Reason string `json:"reason"`
}

// EntryResponse defines the data returned for a journal entry line.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	LineNo         int             `json:"lineNo"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Memo           string          `json:"memo"`
	TaxCode        string          `json:"taxCode,omitempty"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// JournalResponse defines the data returned for a journal batch.
type JournalResponse struct {
	JournalID          string          `json:"journalID"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	SourceType         string          `json:"sourceType"`
	SourceID           string          `json:"sourceID"`
	Status             string          `json:"status"`
	Amount             decimal.Decimal `json:"amount"`
	OriginalJournalID  *string         `json:"originalJournalID,omitempty"`
	ReversingJournalID *string         `json:"reversingJournalID,omitempty"`
	Entries            []EntryResponse `json:"entries,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
}

// ListJournalsParams holds query parameters for listing journal batches.
type ListJournalsParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
	IncludeEntries   bool    `form:"includeEntries"`
}

// ListJournalsResponse is the paginated journal list payload.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListEntriesParams holds query parameters for an account ledger listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is the paginated account ledger payload.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		LineNo:         e.LineNo,
		AccountID:      e.AccountID,
		Debit:          e.Debit,
		Credit:         e.Credit,
		Memo:           e.Memo,
		TaxCode:        e.TaxCode,
		RunningBalance: e.RunningBalance,
	}
}

// ToEntryResponses converts a slice of domain entries to responses.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate,
		Description:        j.Description,
		SourceType:         string(j.SourceType),
		SourceID:           j.SourceID,
		Status:             string(j.Status),
		Amount:             j.Amount,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
	}
	if len(j.Entries) > 0 {
		resp.Entries = ToEntryResponses(j.Entries)
	}
	return resp
}
