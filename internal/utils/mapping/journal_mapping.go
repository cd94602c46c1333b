package mapping

import (
	"github.com/bizfolio/biz_management_app/internal/core/domain"
	"github.com/bizfolio/biz_management_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		CompanyID:          d.CompanyID,
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		SourceType:         string(d.SourceType),
		SourceID:           d.SourceID,
		Status:             models.JournalStatus(d.Status),
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		Amount:             d.Amount,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		CompanyID:          m.CompanyID,
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		SourceType:         domain.SourceType(m.SourceType),
		SourceID:           m.SourceID,
		Status:             domain.JournalStatus(m.Status),
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		Amount:             m.Amount,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		JournalID:      d.JournalID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Memo:           d.Memo,
		TaxCode:        d.TaxCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		RunningBalance: d.RunningBalance,
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		JournalID:      m.JournalID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Memo:           m.Memo,
		TaxCode:        m.TaxCode,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		RunningBalance: m.RunningBalance,
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries.
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
