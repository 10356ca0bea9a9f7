package mapping

import (
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/models"
)

// ToModelJournalTransaction converts a domain JournalTransaction to its model
func ToModelJournalTransaction(d domain.JournalTransaction) models.JournalTransaction {
	return models.JournalTransaction{
		TransactionID:         d.TransactionID,
		Date:                  d.Date,
		SourceModule:          d.SourceModule,
		SourceTransactionID:   d.SourceTransactionID,
		SourceTransactionType: d.SourceTransactionType,
		Description:           d.Description,
		Status:                models.TransactionStatus(d.Status),
		BranchID:              d.BranchID,
		Amount:                d.Amount,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalTransaction converts a model JournalTransaction to its domain form
func ToDomainJournalTransaction(m models.JournalTransaction) domain.JournalTransaction {
	return domain.JournalTransaction{
		TransactionID:         m.TransactionID,
		Date:                  m.Date,
		SourceModule:          m.SourceModule,
		SourceTransactionID:   m.SourceTransactionID,
		SourceTransactionType: m.SourceTransactionType,
		Description:           m.Description,
		Status:                domain.TransactionStatus(m.Status),
		BranchID:              m.BranchID,
		Amount:                m.Amount,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to its model
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:        d.LineID,
		TransactionID: d.TransactionID,
		GLAccountID:   d.GLAccountID,
		Debit:         d.Debit,
		Credit:        d.Credit,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntryLine converts a model EntryLine to its domain form
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:        m.LineID,
		TransactionID: m.TransactionID,
		GLAccountID:   m.GLAccountID,
		Debit:         m.Debit,
		Credit:        m.Credit,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntryLineSlice converts a slice of model EntryLines to domain EntryLines
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}

// ToModelReversalRecord converts a domain ReversalRecord to its model
func ToModelReversalRecord(d domain.ReversalRecord) models.ReversalRecord {
	return models.ReversalRecord{
		ReversalID:            d.ReversalID,
		OriginalTransactionID: d.OriginalTransactionID,
		ReversalTransactionID: d.ReversalTransactionID,
		Reason:                d.Reason,
		RequestedBy:           d.RequestedBy,
		Status:                models.ReversalStatus(d.Status),
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReversalRecord converts a model ReversalRecord to its domain form
func ToDomainReversalRecord(m models.ReversalRecord) domain.ReversalRecord {
	return domain.ReversalRecord{
		ReversalID:            m.ReversalID,
		OriginalTransactionID: m.OriginalTransactionID,
		ReversalTransactionID: m.ReversalTransactionID,
		Reason:                m.Reason,
		RequestedBy:           m.RequestedBy,
		Status:                domain.ReversalStatus(m.Status),
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
