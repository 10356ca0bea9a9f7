package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus mirrors the domain enumeration for persistence.
type TransactionStatus string

const (
	Pending TransactionStatus = "PENDING"
	Posted  TransactionStatus = "POSTED"
	Voided  TransactionStatus = "VOIDED"
)

// JournalTransaction is the journal_transactions row. The source triple
// (source_module, source_transaction_type, source_transaction_id) carries a
// unique index and is the posting idempotency key.
type JournalTransaction struct {
	TransactionID         string            `db:"transaction_id"`
	Date                  time.Time         `db:"transaction_date"`
	SourceModule          string            `db:"source_module"`
	SourceTransactionID   string            `db:"source_transaction_id"`
	SourceTransactionType string            `db:"source_transaction_type"`
	Description           string            `db:"description"`
	Status                TransactionStatus `db:"status"`
	BranchID              string            `db:"branch_id"`
	Amount                decimal.Decimal   `db:"amount"`
	AuditFields
}

// EntryLine is the journal_entry_lines row. Exactly one of debit/credit is
// non-zero; both are stored >= 0.
type EntryLine struct {
	LineID        string          `db:"line_id"`
	TransactionID string          `db:"transaction_id"`
	GLAccountID   string          `db:"gl_account_id"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	Description   string          `db:"description"`
	AuditFields
}
