package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a journal transaction.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusPosted  TransactionStatus = "POSTED"
	StatusVoided  TransactionStatus = "VOIDED"
)

// Source modules recognized by the posting engine. The source triple
// (module, transaction type, transaction id) is the idempotency key.
const (
	SourceMomo            = "momo"
	SourcePower           = "power"
	SourceEZwich          = "e_zwich"
	SourceJumia           = "jumia"
	SourceAgencyBanking   = "agency_banking"
	SourceFloatOperations = "float_operations"
)

// EntryType classifies the accounting pattern of a business transaction.
// The entry builder maps each type to a declarative line rule.
type EntryType string

const (
	EntryServiceSale         EntryType = "service_sale"
	EntryLiabilityCollection EntryType = "liability_collection"
	EntrySettlementPayment   EntryType = "settlement_payment"
	EntryFloatRecharge       EntryType = "float_recharge"
	EntryFloatWithdrawal     EntryType = "float_withdrawal"
	EntryFloatTransfer       EntryType = "float_transfer"
	EntryReversal            EntryType = "reversal"

	// EntryAdjustment has no line rule of its own: an adjustment is the
	// reversal of the old transaction composed with a fresh posting of the
	// corrected one, each under its own source identity.
	EntryAdjustment EntryType = "adjustment"
)

// JournalTransaction is one atomic, balanced set of entry lines representing a
// single business event. Immutable once posted, except for the transition to
// VOIDED performed by the reversal engine (which adds a new transaction rather
// than mutating lines).
type JournalTransaction struct {
	TransactionID         string            `json:"transactionID"` // Primary Key (UUID)
	Date                  time.Time         `json:"date"`
	SourceModule          string            `json:"sourceModule"`
	SourceTransactionID   string            `json:"sourceTransactionID"`
	SourceTransactionType string            `json:"sourceTransactionType"`
	Description           string            `json:"description"`
	Status                TransactionStatus `json:"status"`
	BranchID              string            `json:"branchID"`
	Amount                decimal.Decimal   `json:"amount"` // Total debit side
	Lines                 []EntryLine       `json:"lines,omitempty"`
	AuditFields
}

// EntryLine is a single debit or credit against one GL account within a journal
// transaction. Exactly one of Debit/Credit is non-zero; per transaction the
// debit and credit sums are equal.
type EntryLine struct {
	LineID        string          `json:"lineID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	GLAccountID   string          `json:"glAccountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	AuditFields
}

// IsDebit reports whether the line carries its value on the debit side.
func (l EntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}
