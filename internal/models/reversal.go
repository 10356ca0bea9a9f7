package models

// ReversalStatus mirrors the domain enumeration for persistence.
type ReversalStatus string

// ReversalRecord is the reversal_records row.
type ReversalRecord struct {
	ReversalID            string         `db:"reversal_id"`
	OriginalTransactionID string         `db:"original_transaction_id"`
	ReversalTransactionID *string        `db:"reversal_transaction_id"` // NULL until completed
	Reason                string         `db:"reason"`
	RequestedBy           string         `db:"requested_by"`
	Status                ReversalStatus `db:"status"`
	AuditFields
}
