package domain

// ReversalStatus tracks the state machine of a reversal request.
// PROCESSING records are written before posting begins so interrupted reversals
// are detectable; COMPLETED and FAILED are terminal for a given record.
type ReversalStatus string

const (
	ReversalProcessing ReversalStatus = "PROCESSING"
	ReversalCompleted  ReversalStatus = "COMPLETED"
	ReversalFailed     ReversalStatus = "FAILED"
)

// ReversalRecord ties an original journal transaction to the transaction that
// reverses it. A transaction with a COMPLETED record cannot be reversed again;
// a FAILED reversal is retried as a new record.
type ReversalRecord struct {
	ReversalID            string         `json:"reversalID"` // Primary Key (UUID)
	OriginalTransactionID string         `json:"originalTransactionID"`
	ReversalTransactionID *string        `json:"reversalTransactionID,omitempty"` // Set on completion
	Reason                string         `json:"reason"`
	RequestedBy           string         `json:"requestedBy"`
	Status                ReversalStatus `json:"status"`
	AuditFields
}
