package repositories

import (
	"context"
	"time"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// ReversalReader defines read operations for reversal records
type ReversalReader interface {
	// FindReversalByID retrieves a reversal record by its identity.
	FindReversalByID(ctx context.Context, reversalID string) (*domain.ReversalRecord, error)

	// FindCompletedReversalForTransaction retrieves the COMPLETED reversal record
	// for an original transaction, or apperrors.ErrNotFound if none exists.
	FindCompletedReversalForTransaction(ctx context.Context, originalTransactionID string) (*domain.ReversalRecord, error)

	// ListReversalsForTransaction retrieves all reversal records (any status)
	// referencing an original transaction, newest first.
	ListReversalsForTransaction(ctx context.Context, originalTransactionID string) ([]domain.ReversalRecord, error)
}

// ReversalWriter defines write operations for reversal records
type ReversalWriter interface {
	// SaveReversal persists a new reversal record (normally status PROCESSING).
	SaveReversal(ctx context.Context, record domain.ReversalRecord) error

	// UpdateReversalOutcome transitions a reversal record to COMPLETED or FAILED
	// and links the reversal transaction when present.
	UpdateReversalOutcome(ctx context.Context, reversalID string, status domain.ReversalStatus, reversalTransactionID *string, updatedBy string, updatedAt time.Time) error
}

// ReversalRepositoryFacade combines all reversal repository interfaces
type ReversalRepositoryFacade interface {
	ReversalReader
	ReversalWriter
}
