package services

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/dto"
)

// ReversalSvcFacade defines the reversal engine's service surface
type ReversalSvcFacade interface {
	// RequestReversal validates eligibility, posts the mirror-image transaction
	// and voids the original, tracking progress in a ReversalRecord. Returns
	// apperrors.ErrNotEligible when a precondition fails.
	RequestReversal(ctx context.Context, req dto.RequestReversalRequest, actorID string) (*domain.ReversalRecord, error)

	// AdjustTransaction corrects a posted transaction by reversing it and
	// posting the corrected replacement as a fresh transaction. The replacement
	// carries its own source identity, so a retried adjustment is safe on both
	// halves.
	AdjustTransaction(ctx context.Context, req dto.AdjustTransactionRequest, actorID string) (*dto.AdjustmentResult, error)

	// GetReversal retrieves a reversal record by its identity.
	GetReversal(ctx context.Context, reversalID string) (*domain.ReversalRecord, error)

	// ListReversalsForTransaction retrieves the reversal history of a transaction.
	ListReversalsForTransaction(ctx context.Context, transactionID string) ([]domain.ReversalRecord, error)
}
