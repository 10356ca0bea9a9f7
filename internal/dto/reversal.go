package dto

import (
	"time"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// RequestReversalRequest identifies the transaction to reverse by its source
// identity, the way reversal handlers see it.
type RequestReversalRequest struct {
	SourceModule          string `json:"sourceModule" binding:"required"`
	SourceTransactionType string `json:"sourceTransactionType" binding:"required"`
	SourceTransactionID   string `json:"sourceTransactionID" binding:"required"`
	Reason                string `json:"reason" binding:"required"`
}

// AdjustTransactionRequest corrects a previously posted transaction: the
// original is reversed and the corrected replacement is posted under its own
// source identity.
type AdjustTransactionRequest struct {
	Original    RequestReversalRequest `json:"original" binding:"required"`
	Replacement PostTransactionRequest `json:"replacement" binding:"required"`
}

// AdjustmentResult reports both halves of an adjustment.
type AdjustmentResult struct {
	Reversal    ReversalResponse `json:"reversal"`
	Replacement PostingResult    `json:"replacement"`
}

// ReversalResponse defines the data returned for a reversal record.
type ReversalResponse struct {
	ReversalID            string    `json:"reversalID"`
	OriginalTransactionID string    `json:"originalTransactionID"`
	ReversalTransactionID *string   `json:"reversalTransactionID,omitempty"`
	Reason                string    `json:"reason"`
	RequestedBy           string    `json:"requestedBy"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToReversalResponse converts a domain.ReversalRecord to ReversalResponse DTO.
func ToReversalResponse(r *domain.ReversalRecord) ReversalResponse {
	return ReversalResponse{
		ReversalID:            r.ReversalID,
		OriginalTransactionID: r.OriginalTransactionID,
		ReversalTransactionID: r.ReversalTransactionID,
		Reason:                r.Reason,
		RequestedBy:           r.RequestedBy,
		Status:                string(r.Status),
		CreatedAt:             r.CreatedAt,
	}
}

// ToReversalResponses converts a slice of domain.ReversalRecord to []ReversalResponse.
func ToReversalResponses(rs []domain.ReversalRecord) []ReversalResponse {
	responses := make([]ReversalResponse, len(rs))
	for i := range rs {
		responses[i] = ToReversalResponse(&rs[i])
	}
	return responses
}
