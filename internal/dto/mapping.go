package dto

import (
	"time"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// UpsertMappingRequest re-maps a float account role to a GL account. Exactly one
// of GLAccountID / GLAccountCode must be set; a code is resolved to an identity
// at the boundary.
type UpsertMappingRequest struct {
	GLAccountID   string `json:"glAccountID"`
	GLAccountCode string `json:"glAccountCode"`
	Role          string `json:"role" binding:"required,mappingrole"`
}

// MappingResponse defines the data returned for an account mapping.
type MappingResponse struct {
	MappingID      string    `json:"mappingID"`
	FloatAccountID string    `json:"floatAccountID"`
	GLAccountID    string    `json:"glAccountID"`
	Role           string    `json:"role"`
	BranchID       string    `json:"branchID"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToMappingResponse converts a domain.AccountMapping to MappingResponse DTO.
func ToMappingResponse(m *domain.AccountMapping) MappingResponse {
	return MappingResponse{
		MappingID:      m.MappingID,
		FloatAccountID: m.FloatAccountID,
		GLAccountID:    m.GLAccountID,
		Role:           string(m.Role),
		BranchID:       m.BranchID,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToMappingResponses converts a slice of domain.AccountMapping to []MappingResponse.
func ToMappingResponses(ms []domain.AccountMapping) []MappingResponse {
	responses := make([]MappingResponse, len(ms))
	for i := range ms {
		responses[i] = ToMappingResponse(&ms[i])
	}
	return responses
}
