package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// CreateGLAccountRequest provisions a GL account explicitly (outside the lazy
// getOrCreate path).
type CreateGLAccountRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,accountcategory"`
	BranchID string `json:"branchID" binding:"required"`
}

// GLAccountResponse defines the data returned for a GL account.
type GLAccountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	BranchID  string          `json:"branchID"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// VarianceResponse defines the data returned for a reconciliation variance.
type VarianceResponse struct {
	FloatAccountID string          `json:"floatAccountID"`
	BranchID       string          `json:"branchID"`
	GLAccountID    string          `json:"glAccountID"`
	FloatBalance   decimal.Decimal `json:"floatBalance"`
	GLBalance      decimal.Decimal `json:"glBalance"`
	Delta          decimal.Decimal `json:"delta"`
}

// ToGLAccountResponse converts a domain.GLAccount to GLAccountResponse DTO.
func ToGLAccountResponse(a *domain.GLAccount) GLAccountResponse {
	return GLAccountResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Category:  string(a.Category),
		BranchID:  a.BranchID,
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// ToGLAccountResponses converts a slice of domain.GLAccount to []GLAccountResponse.
func ToGLAccountResponses(as []domain.GLAccount) []GLAccountResponse {
	responses := make([]GLAccountResponse, len(as))
	for i := range as {
		responses[i] = ToGLAccountResponse(&as[i])
	}
	return responses
}

// ToVarianceResponse converts a domain.VarianceReport to VarianceResponse DTO.
func ToVarianceResponse(v *domain.VarianceReport) VarianceResponse {
	return VarianceResponse{
		FloatAccountID: v.FloatAccountID,
		BranchID:       v.BranchID,
		GLAccountID:    v.GLAccountID,
		FloatBalance:   v.FloatBalance,
		GLBalance:      v.GLBalance,
		Delta:          v.Delta,
	}
}

// ToVarianceResponses converts a slice of domain.VarianceReport to []VarianceResponse.
func ToVarianceResponses(vs []domain.VarianceReport) []VarianceResponse {
	responses := make([]VarianceResponse, len(vs))
	for i := range vs {
		responses[i] = ToVarianceResponse(&vs[i])
	}
	return responses
}
