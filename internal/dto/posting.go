package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// PostTransactionRequest is the inbound payload from business-transaction
// handlers. The triple (SourceModule, SourceTransactionType,
// SourceTransactionID) is the idempotency key: resending the same request is
// safe.
type PostTransactionRequest struct {
	SourceModule          string            `json:"sourceModule" binding:"required"`
	SourceTransactionType string            `json:"sourceTransactionType" binding:"required"`
	SourceTransactionID   string            `json:"sourceTransactionID" binding:"required"`
	Amount                decimal.Decimal   `json:"amount" binding:"required"`
	Fee                   decimal.Decimal   `json:"fee"`
	Commission            decimal.Decimal   `json:"commission"`
	FloatAccountID        string            `json:"floatAccountID" binding:"required"`
	CounterFloatAccountID string            `json:"counterFloatAccountID,omitempty"` // destination float for float_transfer
	BranchID              string            `json:"branchID" binding:"required"`
	Description           string            `json:"description"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

// PostingResult reports the outcome of PostTransaction to the business caller.
// Deferred postings (missing mapping) still report success for the originating
// operation; the gap is recorded for reconciliation.
type PostingResult struct {
	Success       bool    `json:"success"`
	TransactionID *string `json:"transactionID,omitempty"`
	Deferred      bool    `json:"deferred"`
	Error         string  `json:"error,omitempty"`
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	GLAccountID string          `json:"glAccountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// TransactionResponse defines the data returned for a journal transaction.
type TransactionResponse struct {
	TransactionID         string              `json:"transactionID"`
	Date                  time.Time           `json:"date"`
	SourceModule          string              `json:"sourceModule"`
	SourceTransactionType string              `json:"sourceTransactionType"`
	SourceTransactionID   string              `json:"sourceTransactionID"`
	Description           string              `json:"description"`
	Status                string              `json:"status"`
	BranchID              string              `json:"branchID"`
	Amount                decimal.Decimal     `json:"amount"`
	Lines                 []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	CreatedBy             string              `json:"createdBy"`
}

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is the paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ListLinesParams holds pagination parameters for listing entry lines.
type ListLinesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse is the paginated entry line listing.
type ListLinesResponse struct {
	Lines     []EntryLineResponse `json:"lines"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to EntryLineResponse DTO.
func ToEntryLineResponse(line *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		GLAccountID: line.GLAccountID,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Description: line.Description,
	}
}

// ToEntryLineResponses converts a slice of domain.EntryLine to []EntryLineResponse.
func ToEntryLineResponses(lines []domain.EntryLine) []EntryLineResponse {
	responses := make([]EntryLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToEntryLineResponse(&lines[i])
	}
	return responses
}

// ToTransactionResponse converts a domain.JournalTransaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.JournalTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		Date:                  txn.Date,
		SourceModule:          txn.SourceModule,
		SourceTransactionType: txn.SourceTransactionType,
		SourceTransactionID:   txn.SourceTransactionID,
		Description:           txn.Description,
		Status:                string(txn.Status),
		BranchID:              txn.BranchID,
		Amount:                txn.Amount,
		Lines:                 ToEntryLineResponses(txn.Lines),
		CreatedAt:             txn.CreatedAt,
		CreatedBy:             txn.CreatedBy,
	}
}
