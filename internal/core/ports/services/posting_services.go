package services

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/dto"
)

// PostingWriterSvc defines posting operations
type PostingWriterSvc interface {
	// PostTransaction is the inbound contract for business-transaction handlers:
	// it resolves the float account's mappings, builds balanced entry lines for
	// the source transaction type and posts them. A missing required mapping
	// defers the ledger entry (result marked deferred) without failing the
	// originating business operation.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, actorID string) (*dto.PostingResult, error)

	// Post persists an already-built, balanced entry set atomically. Idempotent
	// on the header's source identity triple: a repeated post returns the
	// existing transaction without applying deltas twice.
	Post(ctx context.Context, header domain.JournalTransaction, lines []domain.EntryLine) (*domain.JournalTransaction, error)
}

// PostingReaderSvc defines read operations for posted transactions
type PostingReaderSvc interface {
	// GetTransaction retrieves a journal transaction with its lines populated.
	GetTransaction(ctx context.Context, transactionID string) (*domain.JournalTransaction, error)

	// ListTransactions retrieves a paginated list of transactions for a branch.
	ListTransactions(ctx context.Context, branchID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// PostingSvcFacade combines all posting engine service interfaces
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}
