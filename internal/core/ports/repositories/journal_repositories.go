package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// JournalReader defines read operations for journal transaction data
type JournalReader interface {
	// FindTransactionByID retrieves a journal transaction header by its identity.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error)

	// FindTransactionBySource retrieves a transaction by its source identity
	// triple. This is the idempotency lookup for retried postings.
	FindTransactionBySource(ctx context.Context, sourceModule, sourceTransactionType, sourceTransactionID string) (*domain.JournalTransaction, error)

	// ListTransactionsByBranch retrieves a paginated list of transactions for a
	// branch using token-based pagination.
	ListTransactionsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.JournalTransaction, *string, error)
}

// JournalWriter defines write operations for journal transaction data
type JournalWriter interface {
	// SaveTransaction persists the transaction header with all its lines and
	// applies the given balance deltas to the GL accounts, inside one database
	// transaction. No partially posted transaction is ever observable.
	SaveTransaction(ctx context.Context, txn domain.JournalTransaction, lines []domain.EntryLine, deltas map[string]decimal.Decimal) error

	// UpdateTransactionStatus transitions a transaction's status (e.g. POSTED ->
	// VOIDED during reversal).
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error
}

// EntryLineReader defines read operations for entry line data
type EntryLineReader interface {
	// FindLinesByTransactionID retrieves all entry lines of a transaction in
	// deterministic order.
	FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.EntryLine, error)

	// ListLinesByGLAccount retrieves a paginated list of entry lines touching a
	// GL account using token-based pagination.
	ListLinesByGLAccount(ctx context.Context, glAccountID string, limit int, nextToken *string) ([]domain.EntryLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryLineReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
