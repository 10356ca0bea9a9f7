package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// GLAccountReader defines read operations for chart-of-accounts data
type GLAccountReader interface {
	// FindAccountByID retrieves a GL account by its opaque identity.
	FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error)

	// FindAccountByCode retrieves the GL account with the given human-assigned code.
	FindAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error)

	// FindAccountsByIDs retrieves multiple GL accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error)

	// ListAccounts retrieves a paginated list of active GL accounts, optionally
	// filtered to a branch.
	ListAccounts(ctx context.Context, branchID string, limit int, offset int) ([]domain.GLAccount, error)
}

// GLAccountWriter defines write operations for chart-of-accounts data
type GLAccountWriter interface {
	// SaveAccount persists a new GL account.
	SaveAccount(ctx context.Context, account domain.GLAccount) error

	// UpdateAccount updates an existing GL account's mutable details.
	UpdateAccount(ctx context.Context, account domain.GLAccount) error

	// DeactivateAccount marks a GL account as inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// ReactivateAccount marks a previously deactivated GL account as active again.
	ReactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// GLAccountTransactionSupport defines operations used inside posting transactions
type GLAccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects GL accounts and locks the rows for update.
	// Must be called within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.GLAccount, error)

	// ApplyBalanceDeltasInTx adds the given normal-balance deltas to the account
	// balances within the supplied transaction. Paired 1:1 with entry line writes.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// GLAccountRepositoryFacade combines all chart-of-accounts repository interfaces
type GLAccountRepositoryFacade interface {
	GLAccountReader
	GLAccountWriter
	GLAccountTransactionSupport
}
