package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	"github.com/kelvinbaffour/branchledger/internal/dto"
)

// RegistryReaderSvc defines read operations on the chart of accounts
type RegistryReaderSvc interface {
	// GetAccountByRef resolves a GLAccountRef (code or identity) to the account.
	GetAccountByRef(ctx context.Context, ref domain.GLAccountRef) (*domain.GLAccount, error)

	// GetBalance returns the accumulated GL balance of an account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListAccounts retrieves active GL accounts, optionally filtered to a branch.
	ListAccounts(ctx context.Context, branchID string, limit int, offset int) ([]domain.GLAccount, error)

	// ListAccountLines retrieves the entry lines touching a GL account with
	// cursor pagination.
	ListAccountLines(ctx context.Context, glAccountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}

// RegistryWriterSvc defines write operations on the chart of accounts
type RegistryWriterSvc interface {
	// GetOrCreateAccount returns the active account with the given code, creating
	// it with a zero balance if absent. Fails with apperrors.ErrSchema when the
	// category is not recognized.
	GetOrCreateAccount(ctx context.Context, code, name string, category domain.AccountCategory, branchID, actorID string) (*domain.GLAccount, error)

	// DeactivateAccount marks an account inactive; accounts are never deleted.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}

// RegistrySvcFacade combines all chart-of-accounts service interfaces
type RegistrySvcFacade interface {
	RegistryReaderSvc
	RegistryWriterSvc
}
