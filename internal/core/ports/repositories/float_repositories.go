package repositories

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// FloatAccountReader defines read access to float accounts. The underlying
// table is owned by the float operations subsystem; the ledger core never
// writes to it.
type FloatAccountReader interface {
	// FindFloatAccountByID retrieves a float account by its identity.
	FindFloatAccountByID(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error)

	// ListFloatAccounts retrieves active float accounts, optionally filtered to a branch.
	ListFloatAccounts(ctx context.Context, branchID string) ([]domain.FloatAccount, error)
}
