package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	"github.com/kelvinbaffour/branchledger/internal/models"
	"github.com/kelvinbaffour/branchledger/internal/utils/mapping"
)

const floatAccountColumns = `float_account_id, branch_id, account_type, provider, current_balance, is_active`

// PgxFloatAccountRepository reads the float_accounts table owned by the float
// operations subsystem. Strictly read-only from the ledger side.
type PgxFloatAccountRepository struct {
	BaseRepository
}

// newPgxFloatAccountRepository creates a new read-only repository for float accounts.
func newPgxFloatAccountRepository(pool *pgxpool.Pool) portsrepo.FloatAccountReader {
	return &PgxFloatAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FloatAccountReader = (*PgxFloatAccountRepository)(nil)

func scanFloatAccount(row pgx.Row) (*models.FloatAccount, error) {
	var m models.FloatAccount
	err := row.Scan(
		&m.FloatAccountID,
		&m.BranchID,
		&m.AccountType,
		&m.Provider,
		&m.CurrentBalance,
		&m.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxFloatAccountRepository) FindFloatAccountByID(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error) {
	query := `SELECT ` + floatAccountColumns + ` FROM float_accounts WHERE float_account_id = $1;`
	m, err := scanFloatAccount(r.Pool.QueryRow(ctx, query, floatAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find float account "+floatAccountID, err)
	}
	account := mapping.ToDomainFloatAccount(*m)
	return &account, nil
}

func (r *PgxFloatAccountRepository) ListFloatAccounts(ctx context.Context, branchID string) ([]domain.FloatAccount, error) {
	query := `
		SELECT ` + floatAccountColumns + `
		FROM float_accounts
		WHERE is_active = TRUE AND ($1 = '' OR branch_id = $1)
		ORDER BY branch_id, account_type, provider;
	`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list float accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.FloatAccount, 0)
	for rows.Next() {
		m, err := scanFloatAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan float account row", err)
		}
		accounts = append(accounts, mapping.ToDomainFloatAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating float account rows", err)
	}
	return accounts, nil
}
