package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	"github.com/kelvinbaffour/branchledger/internal/models"
	"github.com/kelvinbaffour/branchledger/internal/utils/mapping"
)

const glAccountColumns = `account_id, code, name, category, branch_id, balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxGLAccountRepository struct {
	BaseRepository
}

// newPgxGLAccountRepository creates a new repository for chart-of-accounts data.
func newPgxGLAccountRepository(pool *pgxpool.Pool) portsrepo.GLAccountRepositoryFacade {
	return &PgxGLAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.GLAccountRepositoryFacade = (*PgxGLAccountRepository)(nil)

func scanGLAccount(row pgx.Row) (*models.GLAccount, error) {
	var m models.GLAccount
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Category,
		&m.BranchID,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxGLAccountRepository) SaveAccount(ctx context.Context, account domain.GLAccount) error {
	m := mapping.ToModelGLAccount(account)
	query := `
		INSERT INTO gl_accounts (` + glAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Category,
		m.BranchID,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert GL account "+m.AccountID, err)
	}
	return nil
}

func (r *PgxGLAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE account_id = $1;`
	m, err := scanGLAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL account by ID "+accountID, err)
	}
	account := mapping.ToDomainGLAccount(*m)
	return &account, nil
}

func (r *PgxGLAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE code = $1;`
	m, err := scanGLAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find GL account by code "+code, err)
	}
	account := mapping.ToDomainGLAccount(*m)
	return &account, nil
}

func (r *PgxGLAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.GLAccount{}, nil
	}
	query := `SELECT ` + glAccountColumns + ` FROM gl_accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.GLAccount, len(accountIDs))
	for rows.Next() {
		m, err := scanGLAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainGLAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL account rows", err)
	}
	return accounts, nil
}

func (r *PgxGLAccountRepository) ListAccounts(ctx context.Context, branchID string, limit int, offset int) ([]domain.GLAccount, error) {
	query := `
		SELECT ` + glAccountColumns + `
		FROM gl_accounts
		WHERE is_active = TRUE AND ($1 = '' OR branch_id = $1)
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list GL accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.GLAccount, 0, limit)
	for rows.Next() {
		m, err := scanGLAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL account row", err)
		}
		accounts = append(accounts, mapping.ToDomainGLAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL account rows", err)
	}
	return accounts, nil
}

func (r *PgxGLAccountRepository) UpdateAccount(ctx context.Context, account domain.GLAccount) error {
	m := mapping.ToModelGLAccount(account)
	query := `
		UPDATE gl_accounts
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update GL account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGLAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE gl_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate GL account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGLAccountRepository) ReactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE gl_accounts
		SET is_active = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reactivate GL account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the account rows for the remainder of the
// enclosing transaction. Ordering by account_id keeps concurrent postings
// acquiring locks in the same order.
func (r *PgxGLAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.GLAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.GLAccount{}, nil
	}
	query := `
		SELECT ` + glAccountColumns + `
		FROM gl_accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock GL accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.GLAccount, len(accountIDs))
	for rows.Next() {
		m, err := scanGLAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked GL account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainGLAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked GL account rows", err)
	}
	if len(accounts) != len(accountIDs) {
		for _, id := range accountIDs {
			if _, ok := accounts[id]; !ok {
				return nil, apperrors.NewNotFoundError("GL account " + id + " not found for locking")
			}
		}
	}
	return accounts, nil
}

func (r *PgxGLAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE gl_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range deltas {
		batch.Queue(query, accountID, delta, now, userID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance deltas", err)
	}
	return nil
}
