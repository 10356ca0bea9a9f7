package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	"github.com/kelvinbaffour/branchledger/internal/models"
	"github.com/kelvinbaffour/branchledger/internal/utils/mapping"
	"github.com/kelvinbaffour/branchledger/internal/utils/pagination"
)

const transactionColumns = `transaction_id, transaction_date, source_module, source_transaction_type,
	source_transaction_id, description, status, branch_id, amount,
	created_at, created_by, last_updated_at, last_updated_by`

const entryLineColumns = `line_id, transaction_id, gl_account_id, debit, credit, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
	glAccountRepo portsrepo.GLAccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool, glAccountRepo portsrepo.GLAccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		glAccountRepo:  glAccountRepo,
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanTransaction(row pgx.Row) (*models.JournalTransaction, error) {
	var m models.JournalTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.Date,
		&m.SourceModule,
		&m.SourceTransactionType,
		&m.SourceTransactionID,
		&m.Description,
		&m.Status,
		&m.BranchID,
		&m.Amount,
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

func scanEntryLine(row pgx.Row) (*models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.TransactionID,
		&m.GLAccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
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

// SaveTransaction persists the header, locks and adjusts the touched GL account
// balances and inserts the entry lines, all inside one database transaction.
// The unique index on the source triple makes a duplicate insert fail before
// any balance is touched; callers see apperrors.ErrDuplicate.
func (r *PgxJournalRepository) SaveTransaction(ctx context.Context, txn domain.JournalTransaction, lines []domain.EntryLine, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalTransaction(txn)
	headerQuery := `
		INSERT INTO journal_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.TransactionID,
		m.Date,
		m.SourceModule,
		m.SourceTransactionType,
		m.SourceTransactionID,
		m.Description,
		m.Status,
		m.BranchID,
		m.Amount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		if isSerializationFailure(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert journal transaction "+m.TransactionID, err)
	}

	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.glAccountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		if isSerializationFailure(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to lock GL accounts for posting", err)
	}
	if err := r.glAccountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, txn.CreatedBy, txn.CreatedAt); err != nil {
		if isSerializationFailure(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to apply balance deltas for posting", err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (` + entryLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		lm := mapping.ToModelEntryLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.TransactionID,
			lm.GLAccountID,
			lm.Debit,
			lm.Credit,
			lm.Description,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isSerializationFailure(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert entry lines for transaction "+m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		if isSerializationFailure(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM journal_transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	txn := mapping.ToDomainJournalTransaction(*m)
	return &txn, nil
}

func (r *PgxJournalRepository) FindTransactionBySource(ctx context.Context, sourceModule, sourceTransactionType, sourceTransactionID string) (*domain.JournalTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM journal_transactions
		WHERE source_module = $1 AND source_transaction_type = $2 AND source_transaction_id = $3;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, sourceModule, sourceTransactionType, sourceTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by source "+sourceModule+"/"+sourceTransactionID, err)
	}
	txn := mapping.ToDomainJournalTransaction(*m)
	return &txn, nil
}

// ListTransactionsByBranch retrieves a page of transactions for a branch using
// token-based pagination ordered by (transaction_date, created_at) descending.
func (r *PgxJournalRepository) ListTransactionsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.JournalTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM journal_transactions
		WHERE branch_id = $1
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{branchID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for branch "+branchID, err)
	}
	defer rows.Close()

	results := make([]models.JournalTransaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}

	transactions := make([]domain.JournalTransaction, len(results))
	for i := range results {
		transactions[i] = mapping.ToDomainJournalTransaction(results[i])
	}
	return transactions, nextTokenVal, nil
}

func (r *PgxJournalRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.EntryLine, error) {
	query := `
		SELECT ` + entryLineColumns + `
		FROM journal_entry_lines
		WHERE transaction_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines for transaction "+transactionID, err)
	}
	defer rows.Close()

	lines := make([]models.EntryLine, 0)
	for rows.Next() {
		m, err := scanEntryLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		lines = append(lines, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry line rows", err)
	}
	return mapping.ToDomainEntryLineSlice(lines), nil
}

// ListLinesByGLAccount retrieves a page of entry lines touching a GL account,
// joined to their headers so only POSTED activity is shown, using token-based
// pagination ordered by (transaction_date, line created_at) descending.
func (r *PgxJournalRepository) ListLinesByGLAccount(ctx context.Context, glAccountID string, limit int, nextToken *string) ([]domain.EntryLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.transaction_id, l.gl_account_id, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, t.transaction_date
		FROM journal_entry_lines l
		JOIN journal_transactions t ON l.transaction_id = t.transaction_id
		WHERE l.gl_account_id = $1 AND t.status = 'POSTED'
	`
	orderByClause := `ORDER BY t.transaction_date DESC, l.created_at DESC`

	args := []interface{}{glAccountID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (t.transaction_date, l.created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entry lines for GL account "+glAccountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line models.EntryLine
		date time.Time
	}
	results := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var m models.EntryLine
		var transactionDate time.Time
		err := rows.Scan(
			&m.LineID,
			&m.TransactionID,
			&m.GLAccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&transactionDate,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		results = append(results, lineWithDate{line: m, date: transactionDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry line rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.date, last.line.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}

	lines := make([]models.EntryLine, len(results))
	for i := range results {
		lines[i] = results[i].line
	}
	return mapping.ToDomainEntryLineSlice(lines), nextTokenVal, nil
}
