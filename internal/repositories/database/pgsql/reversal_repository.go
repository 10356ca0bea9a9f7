package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	"github.com/kelvinbaffour/branchledger/internal/models"
	"github.com/kelvinbaffour/branchledger/internal/utils/mapping"
)

const reversalColumns = `reversal_id, original_transaction_id, reversal_transaction_id, reason,
	requested_by, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxReversalRepository struct {
	BaseRepository
}

// newPgxReversalRepository creates a new repository for reversal records.
func newPgxReversalRepository(pool *pgxpool.Pool) portsrepo.ReversalRepositoryFacade {
	return &PgxReversalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReversalRepositoryFacade = (*PgxReversalRepository)(nil)

func scanReversal(row pgx.Row) (*models.ReversalRecord, error) {
	var m models.ReversalRecord
	var reversalTxnID sql.NullString
	err := row.Scan(
		&m.ReversalID,
		&m.OriginalTransactionID,
		&reversalTxnID,
		&m.Reason,
		&m.RequestedBy,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reversalTxnID.Valid {
		m.ReversalTransactionID = &reversalTxnID.String
	}
	return &m, nil
}

func (r *PgxReversalRepository) SaveReversal(ctx context.Context, record domain.ReversalRecord) error {
	m := mapping.ToModelReversalRecord(record)
	query := `
		INSERT INTO reversal_records (` + reversalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReversalID,
		m.OriginalTransactionID,
		m.ReversalTransactionID,
		m.Reason,
		m.RequestedBy,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert reversal record "+m.ReversalID, err)
	}
	return nil
}

func (r *PgxReversalRepository) UpdateReversalOutcome(ctx context.Context, reversalID string, status domain.ReversalStatus, reversalTransactionID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE reversal_records
		SET status = $2, reversal_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE reversal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, reversalID, string(status), reversalTransactionID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reversal record "+reversalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxReversalRepository) FindReversalByID(ctx context.Context, reversalID string) (*domain.ReversalRecord, error) {
	query := `SELECT ` + reversalColumns + ` FROM reversal_records WHERE reversal_id = $1;`
	m, err := scanReversal(r.Pool.QueryRow(ctx, query, reversalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reversal record "+reversalID, err)
	}
	record := mapping.ToDomainReversalRecord(*m)
	return &record, nil
}

func (r *PgxReversalRepository) FindCompletedReversalForTransaction(ctx context.Context, originalTransactionID string) (*domain.ReversalRecord, error) {
	query := `
		SELECT ` + reversalColumns + `
		FROM reversal_records
		WHERE original_transaction_id = $1 AND status = 'COMPLETED'
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanReversal(r.Pool.QueryRow(ctx, query, originalTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find completed reversal for transaction "+originalTransactionID, err)
	}
	record := mapping.ToDomainReversalRecord(*m)
	return &record, nil
}

func (r *PgxReversalRepository) ListReversalsForTransaction(ctx context.Context, originalTransactionID string) ([]domain.ReversalRecord, error) {
	query := `
		SELECT ` + reversalColumns + `
		FROM reversal_records
		WHERE original_transaction_id = $1
		ORDER BY created_at DESC, reversal_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, originalTransactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reversals for transaction "+originalTransactionID, err)
	}
	defer rows.Close()

	records := make([]domain.ReversalRecord, 0)
	for rows.Next() {
		m, err := scanReversal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reversal record row", err)
		}
		records = append(records, mapping.ToDomainReversalRecord(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reversal record rows", err)
	}
	return records, nil
}
