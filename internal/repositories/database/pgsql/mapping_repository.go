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

const mappingColumns = `mapping_id, float_account_id, gl_account_id, role, branch_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxMappingRepository struct {
	BaseRepository
}

// newPgxMappingRepository creates a new repository for account mapping data.
func newPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

func scanMapping(row pgx.Row) (*models.AccountMapping, error) {
	var m models.AccountMapping
	err := row.Scan(
		&m.MappingID,
		&m.FloatAccountID,
		&m.GLAccountID,
		&m.Role,
		&m.BranchID,
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

func (r *PgxMappingRepository) FindActiveMapping(ctx context.Context, floatAccountID string, role domain.MappingRole) (*domain.AccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM account_mappings
		WHERE float_account_id = $1 AND role = $2 AND is_active = TRUE;
	`
	m, err := scanMapping(r.Pool.QueryRow(ctx, query, floatAccountID, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMappingNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active mapping for float "+floatAccountID, err)
	}
	result := mapping.ToDomainAccountMapping(*m)
	return &result, nil
}

func (r *PgxMappingRepository) FindActiveMappings(ctx context.Context, floatAccountID string) (map[domain.MappingRole]domain.AccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM account_mappings
		WHERE float_account_id = $1 AND is_active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query, floatAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active mappings for float "+floatAccountID, err)
	}
	defer rows.Close()

	mappings := make(map[domain.MappingRole]domain.AccountMapping)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mapping row", err)
		}
		d := mapping.ToDomainAccountMapping(*m)
		mappings[d.Role] = d
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mapping rows", err)
	}
	return mappings, nil
}

func (r *PgxMappingRepository) ListMappingsByFloatAccount(ctx context.Context, floatAccountID string) ([]domain.AccountMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM account_mappings
		WHERE float_account_id = $1
		ORDER BY created_at DESC, mapping_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, floatAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query mappings for float "+floatAccountID, err)
	}
	defer rows.Close()

	mappings := make([]domain.AccountMapping, 0)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan mapping row", err)
		}
		mappings = append(mappings, mapping.ToDomainAccountMapping(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating mapping rows", err)
	}
	return mappings, nil
}

// ReplaceActiveMapping deactivates the current active mapping for the new
// mapping's (float account, role) key and inserts the replacement in one
// database transaction. The partial unique index uq_account_mappings_active
// turns a racing replacement into a unique violation instead of two actives.
func (r *PgxMappingRepository) ReplaceActiveMapping(ctx context.Context, newMapping domain.AccountMapping) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deactivateQuery := `
		UPDATE account_mappings
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE float_account_id = $1 AND role = $2 AND is_active = TRUE;
	`
	_, err = tx.Exec(ctx, deactivateQuery,
		newMapping.FloatAccountID,
		string(newMapping.Role),
		newMapping.LastUpdatedAt,
		newMapping.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate superseded mapping", err)
	}

	m := mapping.ToModelAccountMapping(newMapping)
	insertQuery := `
		INSERT INTO account_mappings (` + mappingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.MappingID,
		m.FloatAccountID,
		m.GLAccountID,
		m.Role,
		m.BranchID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert mapping "+m.MappingID, err)
	}

	return r.Commit(ctx, tx)
}
