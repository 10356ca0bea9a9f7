package repositories

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// MappingReader defines read operations for account mapping data
type MappingReader interface {
	// FindActiveMapping retrieves the single active mapping for a float account
	// and role, or apperrors.ErrMappingNotFound.
	FindActiveMapping(ctx context.Context, floatAccountID string, role domain.MappingRole) (*domain.AccountMapping, error)

	// FindActiveMappings retrieves all active mappings for a float account, keyed by role.
	FindActiveMappings(ctx context.Context, floatAccountID string) (map[domain.MappingRole]domain.AccountMapping, error)

	// ListMappingsByFloatAccount retrieves all mappings (active and superseded)
	// for a float account, newest first.
	ListMappingsByFloatAccount(ctx context.Context, floatAccountID string) ([]domain.AccountMapping, error)
}

// MappingWriter defines write operations for account mapping data
type MappingWriter interface {
	// ReplaceActiveMapping deactivates any active mapping for the new mapping's
	// (float account, role) key and inserts the new one, atomically. The partial
	// unique index on active mappings backs the single-active invariant.
	ReplaceActiveMapping(ctx context.Context, newMapping domain.AccountMapping) error
}

// MappingRepositoryFacade combines all mapping repository interfaces
type MappingRepositoryFacade interface {
	MappingReader
	MappingWriter
}
