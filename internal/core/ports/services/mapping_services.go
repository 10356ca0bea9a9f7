package services

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// MappingResolverSvc defines mapping resolution used by the entry builder
type MappingResolverSvc interface {
	// Resolve returns the GL account actively mapped to the float account for the
	// given role, or apperrors.ErrMappingNotFound. Callers decide whether the
	// role is required (hard error) or optional (entry omitted).
	Resolve(ctx context.Context, floatAccountID string, role domain.MappingRole) (*domain.GLAccount, error)

	// ResolveActive returns every actively mapped GL account for the float
	// account, keyed by role.
	ResolveActive(ctx context.Context, floatAccountID string) (map[domain.MappingRole]domain.GLAccount, error)
}

// MappingWriterSvc defines mapping mutations
type MappingWriterSvc interface {
	// UpsertMapping replaces the active mapping for (floatAccountID, role) with
	// one targeting the referenced GL account. The ref may carry a human-entered
	// code, which is resolved to an identity before the write.
	UpsertMapping(ctx context.Context, floatAccountID string, ref domain.GLAccountRef, role domain.MappingRole, actorID string) (*domain.AccountMapping, error)

	// AutoProvision derives and creates the GL accounts and mappings a float
	// account's type mandates. Idempotent: re-running creates no duplicate GL
	// accounts and no duplicate active mappings.
	AutoProvision(ctx context.Context, floatAccountID string, actorID string) ([]domain.AccountMapping, error)
}

// MappingReaderSvc defines mapping history reads
type MappingReaderSvc interface {
	// ListMappings retrieves all mappings (active and superseded) for a float account.
	ListMappings(ctx context.Context, floatAccountID string) ([]domain.AccountMapping, error)
}

// MappingSvcFacade combines all mapping directory service interfaces
type MappingSvcFacade interface {
	MappingResolverSvc
	MappingWriterSvc
	MappingReaderSvc
}
