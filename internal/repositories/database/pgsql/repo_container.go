package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	glAccountRepo := newPgxGLAccountRepository(dbPool)
	mappingRepo := newPgxMappingRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, glAccountRepo)
	reversalRepo := newPgxReversalRepository(dbPool)
	floatRepo := newPgxFloatAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		GLAccountRepo: glAccountRepo,
		MappingRepo:   mappingRepo,
		JournalRepo:   journalRepo,
		ReversalRepo:  reversalRepo,
		FloatRepo:     floatRepo,
	}
}
