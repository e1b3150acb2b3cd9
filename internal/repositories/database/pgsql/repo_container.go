package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires up all pgx-backed repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	masterRepo := newPgxMasterRepository(pool)
	seqRepo := newPgxSequenceRepository(pool)
	journalRepo := newPgxJournalRepository(pool, masterRepo, seqRepo)

	return &portsrepo.RepositoryProvider{
		JournalRepo:  journalRepo,
		SequenceRepo: seqRepo,
		MasterRepo:   masterRepo,
	}
}
