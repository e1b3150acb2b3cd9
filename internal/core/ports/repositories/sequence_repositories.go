package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
)

// SequenceRepository manages the per-date journal number counters.
type SequenceRepository interface {
	// NextSequenceInTx atomically increments and returns the counter for a
	// date prefix. Must be called inside the same transaction that inserts
	// the header, so a rollback releases nothing observable (the counter
	// increment rolls back with it only if the insert aborts the tx; a hole
	// left by a later rollback is permanent and legal).
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, datePrefix string) (int64, error)

	// PeekNextSequence returns the sequence the next allocation for the date
	// prefix would most likely receive. Purely advisory: stale the instant a
	// concurrent allocation commits. Never treat the result as final.
	PeekNextSequence(ctx context.Context, datePrefix string) (int64, error)

	// FindSequenceAnomalies audits committed journal numbers for gaps and
	// duplicates. datePrefix may be empty to audit every date. Read-only:
	// the audit reports, it never repairs.
	FindSequenceAnomalies(ctx context.Context, datePrefix string) ([]domain.SequenceAnomaly, error)
}
