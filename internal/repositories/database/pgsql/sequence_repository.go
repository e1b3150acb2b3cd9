package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
	"github.com/kicho-app/kicho_backend/internal/utils/seqnum"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for journal number counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceRepository
var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextSequenceInTx atomically increments and returns the per-date counter.
// The upsert is a single statement, so two concurrent transactions can never
// read the same value; the later one blocks on the counter row until the
// earlier commits or rolls back.
func (r *PgxSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, datePrefix string) (int64, error) {
	query := `
		INSERT INTO journal_sequences (date_prefix, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (date_prefix)
		DO UPDATE SET last_seq = journal_sequences.last_seq + 1
		RETURNING last_seq;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, datePrefix).Scan(&seq); err != nil {
		return 0, apperrors.NewDatabaseError("failed to advance journal sequence for "+datePrefix, err)
	}
	if seq > seqnum.MaxSequence {
		// Fail closed: the 7-digit space for this date is gone. The engine
		// does not extend the number format.
		return 0, apperrors.NewBusinessError("journal number space exhausted for "+datePrefix, apperrors.ErrSequenceExhausted)
	}
	return seq, nil
}

// PeekNextSequence returns the value the next allocation would most likely
// receive, without reserving anything.
func (r *PgxSequenceRepository) PeekNextSequence(ctx context.Context, datePrefix string) (int64, error) {
	query := `SELECT last_seq FROM journal_sequences WHERE date_prefix = $1;`
	var last int64
	err := r.Pool.QueryRow(ctx, query, datePrefix).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, apperrors.NewDatabaseError("failed to read journal sequence for "+datePrefix, err)
	}
	next := last + 1
	if next > seqnum.MaxSequence {
		return 0, apperrors.NewBusinessError("journal number space exhausted for "+datePrefix, apperrors.ErrSequenceExhausted)
	}
	return next, nil
}

// FindSequenceAnomalies scans committed journal numbers for gaps and
// duplicates. Gaps are legal (rolled-back allocations leave permanent holes)
// but reported; duplicates should be impossible while the primary key holds.
func (r *PgxSequenceRepository) FindSequenceAnomalies(ctx context.Context, datePrefix string) ([]domain.SequenceAnomaly, error) {
	query := `
		SELECT journal_number
		FROM journal_headers
		WHERE ($1 = '' OR journal_number LIKE $1 || '%')
		ORDER BY journal_number;
	`
	rows, err := r.Pool.Query(ctx, query, datePrefix)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query journal numbers for integrity audit", err)
	}
	defer rows.Close()

	anomalies := []domain.SequenceAnomaly{}
	var prevPrefix string
	var prevSeq int64
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan journal number during integrity audit", err)
		}
		_, seq, err := seqnum.Parse(number)
		if err != nil {
			// Malformed numbers cannot be attributed to a sequence slot;
			// skip rather than guess.
			continue
		}
		prefix := number[:seqnum.PrefixLen]
		if prefix != prevPrefix {
			prevPrefix = prefix
			prevSeq = 0
		}
		switch {
		case seq == prevSeq:
			anomalies = append(anomalies, domain.SequenceAnomaly{
				DatePrefix: prefix,
				Kind:       domain.SequenceDuplicate,
				Sequence:   seq,
			})
		case seq > prevSeq+1:
			for missing := prevSeq + 1; missing < seq; missing++ {
				anomalies = append(anomalies, domain.SequenceAnomaly{
					DatePrefix: prefix,
					Kind:       domain.SequenceGap,
					Sequence:   missing,
				})
			}
		}
		if seq > prevSeq {
			prevSeq = seq
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating journal numbers during integrity audit", err)
	}

	return anomalies, nil
}
