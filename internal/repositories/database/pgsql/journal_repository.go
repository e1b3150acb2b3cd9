package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
	"github.com/kicho-app/kicho_backend/internal/models"
	"github.com/kicho-app/kicho_backend/internal/utils/mapping"
	"github.com/kicho-app/kicho_backend/internal/utils/pagination"
	"github.com/kicho-app/kicho_backend/internal/utils/seqnum"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

type PgxJournalRepository struct {
	BaseRepository
	masterRepo portsrepo.MasterTxReader
	seqRepo    portsrepo.SequenceRepository
}

// newPgxJournalRepository creates a new journal repository. The master and
// sequence repositories participate in SaveJournal's transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, masterRepo portsrepo.MasterTxReader, seqRepo portsrepo.SequenceRepository) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		masterRepo:     masterRepo,
		seqRepo:        seqRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalHeaderColumns = `journal_number, journal_date, description, total_amount, created_at, created_by, last_updated_at, last_updated_by`

const journalDetailColumns = `journal_number, line_number, debit_credit, account_code, sub_account_code, partner_code, department_code, analysis_code, base_amount, tax_amount, total_amount, tax_code, line_description`

const insertJournalDetailQuery = `
	INSERT INTO journal_details (` + journalDetailColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func scanJournalHeader(row pgx.Row) (*models.JournalHeader, error) {
	var m models.JournalHeader
	err := row.Scan(
		&m.JournalNumber,
		&m.JournalDate,
		&m.Description,
		&m.TotalAmount,
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

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// queueDetailInserts adds one INSERT per detail line to the batch. Lines are
// renumbered 1..n in slice order; stored line numbers never carry over from
// the request.
func queueDetailInserts(batch *pgx.Batch, journalNumber string, lines []domain.JournalLine) {
	for i, line := range lines {
		m := mapping.ToModelJournalDetail(line)
		batch.Queue(insertJournalDetailQuery,
			journalNumber,
			i+1,
			m.DebitCredit,
			m.AccountCode,
			m.SubAccountCode,
			m.PartnerCode,
			m.DepartmentCode,
			m.AnalysisCode,
			m.BaseAmount,
			m.TaxAmount,
			m.TotalAmount,
			m.TaxCode,
			m.LineDescription,
		)
	}
}

// SaveJournal allocates a journal number and persists header plus lines in one
// transaction. The referenced accounts are share-locked first so a concurrent
// guarded master delete cannot commit underneath the insert.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.JournalHeader, lines []domain.JournalLine) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	accountCodes := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountCode]; !ok {
			seen[line.AccountCode] = struct{}{}
			accountCodes = append(accountCodes, line.AccountCode)
		}
		if line.SubAccountCode != nil {
			if _, ok := seen[*line.SubAccountCode]; !ok {
				seen[*line.SubAccountCode] = struct{}{}
				accountCodes = append(accountCodes, *line.SubAccountCode)
			}
		}
	}
	locked, err := r.masterRepo.LockAccountsForShare(ctx, tx, accountCodes)
	if err != nil {
		return "", err
	}
	for _, code := range accountCodes {
		if _, ok := locked[code]; !ok {
			return "", apperrors.NewValidationError("account does not exist", map[string]string{"accountCode": code})
		}
	}

	datePrefix := seqnum.DatePrefix(journal.JournalDate)
	seq, err := r.seqRepo.NextSequenceInTx(ctx, tx, datePrefix)
	if err != nil {
		return "", err
	}
	journalNumber, err := seqnum.Format(journal.JournalDate, seq)
	if err != nil {
		return "", apperrors.NewBusinessError("journal number allocation failed for "+datePrefix, err)
	}

	header := mapping.ToModelJournalHeader(journal)
	header.JournalNumber = journalNumber

	insertHeaderQuery := `
		INSERT INTO journal_headers (` + journalHeaderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertHeaderQuery,
		header.JournalNumber,
		header.JournalDate,
		header.Description,
		header.TotalAmount,
		header.CreatedAt,
		header.CreatedBy,
		header.LastUpdatedAt,
		header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Collision with a concurrently allocated number. The caller
			// retries the whole save, which draws a fresh sequence.
			return "", apperrors.ErrDuplicate
		}
		return "", apperrors.NewDatabaseError("failed to insert journal header "+journalNumber, err)
	}

	batch := &pgx.Batch{}
	queueDetailInserts(batch, journalNumber, lines)
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return "", apperrors.NewDatabaseError(fmt.Sprintf("failed to insert journal detail line %d of %s", i+1, journalNumber), err)
		}
	}
	if err := br.Close(); err != nil {
		return "", apperrors.NewDatabaseError("failed to close detail insert batch for "+journalNumber, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return journalNumber, nil
}

// ReplaceJournal updates the header and swaps the complete detail set in one
// transaction. Details are deleted and reinserted rather than diffed.
func (r *PgxJournalRepository) ReplaceJournal(ctx context.Context, journal domain.JournalHeader, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	header := mapping.ToModelJournalHeader(journal)

	updateHeaderQuery := `
		UPDATE journal_headers
		SET journal_date = $2,
		    description = $3,
		    total_amount = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_number = $1;
	`
	cmdTag, err := tx.Exec(ctx, updateHeaderQuery,
		header.JournalNumber,
		header.JournalDate,
		header.Description,
		header.TotalAmount,
		header.LastUpdatedAt,
		header.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewDatabaseError("failed to update journal header "+header.JournalNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + header.JournalNumber + " not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_details WHERE journal_number = $1;`, header.JournalNumber); err != nil {
		return apperrors.NewDatabaseError("failed to clear journal details of "+header.JournalNumber, err)
	}

	batch := &pgx.Batch{}
	queueDetailInserts(batch, header.JournalNumber, lines)
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewDatabaseError(fmt.Sprintf("failed to insert journal detail line %d of %s", i+1, header.JournalNumber), err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewDatabaseError("failed to close detail insert batch for "+header.JournalNumber, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteJournal removes the detail rows then the header row in one
// transaction.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalNumber string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_details WHERE journal_number = $1;`, journalNumber); err != nil {
		return apperrors.NewDatabaseError("failed to delete journal details of "+journalNumber, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_headers WHERE journal_number = $1;`, journalNumber)
	if err != nil {
		return apperrors.NewDatabaseError("failed to delete journal header "+journalNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + journalNumber + " not found")
	}

	return r.Commit(ctx, tx)
}

// FindJournalByNumber retrieves a journal header by its number.
func (r *PgxJournalRepository) FindJournalByNumber(ctx context.Context, journalNumber string) (*domain.JournalHeader, error) {
	query := `SELECT ` + journalHeaderColumns + ` FROM journal_headers WHERE journal_number = $1;`
	m, err := scanJournalHeader(r.Pool.QueryRow(ctx, query, journalNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewDatabaseError("failed to find journal "+journalNumber, err)
	}
	header := mapping.ToDomainJournalHeader(*m)
	return &header, nil
}

// FindLinesByJournalNumber retrieves every detail line of a journal ordered
// by line number. Gaps in the numbering are returned as stored.
func (r *PgxJournalRepository) FindLinesByJournalNumber(ctx context.Context, journalNumber string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + journalDetailColumns + `
		FROM journal_details
		WHERE journal_number = $1
		ORDER BY line_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, journalNumber)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query journal details of "+journalNumber, err)
	}
	defer rows.Close()

	var details []models.JournalDetail
	for rows.Next() {
		var m models.JournalDetail
		err := rows.Scan(
			&m.JournalNumber,
			&m.LineNumber,
			&m.DebitCredit,
			&m.AccountCode,
			&m.SubAccountCode,
			&m.PartnerCode,
			&m.DepartmentCode,
			&m.AnalysisCode,
			&m.BaseAmount,
			&m.TaxAmount,
			&m.TotalAmount,
			&m.TaxCode,
			&m.LineDescription,
		)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan journal detail row", err)
		}
		details = append(details, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating journal detail rows", err)
	}
	return mapping.ToDomainJournalLineSlice(details), nil
}

// ListJournals retrieves a page of journal headers, newest journal date first
// with creation time as the tiebreaker, using token-based pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalHeader, *string, error) {
	baseQuery := `SELECT ` + journalHeaderColumns + ` FROM journal_headers`
	orderBy := ` ORDER BY journal_date DESC, created_at DESC`

	args := []any{}
	whereClause := ""
	if nextToken != nil && *nextToken != "" {
		journalDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token", nil)
		}
		whereClause = ` WHERE (journal_date, created_at) < ($1, $2)`
		args = append(args, journalDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query := fmt.Sprintf("%s%s%s LIMIT $%d;", baseQuery, whereClause, orderBy, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewDatabaseError("failed to query journal headers", err)
	}
	defer rows.Close()

	var headers []domain.JournalHeader
	for rows.Next() {
		m, err := scanJournalHeader(rows)
		if err != nil {
			return nil, nil, apperrors.NewDatabaseError("failed to scan journal header row", err)
		}
		headers = append(headers, mapping.ToDomainJournalHeader(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewDatabaseError("error iterating journal header rows", err)
	}

	var token *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		t := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		token = &t
	}
	return headers, token, nil
}
