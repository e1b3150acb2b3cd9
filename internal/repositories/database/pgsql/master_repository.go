package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
	"github.com/kicho-app/kicho_backend/internal/models"
	"github.com/kicho-app/kicho_backend/internal/utils/mapping"
)

// masterTable maps a MasterKind to its table and code column. Kinds are a
// closed enum, so interpolating these into SQL is safe.
type masterTable struct {
	table   string
	codeCol string
}

var masterTables = map[domain.MasterKind]masterTable{
	domain.MasterAccount:      {table: "accounts", codeCol: "account_code"},
	domain.MasterPartner:      {table: "partners", codeCol: "partner_code"},
	domain.MasterDepartment:   {table: "departments", codeCol: "department_code"},
	domain.MasterAnalysisCode: {table: "analysis_codes", codeCol: "analysis_code"},
}

// referenceColumns lists the journal_details columns that can point at each
// master kind. Account codes also appear in the sub-account position.
var referenceColumns = map[domain.MasterKind][]string{
	domain.MasterAccount:      {"account_code", "sub_account_code"},
	domain.MasterPartner:      {"partner_code"},
	domain.MasterDepartment:   {"department_code"},
	domain.MasterAnalysisCode: {"analysis_code"},
}

type PgxMasterRepository struct {
	BaseRepository
}

// newPgxMasterRepository creates a new repository for master data consumed by
// the posting engine.
func newPgxMasterRepository(pool *pgxpool.Pool) portsrepo.MasterRepositoryFacade {
	return &PgxMasterRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMasterRepository implements portsrepo.MasterRepositoryFacade
var _ portsrepo.MasterRepositoryFacade = (*PgxMasterRepository)(nil)

const accountColumns = `account_code, name, parent_code, default_tax_code, is_active, version, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountCode,
		&m.Name,
		&m.ParentCode,
		&m.DefaultTaxCode,
		&m.IsActive,
		&m.Version,
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

// FindAccountByCode retrieves a single account.
func (r *PgxMasterRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewDatabaseError("failed to find account "+accountCode, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *PgxMasterRepository) FindAccountsByCodes(ctx context.Context, accountCodes []string) (map[string]domain.Account, error) {
	if len(accountCodes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountCodes)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query accounts by codes", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan account row", err)
		}
		accounts[m.AccountCode] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating account rows", err)
	}
	return accounts, nil
}

// FindActiveAccounts retrieves every active account ordered by code.
func (r *PgxMasterRepository) FindActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE is_active ORDER BY account_code ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query active accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating account rows", err)
	}
	return accounts, nil
}

// LockAccountsForShare retrieves accounts by code and takes FOR SHARE locks.
// Must be called within a transaction. The share lock keeps a concurrent
// guarded delete (FOR UPDATE) from slipping between our existence check and
// the detail insert.
func (r *PgxMasterRepository) LockAccountsForShare(ctx context.Context, tx pgx.Tx, accountCodes []string) (map[string]domain.Account, error) {
	if len(accountCodes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = ANY($1) FOR SHARE;`
	rows, err := tx.Query(ctx, query, accountCodes)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to lock accounts for share", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan locked account row", err)
		}
		accounts[m.AccountCode] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating locked account rows", err)
	}
	return accounts, nil
}

// FindTaxRatesByCodes retrieves multiple tax rates keyed by code.
func (r *PgxMasterRepository) FindTaxRatesByCodes(ctx context.Context, taxCodes []string) (map[string]domain.TaxRate, error) {
	if len(taxCodes) == 0 {
		return map[string]domain.TaxRate{}, nil
	}

	query := `
		SELECT tax_code, name, rate, taxable, version, created_at, created_by, last_updated_at, last_updated_by
		FROM tax_rates
		WHERE tax_code = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, taxCodes)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to query tax rates by codes", err)
	}
	defer rows.Close()

	rates := make(map[string]domain.TaxRate)
	for rows.Next() {
		var m models.TaxRate
		err := rows.Scan(
			&m.TaxCode,
			&m.Name,
			&m.Rate,
			&m.Taxable,
			&m.Version,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewDatabaseError("failed to scan tax rate row", err)
		}
		rates[m.TaxCode] = mapping.ToDomainTaxRate(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError("error iterating tax rate rows", err)
	}
	return rates, nil
}

// FindAnalysisCodeByCode retrieves a single analysis code.
func (r *PgxMasterRepository) FindAnalysisCodeByCode(ctx context.Context, code string) (*domain.AnalysisCode, error) {
	query := `
		SELECT analysis_code, name, parent_code, is_active, version, created_at, created_by, last_updated_at, last_updated_by
		FROM analysis_codes
		WHERE analysis_code = $1;
	`
	var m models.AnalysisCode
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&m.AnalysisCode,
		&m.Name,
		&m.ParentCode,
		&m.IsActive,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewDatabaseError("failed to find analysis code "+code, err)
	}
	ac := mapping.ToDomainAnalysisCode(m)
	return &ac, nil
}

// referenceCountQuery builds the COUNT across every detail column that can
// reference the kind.
func referenceCountQuery(kind domain.MasterKind) (string, error) {
	cols, ok := referenceColumns[kind]
	if !ok {
		return "", fmt.Errorf("unknown master kind %q", kind)
	}
	conditions := make([]string, len(cols))
	for i, col := range cols {
		conditions[i] = col + " = $1"
	}
	return `SELECT COUNT(*) FROM journal_details WHERE ` + strings.Join(conditions, " OR ") + `;`, nil
}

// CountDetailReferences counts persisted journal detail rows referencing the
// master code.
func (r *PgxMasterRepository) CountDetailReferences(ctx context.Context, kind domain.MasterKind, code string) (int64, error) {
	query, err := referenceCountQuery(kind)
	if err != nil {
		return 0, apperrors.NewSystemError("failed to build reference count query", err)
	}
	var count int64
	if err := r.Pool.QueryRow(ctx, query, code).Scan(&count); err != nil {
		return 0, apperrors.NewDatabaseError("failed to count detail references for "+code, err)
	}
	return count, nil
}

// DeleteMaster deletes a master row under the reference guard. The row lock,
// the recount, and the delete share one transaction so a journal creation
// committing in between cannot introduce a reference we miss.
func (r *PgxMasterRepository) DeleteMaster(ctx context.Context, kind domain.MasterKind, code string) error {
	mt, ok := masterTables[kind]
	if !ok {
		return apperrors.NewSystemError(fmt.Sprintf("unknown master kind %q", kind), nil)
	}
	countQuery, err := referenceCountQuery(kind)
	if err != nil {
		return apperrors.NewSystemError("failed to build reference count query", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT 1 FROM ` + mt.table + ` WHERE ` + mt.codeCol + ` = $1 FOR UPDATE;`
	var one int
	if err := tx.QueryRow(ctx, lockQuery, code).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(string(kind) + " " + code + " not found")
		}
		return apperrors.NewDatabaseError("failed to lock "+string(kind)+" "+code, err)
	}

	var count int64
	if err := tx.QueryRow(ctx, countQuery, code).Scan(&count); err != nil {
		return apperrors.NewDatabaseError("failed to count detail references for "+code, err)
	}
	if count > 0 {
		return &apperrors.AppError{
			Kind:    apperrors.KindBusiness,
			Message: fmt.Sprintf("%s %s is referenced by %d journal detail line(s)", kind, code, count),
			Err:     apperrors.ErrMasterInUse,
		}
	}

	deleteQuery := `DELETE FROM ` + mt.table + ` WHERE ` + mt.codeCol + ` = $1;`
	if _, err := tx.Exec(ctx, deleteQuery, code); err != nil {
		return apperrors.NewDatabaseError("failed to delete "+string(kind)+" "+code, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateAccount writes the account only if the stored version matches, and
// bumps the version. A stale version is a conflict, not an overwrite.
func (r *PgxMasterRepository) UpdateAccount(ctx context.Context, account domain.Account, expectedVersion int64) error {
	query := `
		UPDATE accounts
		SET name = $2,
		    default_tax_code = $3,
		    is_active = $4,
		    version = version + 1,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE account_code = $1 AND version = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.AccountCode,
		account.Name,
		account.DefaultTaxCode,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewDatabaseError("failed to update account "+account.AccountCode, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		checkErr := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_code = $1);`, account.AccountCode).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewDatabaseError("failed to check account "+account.AccountCode, checkErr)
		}
		if !exists {
			return apperrors.NewNotFoundError("account " + account.AccountCode + " not found")
		}
		return &apperrors.AppError{
			Kind:    apperrors.KindBusiness,
			Message: "account " + account.AccountCode + " was modified by another user",
			Err:     apperrors.ErrConflict,
		}
	}
	return nil
}

// SetMasterParent re-parents a hierarchical master row.
func (r *PgxMasterRepository) SetMasterParent(ctx context.Context, kind domain.MasterKind, code string, parentCode *string, userID string, now time.Time) error {
	mt, ok := masterTables[kind]
	if !ok || (kind != domain.MasterAccount && kind != domain.MasterAnalysisCode) {
		return apperrors.NewSystemError(fmt.Sprintf("master kind %q has no hierarchy", kind), nil)
	}

	query := `
		UPDATE ` + mt.table + `
		SET parent_code = $2,
		    version = version + 1,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE ` + mt.codeCol + ` = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, code, parentCode, now, userID)
	if err != nil {
		return apperrors.NewDatabaseError("failed to re-parent "+string(kind)+" "+code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(string(kind) + " " + code + " not found")
	}
	return nil
}
