package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
)

// MasterReader defines read operations for master data consumed by the
// posting engine (existence checks, default tax code resolution, reference
// counts).
type MasterReader interface {
	// FindAccountByCode retrieves a single account.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code.
	FindAccountsByCodes(ctx context.Context, accountCodes []string) (map[string]domain.Account, error)

	// FindActiveAccounts retrieves every active account ordered by code.
	FindActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// FindTaxRatesByCodes retrieves multiple tax rates keyed by code.
	FindTaxRatesByCodes(ctx context.Context, taxCodes []string) (map[string]domain.TaxRate, error)

	// FindAnalysisCodeByCode retrieves a single analysis code.
	FindAnalysisCodeByCode(ctx context.Context, code string) (*domain.AnalysisCode, error)

	// CountDetailReferences counts persisted journal detail rows referencing
	// the master code across every applicable foreign-key column.
	CountDetailReferences(ctx context.Context, kind domain.MasterKind, code string) (int64, error)
}

// MasterWriter defines the write operations the engine performs on master
// data: the guarded delete, the versioned update, and re-parenting.
type MasterWriter interface {
	// DeleteMaster locks the master row, re-checks the reference count inside
	// the same transaction, and deletes. Referenced rows surface as
	// apperrors.ErrMasterInUse; missing rows as apperrors.ErrNotFound.
	DeleteMaster(ctx context.Context, kind domain.MasterKind, code string) error

	// UpdateAccount writes the account only if its stored version equals
	// expectedVersion, bumping the version. A mismatch surfaces as
	// apperrors.ErrConflict.
	UpdateAccount(ctx context.Context, account domain.Account, expectedVersion int64) error

	// SetMasterParent re-parents a hierarchical master row (accounts,
	// analysis codes). Cycle checks happen in the service before this call.
	SetMasterParent(ctx context.Context, kind domain.MasterKind, code string, parentCode *string, userID string, now time.Time) error
}

// MasterTxReader exposes row-locking reads used inside journal transactions.
type MasterTxReader interface {
	// LockAccountsForShare retrieves accounts by code and takes FOR SHARE
	// locks, so a concurrent master delete (which locks FOR UPDATE) cannot
	// interleave between the existence check and the detail insert.
	LockAccountsForShare(ctx context.Context, tx pgx.Tx, accountCodes []string) (map[string]domain.Account, error)
}

// MasterRepositoryFacade combines all master-data repository interfaces
type MasterRepositoryFacade interface {
	MasterReader
	MasterWriter
	MasterTxReader
}
