package services

import (
	"context"

	"github.com/kicho-app/kicho_backend/internal/core/domain"
	"github.com/kicho-app/kicho_backend/internal/dto"
)

// MasterSvcFacade exposes the master-data operations owned by the posting
// engine: the reference guard around deletes, versioned updates, and
// hierarchy re-parenting. General master CRUD lives elsewhere.
type MasterSvcFacade interface {
	// GetAccountByCode retrieves an account (used for default tax code
	// resolution and lookups).
	GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// ListActiveAccounts retrieves every active account ordered by code.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)

	// CanDeleteMaster reports whether any persisted detail line still
	// references the code.
	CanDeleteMaster(ctx context.Context, kind domain.MasterKind, code string) (*domain.DeleteCheck, error)

	// DeleteMaster deletes a master row; blocked with a business error while
	// references exist. Check and delete run in one guarded transaction.
	DeleteMaster(ctx context.Context, kind domain.MasterKind, code string, userID string) error

	// UpdateAccount applies a versioned update; a stale version yields a
	// conflict error and the caller chooses how to resolve.
	UpdateAccount(ctx context.Context, accountCode string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// ReparentMaster moves a node in the account or analysis-code tree,
	// rejecting moves that would create a cycle.
	ReparentMaster(ctx context.Context, kind domain.MasterKind, code string, parentCode *string, userID string) error
}
