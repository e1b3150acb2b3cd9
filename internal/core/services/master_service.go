package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/core/domain"
	portsrepo "github.com/kicho-app/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kicho-app/kicho_backend/internal/core/ports/services"
	"github.com/kicho-app/kicho_backend/internal/dto"
	"github.com/kicho-app/kicho_backend/internal/middleware"
)

// masterService implements the master-data operations owned by the posting
// engine.
type masterService struct {
	masterRepo portsrepo.MasterRepositoryFacade
}

// NewMasterService creates a new MasterService.
func NewMasterService(masterRepo portsrepo.MasterRepositoryFacade) portssvc.MasterSvcFacade {
	return &masterService{masterRepo: masterRepo}
}

// Ensure masterService implements the portssvc.MasterSvcFacade interface
var _ portssvc.MasterSvcFacade = (*masterService)(nil)

// GetAccountByCode retrieves an account.
func (s *masterService) GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	account, err := s.masterRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account " + accountCode + " not found")
		}
		return nil, err
	}
	return account, nil
}

// ListActiveAccounts retrieves every active account ordered by code.
func (s *masterService) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.masterRepo.FindActiveAccounts(ctx)
}

// CanDeleteMaster reports whether any persisted detail line still references
// the code. The answer is advisory: the guarded delete re-checks under a row
// lock, so a clean answer here can still lose to a concurrent posting.
func (s *masterService) CanDeleteMaster(ctx context.Context, kind domain.MasterKind, code string) (*domain.DeleteCheck, error) {
	count, err := s.masterRepo.CountDetailReferences(ctx, kind, code)
	if err != nil {
		return nil, err
	}
	check := &domain.DeleteCheck{
		Deletable:  count == 0,
		References: count,
	}
	if count > 0 {
		check.Reason = fmt.Sprintf("%s %s is referenced by %d journal detail line(s)", kind, code, count)
	}
	return check, nil
}

// DeleteMaster deletes a master row under the reference guard.
func (s *masterService) DeleteMaster(ctx context.Context, kind domain.MasterKind, code string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.masterRepo.DeleteMaster(ctx, kind, code); err != nil {
		return err
	}

	logger.Info("Master deleted",
		slog.String("kind", string(kind)),
		slog.String("code", code),
		slog.String("deleted_by", userID),
	)
	return nil
}

// UpdateAccount applies a versioned partial update. A stale version surfaces
// as a conflict and the caller decides how to resolve.
func (s *masterService) UpdateAccount(ctx context.Context, accountCode string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	existing, err := s.GetAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.DefaultTaxCode != nil {
		updated.DefaultTaxCode = req.DefaultTaxCode
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.masterRepo.UpdateAccount(ctx, updated, req.Version); err != nil {
		return nil, err
	}
	updated.Version = req.Version + 1
	return &updated, nil
}

// ReparentMaster moves a node in the account or analysis-code tree. The walk
// up from the new parent rejects moves that would close a cycle.
func (s *masterService) ReparentMaster(ctx context.Context, kind domain.MasterKind, code string, parentCode *string, userID string) error {
	if kind != domain.MasterAccount && kind != domain.MasterAnalysisCode {
		return apperrors.NewValidationError("master kind has no hierarchy", map[string]string{"kind": string(kind)})
	}

	if parentCode != nil {
		if *parentCode == code {
			return apperrors.NewBusinessError("a node cannot be its own parent", apperrors.ErrConflict)
		}
		if err := s.checkNoCycle(ctx, kind, code, *parentCode); err != nil {
			return err
		}
	}

	return s.masterRepo.SetMasterParent(ctx, kind, code, parentCode, userID, time.Now())
}

// checkNoCycle walks the ancestor chain starting at newParent and fails if it
// reaches code. The visited set guards against pre-existing cycles in stored
// data, which would otherwise loop forever.
func (s *masterService) checkNoCycle(ctx context.Context, kind domain.MasterKind, code string, newParent string) error {
	visited := map[string]struct{}{}
	current := newParent
	for {
		if current == code {
			return apperrors.NewBusinessError(
				fmt.Sprintf("re-parenting %s under %s would create a cycle", code, newParent),
				apperrors.ErrConflict,
			)
		}
		if _, ok := visited[current]; ok {
			return nil
		}
		visited[current] = struct{}{}

		parent, err := s.parentOf(ctx, kind, current)
		if err != nil {
			return err
		}
		if parent == nil {
			return nil
		}
		current = *parent
	}
}

func (s *masterService) parentOf(ctx context.Context, kind domain.MasterKind, code string) (*string, error) {
	switch kind {
	case domain.MasterAccount:
		account, err := s.masterRepo.FindAccountByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parent does not exist", map[string]string{"parentCode": code})
			}
			return nil, err
		}
		return account.ParentCode, nil
	case domain.MasterAnalysisCode:
		ac, err := s.masterRepo.FindAnalysisCodeByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parent does not exist", map[string]string{"parentCode": code})
			}
			return nil, err
		}
		return ac.ParentCode, nil
	default:
		return nil, apperrors.NewSystemError(fmt.Sprintf("unexpected master kind %q", kind), nil)
	}
}
