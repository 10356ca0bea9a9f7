package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
)

// registryService implements the chart-of-accounts registry on top of the GL
// account repository.
type registryService struct {
	glRepo      portsrepo.GLAccountRepositoryFacade
	journalRepo portsrepo.EntryLineReader
	audit       portssvc.AuditPublisher
}

// NewRegistryService creates the registry service facade.
func NewRegistryService(glRepo portsrepo.GLAccountRepositoryFacade, journalRepo portsrepo.EntryLineReader, audit portssvc.AuditPublisher) portssvc.RegistrySvcFacade {
	return &registryService{
		glRepo:      glRepo,
		journalRepo: journalRepo,
		audit:       audit,
	}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

func (s *registryService) GetAccountByRef(ctx context.Context, ref domain.GLAccountRef) (*domain.GLAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if ref.IsZero() {
		return nil, fmt.Errorf("%w: account reference carries neither id nor code", apperrors.ErrValidation)
	}
	var (
		account *domain.GLAccount
		err     error
	)
	if ref.AccountID() != "" {
		account, err = s.glRepo.FindAccountByID(ctx, ref.AccountID())
	} else {
		account, err = s.glRepo.FindAccountByCode(ctx, ref.Code())
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve GL account ref", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

func (s *registryService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.glRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *registryService) ListAccounts(ctx context.Context, branchID string, limit int, offset int) ([]domain.GLAccount, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.glRepo.ListAccounts(ctx, branchID, limit, offset)
}

func (s *registryService) ListAccountLines(ctx context.Context, glAccountID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Confirm the account exists before paging its lines.
	if _, err := s.glRepo.FindAccountByID(ctx, glAccountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	lines, nextToken, err := s.journalRepo.ListLinesByGLAccount(ctx, glAccountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entry lines for GL account", slog.String("error", err.Error()), slog.String("gl_account_id", glAccountID))
		return nil, err
	}
	return &dto.ListLinesResponse{
		Lines:     dto.ToEntryLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

func (s *registryService) GetOrCreateAccount(ctx context.Context, code, name string, category domain.AccountCategory, branchID, actorID string) (*domain.GLAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unrecognized account category %q", apperrors.ErrSchema, category)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: account code must not be empty", apperrors.ErrValidation)
	}

	existing, err := s.glRepo.FindAccountByCode(ctx, code)
	if err == nil {
		if existing.Category != category {
			return nil, fmt.Errorf("%w: account %s exists with category %s, wanted %s", apperrors.ErrSchema, code, existing.Category, category)
		}
		if !existing.IsActive {
			// A deactivated holder of the code would make every posting against
			// it fail; bring it back rather than handing out an unusable account.
			now := time.Now()
			if err := s.glRepo.ReactivateAccount(ctx, existing.AccountID, actorID, now); err != nil {
				return nil, err
			}
			existing.IsActive = true
			existing.LastUpdatedAt = now
			existing.LastUpdatedBy = actorID
			logger.Info("GL account reactivated", slog.String("account_id", existing.AccountID), slog.String("code", code))
			s.audit.Publish(ctx, domain.AuditEvent{
				Action:     "gl_account.reactivated",
				EntityType: "gl_account",
				EntityID:   existing.AccountID,
				ActorID:    actorID,
				BranchID:   existing.BranchID,
				Severity:   domain.SeverityWarning,
				Details:    map[string]any{"code": code},
			})
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	account := domain.GLAccount{
		AccountID: uuid.NewString(),
		Code:      code,
		Name:      name,
		Category:  category,
		BranchID:  branchID,
		Balance:   decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.glRepo.SaveAccount(ctx, account); err != nil {
		// Lost a creation race: someone else inserted the code first.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.glRepo.FindAccountByCode(ctx, code)
		}
		logger.Error("Failed to create GL account", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}

	logger.Info("GL account created", slog.String("account_id", account.AccountID), slog.String("code", code), slog.String("category", string(category)))
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "gl_account.created",
		EntityType: "gl_account",
		EntityID:   account.AccountID,
		ActorID:    actorID,
		BranchID:   branchID,
		Severity:   domain.SeverityInfo,
		Details:    map[string]any{"code": code, "category": string(category)},
	})
	return &account, nil
}

func (s *registryService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.glRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil // Already inactive, idempotent
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s carries a non-zero balance", apperrors.ErrConflict, account.Code)
	}

	now := time.Now()
	if err := s.glRepo.DeactivateAccount(ctx, accountID, actorID, now); err != nil {
		logger.Error("Failed to deactivate GL account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("GL account deactivated", slog.String("account_id", accountID))
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "gl_account.deactivated",
		EntityType: "gl_account",
		EntityID:   accountID,
		ActorID:    actorID,
		BranchID:   account.BranchID,
		Severity:   domain.SeverityWarning,
	})
	return nil
}
