package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
)

// mappingService implements the account mapping directory.
type mappingService struct {
	mappingRepo portsrepo.MappingRepositoryFacade
	glRepo      portsrepo.GLAccountReader
	floatRepo   portsrepo.FloatAccountReader
	registry    portssvc.RegistryWriterSvc
	audit       portssvc.AuditPublisher
}

// NewMappingService creates the mapping directory service facade.
func NewMappingService(
	mappingRepo portsrepo.MappingRepositoryFacade,
	glRepo portsrepo.GLAccountReader,
	floatRepo portsrepo.FloatAccountReader,
	registry portssvc.RegistryWriterSvc,
	audit portssvc.AuditPublisher,
) portssvc.MappingSvcFacade {
	return &mappingService{
		mappingRepo: mappingRepo,
		glRepo:      glRepo,
		floatRepo:   floatRepo,
		registry:    registry,
		audit:       audit,
	}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

func (s *mappingService) Resolve(ctx context.Context, floatAccountID string, role domain.MappingRole) (*domain.GLAccount, error) {
	mapping, err := s.mappingRepo.FindActiveMapping(ctx, floatAccountID, role)
	if err != nil {
		return nil, err
	}
	account, err := s.glRepo.FindAccountByID(ctx, mapping.GLAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// A mapping pointing at a missing account is a data defect, not a
			// resolvable state.
			return nil, fmt.Errorf("%w: mapping %s targets unknown GL account %s", apperrors.ErrSchema, mapping.MappingID, mapping.GLAccountID)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: mapped GL account %s is inactive", apperrors.ErrMappingNotFound, account.Code)
	}
	return account, nil
}

func (s *mappingService) ResolveActive(ctx context.Context, floatAccountID string) (map[domain.MappingRole]domain.GLAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mappings, err := s.mappingRepo.FindActiveMappings(ctx, floatAccountID)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return map[domain.MappingRole]domain.GLAccount{}, nil
	}

	ids := make([]string, 0, len(mappings))
	for _, m := range mappings {
		ids = append(ids, m.GLAccountID)
	}
	accounts, err := s.glRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load mapped GL accounts", slog.String("error", err.Error()), slog.String("float_account_id", floatAccountID))
		return nil, err
	}

	resolved := make(map[domain.MappingRole]domain.GLAccount, len(mappings))
	for role, m := range mappings {
		account, ok := accounts[m.GLAccountID]
		if !ok || !account.IsActive {
			logger.Warn("Active mapping targets a missing or inactive GL account",
				slog.String("float_account_id", floatAccountID),
				slog.String("role", string(role)),
				slog.String("gl_account_id", m.GLAccountID))
			continue
		}
		resolved[role] = account
	}
	return resolved, nil
}

func (s *mappingService) UpsertMapping(ctx context.Context, floatAccountID string, ref domain.GLAccountRef, role domain.MappingRole, actorID string) (*domain.AccountMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unrecognized mapping role %q", apperrors.ErrValidation, role)
	}

	floatAccount, err := s.floatRepo.FindFloatAccountByID(ctx, floatAccountID)
	if err != nil {
		return nil, err
	}

	var account *domain.GLAccount
	if ref.AccountID() != "" {
		account, err = s.glRepo.FindAccountByID(ctx, ref.AccountID())
	} else if ref.Code() != "" {
		account, err = s.glRepo.FindAccountByCode(ctx, ref.Code())
	} else {
		return nil, fmt.Errorf("%w: mapping target carries neither id nor code", apperrors.ErrValidation)
	}
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: cannot map to inactive GL account %s", apperrors.ErrValidation, account.Code)
	}

	// Re-mapping to the account already active for the role is a no-op.
	if current, err := s.mappingRepo.FindActiveMapping(ctx, floatAccountID, role); err == nil {
		if current.GLAccountID == account.AccountID {
			return current, nil
		}
	} else if !errors.Is(err, apperrors.ErrMappingNotFound) && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	mapping := domain.AccountMapping{
		MappingID:      uuid.NewString(),
		FloatAccountID: floatAccountID,
		GLAccountID:    account.AccountID,
		Role:           role,
		BranchID:       floatAccount.BranchID,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.mappingRepo.ReplaceActiveMapping(ctx, mapping); err != nil {
		logger.Error("Failed to replace active mapping", slog.String("error", err.Error()),
			slog.String("float_account_id", floatAccountID), slog.String("role", string(role)))
		return nil, err
	}

	logger.Info("Account mapping replaced",
		slog.String("float_account_id", floatAccountID),
		slog.String("role", string(role)),
		slog.String("gl_account_id", account.AccountID))
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "mapping.replaced",
		EntityType: "account_mapping",
		EntityID:   mapping.MappingID,
		ActorID:    actorID,
		BranchID:   floatAccount.BranchID,
		Severity:   domain.SeverityWarning, // Re-mapping redirects money flows
		Details: map[string]any{
			"floatAccountID": floatAccountID,
			"role":           string(role),
			"glAccountID":    account.AccountID,
			"glAccountCode":  account.Code,
		},
	})
	return &mapping, nil
}

func (s *mappingService) AutoProvision(ctx context.Context, floatAccountID string, actorID string) ([]domain.AccountMapping, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	floatAccount, err := s.floatRepo.FindFloatAccountByID(ctx, floatAccountID)
	if err != nil {
		return nil, err
	}

	existing, err := s.mappingRepo.FindActiveMappings(ctx, floatAccountID)
	if err != nil {
		return nil, err
	}

	provisioned := make([]domain.AccountMapping, 0)
	for _, role := range domain.ProvisionRoles(floatAccount.AccountType) {
		if m, ok := existing[role]; ok {
			provisioned = append(provisioned, m)
			continue
		}

		code := provisionedAccountCode(floatAccount, role)
		name := provisionedAccountName(floatAccount, role)
		category := domain.RoleCategory(floatAccount.AccountType, role)
		account, err := s.registry.GetOrCreateAccount(ctx, code, name, category, floatAccount.BranchID, actorID)
		if err != nil {
			return nil, fmt.Errorf("provisioning %s account for float %s: %w", role, floatAccountID, err)
		}

		now := time.Now()
		mapping := domain.AccountMapping{
			MappingID:      uuid.NewString(),
			FloatAccountID: floatAccountID,
			GLAccountID:    account.AccountID,
			Role:           role,
			BranchID:       floatAccount.BranchID,
			IsActive:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.mappingRepo.ReplaceActiveMapping(ctx, mapping); err != nil {
			logger.Error("Failed to save provisioned mapping", slog.String("error", err.Error()),
				slog.String("float_account_id", floatAccountID), slog.String("role", string(role)))
			return nil, err
		}
		provisioned = append(provisioned, mapping)
	}

	logger.Info("Float account provisioned",
		slog.String("float_account_id", floatAccountID),
		slog.String("account_type", string(floatAccount.AccountType)),
		slog.Int("mappings", len(provisioned)))
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "mapping.provisioned",
		EntityType: "float_account",
		EntityID:   floatAccountID,
		ActorID:    actorID,
		BranchID:   floatAccount.BranchID,
		Severity:   domain.SeverityInfo,
		Details:    map[string]any{"accountType": string(floatAccount.AccountType), "mappings": len(provisioned)},
	})
	return provisioned, nil
}

func (s *mappingService) ListMappings(ctx context.Context, floatAccountID string) ([]domain.AccountMapping, error) {
	if _, err := s.floatRepo.FindFloatAccountByID(ctx, floatAccountID); err != nil {
		return nil, err
	}
	return s.mappingRepo.ListMappingsByFloatAccount(ctx, floatAccountID)
}

// provisionedAccountCode derives the deterministic GL account code for an
// auto-provisioned account. Determinism is what makes re-provisioning
// idempotent: the same float always lands on the same codes.
func provisionedAccountCode(f *domain.FloatAccount, role domain.MappingRole) string {
	parts := []string{f.BranchID, string(f.AccountType)}
	if f.Provider != "" {
		parts = append(parts, f.Provider)
	}
	parts = append(parts, string(role))
	return strings.ToUpper(strings.Join(parts, "-"))
}

func provisionedAccountName(f *domain.FloatAccount, role domain.MappingRole) string {
	label := titleCase(strings.ReplaceAll(string(f.AccountType), "_", " "))
	if f.Provider != "" {
		label = label + " " + strings.ToUpper(f.Provider)
	}
	switch role {
	case domain.RoleMain:
		return label + " Float"
	case domain.RoleFee:
		return label + " Fee Revenue"
	case domain.RoleCommission:
		return label + " Commission Revenue"
	case domain.RoleLiability:
		return label + " Settlement Payable"
	case domain.RoleRevenue:
		return label + " Revenue"
	case domain.RoleExpense:
		return label + " Expense"
	}
	return label
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
