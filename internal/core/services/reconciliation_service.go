package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
	"github.com/kelvinbaffour/branchledger/internal/platform/metrics"
)

// reconciliationService implements the float-vs-GL variance reporter.
// Strictly read-only: it compares balances and surfaces deltas, never
// corrects them.
type reconciliationService struct {
	floatRepo portsrepo.FloatAccountReader
	mappings  portssvc.MappingResolverSvc

	// epsilon is the absolute delta below which a variance is treated as
	// rounding noise and excluded from reports.
	epsilon decimal.Decimal
}

// NewReconciliationService creates the reconciliation service facade.
func NewReconciliationService(floatRepo portsrepo.FloatAccountReader, mappings portssvc.MappingResolverSvc, epsilon decimal.Decimal) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		floatRepo: floatRepo,
		mappings:  mappings,
		epsilon:   epsilon,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) Variance(ctx context.Context, floatAccountID string) (*domain.VarianceReport, error) {
	floatAccount, err := s.floatRepo.FindFloatAccountByID(ctx, floatAccountID)
	if err != nil {
		return nil, err
	}
	return s.variance(ctx, floatAccount)
}

func (s *reconciliationService) Report(ctx context.Context, branchID string) ([]domain.VarianceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	floats, err := s.floatRepo.ListFloatAccounts(ctx, branchID)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.VarianceReport, 0)
	for i := range floats {
		report, err := s.variance(ctx, &floats[i])
		if err != nil {
			// A float without a MAIN mapping has nothing to reconcile against;
			// flag it and keep going rather than aborting the whole report.
			if errors.Is(err, apperrors.ErrMappingNotFound) {
				logger.Warn("Float account skipped in reconciliation: no MAIN mapping",
					slog.String("float_account_id", floats[i].FloatAccountID),
					slog.String("branch_id", floats[i].BranchID))
				continue
			}
			return nil, err
		}
		if report.Delta.Abs().LessThanOrEqual(s.epsilon) {
			continue
		}
		metrics.VariancesDetected.Inc()
		logger.Warn("Reconciliation variance detected",
			slog.String("float_account_id", report.FloatAccountID),
			slog.String("gl_account_id", report.GLAccountID),
			slog.String("delta", report.Delta.String()))
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *reconciliationService) variance(ctx context.Context, floatAccount *domain.FloatAccount) (*domain.VarianceReport, error) {
	mainAccount, err := s.mappings.Resolve(ctx, floatAccount.FloatAccountID, domain.RoleMain)
	if err != nil {
		return nil, err
	}
	return &domain.VarianceReport{
		FloatAccountID: floatAccount.FloatAccountID,
		BranchID:       floatAccount.BranchID,
		GLAccountID:    mainAccount.AccountID,
		FloatBalance:   floatAccount.CurrentBalance,
		GLBalance:      mainAccount.Balance,
		Delta:          floatAccount.CurrentBalance.Sub(mainAccount.Balance),
	}, nil
}
