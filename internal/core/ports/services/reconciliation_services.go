package services

import (
	"context"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
)

// ReconciliationSvcFacade defines the read-only reconciliation surface.
// It never writes; variances are surfaced for a human or a separate correction
// workflow to act on.
type ReconciliationSvcFacade interface {
	// Variance compares a float account's externally tracked balance against the
	// GL balance of its MAIN mapped account and returns the signed difference.
	Variance(ctx context.Context, floatAccountID string) (*domain.VarianceReport, error)

	// Report computes variances for all active float accounts (optionally one
	// branch), returning only those whose |delta| exceeds the configured epsilon.
	Report(ctx context.Context, branchID string) ([]domain.VarianceReport, error)
}
