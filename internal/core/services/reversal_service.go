package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
	"github.com/kelvinbaffour/branchledger/internal/platform/metrics"
)

// reversalService implements the reversal engine: mirror-image postings
// tracked by a PROCESSING/COMPLETED/FAILED state machine so interrupted
// reversals can be resumed instead of double-applied.
type reversalService struct {
	reversalRepo portsrepo.ReversalRepositoryFacade
	journalRepo  portsrepo.JournalRepositoryWithTx
	posting      portssvc.PostingWriterSvc
	audit        portssvc.AuditPublisher

	// window is how long after posting a transaction stays reversible.
	// Zero disables the check.
	window time.Duration
}

// NewReversalService creates the reversal engine service facade.
func NewReversalService(
	reversalRepo portsrepo.ReversalRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryWithTx,
	posting portssvc.PostingWriterSvc,
	audit portssvc.AuditPublisher,
	window time.Duration,
) portssvc.ReversalSvcFacade {
	return &reversalService{
		reversalRepo: reversalRepo,
		journalRepo:  journalRepo,
		posting:      posting,
		audit:        audit,
		window:       window,
	}
}

var _ portssvc.ReversalSvcFacade = (*reversalService)(nil)

func (s *reversalService) RequestReversal(ctx context.Context, req dto.RequestReversalRequest, actorID string) (*domain.ReversalRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindTransactionBySource(ctx, req.SourceModule, req.SourceTransactionType, req.SourceTransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.ReversalsTotal.WithLabelValues("not_eligible").Inc()
			return nil, fmt.Errorf("%w: no posted transaction for %s/%s/%s",
				apperrors.ErrNotFound, req.SourceModule, req.SourceTransactionType, req.SourceTransactionID)
		}
		return nil, err
	}

	if err := s.checkEligibility(ctx, original); err != nil {
		metrics.ReversalsTotal.WithLabelValues("not_eligible").Inc()
		return nil, err
	}

	record, resumed, err := s.claimReversal(ctx, original.TransactionID, req.Reason, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotEligible) {
			metrics.ReversalsTotal.WithLabelValues("not_eligible").Inc()
		}
		return nil, err
	}
	if resumed {
		logger.Info("Resuming interrupted reversal",
			slog.String("reversal_id", record.ReversalID),
			slog.String("original_transaction_id", original.TransactionID))
	}

	completed, err := s.execute(ctx, record, original, actorID)
	if err != nil {
		metrics.ReversalsTotal.WithLabelValues("failed").Inc()
		s.audit.Publish(ctx, domain.AuditEvent{
			Action:     "reversal.failed",
			EntityType: "reversal_record",
			EntityID:   record.ReversalID,
			ActorID:    actorID,
			BranchID:   original.BranchID,
			Severity:   domain.SeverityCritical,
			Details:    map[string]any{"originalTransactionID": original.TransactionID, "error": err.Error()},
		})
		return nil, err
	}

	metrics.ReversalsTotal.WithLabelValues("completed").Inc()
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "reversal.completed",
		EntityType: "reversal_record",
		EntityID:   completed.ReversalID,
		ActorID:    actorID,
		BranchID:   original.BranchID,
		Severity:   domain.SeverityWarning,
		Details: map[string]any{
			"originalTransactionID": original.TransactionID,
			"reversalTransactionID": *completed.ReversalTransactionID,
			"reason":                req.Reason,
		},
	})
	return completed, nil
}

// AdjustTransaction corrects a posted transaction: the original is reversed
// through the normal state machine, then the corrected replacement is posted
// under its own source identity.
func (s *reversalService) AdjustTransaction(ctx context.Context, req dto.AdjustTransactionRequest, actorID string) (*dto.AdjustmentResult, error) {
	record, err := s.RequestReversal(ctx, req.Original, actorID)
	if err != nil {
		return nil, err
	}

	result, err := s.posting.PostTransaction(ctx, req.Replacement, actorID)
	if err != nil {
		// The reversal stands. The replacement can be retried on its own
		// idempotency key without touching the reversal again.
		return nil, fmt.Errorf("original %s reversed but replacement posting failed: %w",
			record.OriginalTransactionID, err)
	}

	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "adjustment.completed",
		EntityType: "journal_transaction",
		EntityID:   record.OriginalTransactionID,
		ActorID:    actorID,
		BranchID:   req.Replacement.BranchID,
		Severity:   domain.SeverityWarning,
		Details: map[string]any{
			"reversalID":                     record.ReversalID,
			"replacementSourceTransactionID": req.Replacement.SourceTransactionID,
		},
	})
	return &dto.AdjustmentResult{
		Reversal:    dto.ToReversalResponse(record),
		Replacement: *result,
	}, nil
}

func (s *reversalService) GetReversal(ctx context.Context, reversalID string) (*domain.ReversalRecord, error) {
	return s.reversalRepo.FindReversalByID(ctx, reversalID)
}

func (s *reversalService) ListReversalsForTransaction(ctx context.Context, transactionID string) ([]domain.ReversalRecord, error) {
	if _, err := s.journalRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.reversalRepo.ListReversalsForTransaction(ctx, transactionID)
}

// checkEligibility enforces the reversal preconditions: the original must be
// POSTED, must not already have a completed reversal, and must fall inside the
// reversal window.
func (s *reversalService) checkEligibility(ctx context.Context, original *domain.JournalTransaction) error {
	switch original.Status {
	case domain.StatusPosted:
	case domain.StatusVoided:
		return fmt.Errorf("%w: transaction %s is already voided", apperrors.ErrNotEligible, original.TransactionID)
	default:
		return fmt.Errorf("%w: transaction %s is %s, not POSTED", apperrors.ErrNotEligible, original.TransactionID, original.Status)
	}

	if _, err := s.reversalRepo.FindCompletedReversalForTransaction(ctx, original.TransactionID); err == nil {
		return fmt.Errorf("%w: transaction %s has already been reversed", apperrors.ErrNotEligible, original.TransactionID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if s.window > 0 && time.Since(original.Date) > s.window {
		return fmt.Errorf("%w: transaction %s is outside the %s reversal window",
			apperrors.ErrNotEligible, original.TransactionID, s.window)
	}
	return nil
}

// claimReversal returns the reversal record to execute under: an existing
// PROCESSING record for the original (an interrupted attempt being resumed) or
// a freshly persisted one. The partial unique index on open records makes the
// insert the arbiter between concurrent requests: the loser resumes the
// winner's record, so only one mirror source identity ever exists.
func (s *reversalService) claimReversal(ctx context.Context, originalTransactionID, reason, actorID string) (*domain.ReversalRecord, bool, error) {
	history, err := s.reversalRepo.ListReversalsForTransaction(ctx, originalTransactionID)
	if err != nil {
		return nil, false, err
	}
	for i := range history {
		if history[i].Status == domain.ReversalProcessing {
			return &history[i], true, nil
		}
	}

	now := time.Now()
	record := domain.ReversalRecord{
		ReversalID:            uuid.NewString(),
		OriginalTransactionID: originalTransactionID,
		Reason:                reason,
		RequestedBy:           actorID,
		Status:                domain.ReversalProcessing,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.reversalRepo.SaveReversal(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the claim race: a concurrent request opened its record between
			// our lookup and the insert. Resume the winner instead of running a
			// second attempt with its own mirror identity.
			winners, herr := s.reversalRepo.ListReversalsForTransaction(ctx, originalTransactionID)
			if herr != nil {
				return nil, false, herr
			}
			for i := range winners {
				if winners[i].Status == domain.ReversalProcessing {
					return &winners[i], true, nil
				}
			}
			return nil, false, fmt.Errorf("%w: transaction %s has already been reversed",
				apperrors.ErrNotEligible, originalTransactionID)
		}
		return nil, false, err
	}
	return &record, false, nil
}

// execute posts the mirror transaction, voids the original and completes the
// record. The reversal record's identity doubles as the mirror posting's source
// transaction id, so a resumed attempt converges on the same posting instead of
// applying the mirror twice.
func (s *reversalService) execute(ctx context.Context, record *domain.ReversalRecord, original *domain.JournalTransaction, actorID string) (*domain.ReversalRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	originalLines, err := s.journalRepo.FindLinesByTransactionID(ctx, original.TransactionID)
	if err != nil {
		return nil, err
	}
	mirrorLines, err := BuildMirrorLines(originalLines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	header := domain.JournalTransaction{
		TransactionID:         uuid.NewString(),
		Date:                  now,
		SourceModule:          original.SourceModule,
		SourceTransactionID:   record.ReversalID,
		SourceTransactionType: string(domain.EntryReversal),
		Description:           fmt.Sprintf("Reversal of %s: %s", original.TransactionID, record.Reason),
		Status:                domain.StatusPosted,
		BranchID:              original.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	mirror, err := s.posting.Post(ctx, header, mirrorLines)
	if err != nil {
		// Nothing posted: the record can be closed as FAILED and retried later
		// under a fresh record.
		if uerr := s.reversalRepo.UpdateReversalOutcome(ctx, record.ReversalID, domain.ReversalFailed, nil, actorID, time.Now()); uerr != nil {
			logger.Error("Failed to mark reversal FAILED", slog.String("error", uerr.Error()),
				slog.String("reversal_id", record.ReversalID))
		}
		return nil, fmt.Errorf("posting mirror transaction: %w", err)
	}

	if err := s.journalRepo.UpdateTransactionStatus(ctx, original.TransactionID, domain.StatusVoided, actorID, now); err != nil {
		// The mirror is posted; the record stays PROCESSING so a retry can
		// finish the void without re-posting.
		logger.Error("Mirror posted but voiding original failed", slog.String("error", err.Error()),
			slog.String("original_transaction_id", original.TransactionID),
			slog.String("reversal_transaction_id", mirror.TransactionID))
		return nil, fmt.Errorf("voiding original transaction: %w", err)
	}

	if err := s.reversalRepo.UpdateReversalOutcome(ctx, record.ReversalID, domain.ReversalCompleted, &mirror.TransactionID, actorID, now); err != nil {
		return nil, err
	}

	logger.Info("Reversal completed",
		slog.String("reversal_id", record.ReversalID),
		slog.String("original_transaction_id", original.TransactionID),
		slog.String("reversal_transaction_id", mirror.TransactionID))

	completed := *record
	completed.Status = domain.ReversalCompleted
	completed.ReversalTransactionID = &mirror.TransactionID
	completed.LastUpdatedAt = now
	completed.LastUpdatedBy = actorID
	return &completed, nil
}
