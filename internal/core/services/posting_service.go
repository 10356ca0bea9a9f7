package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
	"github.com/kelvinbaffour/branchledger/internal/platform/metrics"
	"github.com/kelvinbaffour/branchledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var knownSourceModules = map[string]struct{}{
	domain.SourceMomo:            {},
	domain.SourcePower:           {},
	domain.SourceEZwich:          {},
	domain.SourceJumia:           {},
	domain.SourceAgencyBanking:   {},
	domain.SourceFloatOperations: {},
}

// cashEntryTypes are the patterns that move physical cash against the float's
// MAIN account and therefore need the branch cash counter-account.
var cashEntryTypes = map[domain.EntryType]struct{}{
	domain.EntryLiabilityCollection: {},
	domain.EntrySettlementPayment:   {},
	domain.EntryFloatRecharge:       {},
	domain.EntryFloatWithdrawal:     {},
}

// postingService implements the posting engine: it turns validated business
// transactions into atomic, idempotent journal postings.
type postingService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	glRepo      portsrepo.GLAccountRepositoryFacade
	mappings    portssvc.MappingResolverSvc
	registry    portssvc.RegistryWriterSvc
	floatRepo   portsrepo.FloatAccountReader
	audit       portssvc.AuditPublisher
}

// NewPostingService creates the posting engine service facade.
func NewPostingService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	glRepo portsrepo.GLAccountRepositoryFacade,
	mappings portssvc.MappingResolverSvc,
	registry portssvc.RegistryWriterSvc,
	floatRepo portsrepo.FloatAccountReader,
	audit portssvc.AuditPublisher,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		glRepo:      glRepo,
		mappings:    mappings,
		registry:    registry,
		floatRepo:   floatRepo,
		audit:       audit,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction handles one business transaction end to end: idempotency
// check, mapping resolution, entry construction, atomic post. A missing
// required mapping defers the ledger entry without failing the caller; only
// schema-level defects (unknown module/type, bad amounts) are hard errors.
func (s *postingService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, actorID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	timer := prometheus.NewTimer(metrics.PostingDuration)
	defer timer.ObserveDuration()

	if _, ok := knownSourceModules[req.SourceModule]; !ok {
		return nil, fmt.Errorf("%w: unrecognized source module %q", apperrors.ErrSchema, req.SourceModule)
	}
	entryType := domain.EntryType(req.SourceTransactionType)
	if _, ok := entryRules[entryType]; !ok {
		return nil, fmt.Errorf("%w: unrecognized source transaction type %q", apperrors.ErrSchema, req.SourceTransactionType)
	}

	// Idempotency pre-check: a retried request returns the original outcome.
	existing, err := s.journalRepo.FindTransactionBySource(ctx, req.SourceModule, req.SourceTransactionType, req.SourceTransactionID)
	if err == nil {
		logger.Info("Duplicate posting request, returning existing transaction",
			slog.String("transaction_id", existing.TransactionID),
			slog.String("source_module", req.SourceModule),
			slog.String("source_transaction_id", req.SourceTransactionID))
		metrics.PostingsTotal.WithLabelValues(req.SourceModule, "duplicate").Inc()
		return &dto.PostingResult{Success: true, TransactionID: &existing.TransactionID}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	floatAccount, err := s.floatRepo.FindFloatAccountByID(ctx, req.FloatAccountID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.mappings.ResolveActive(ctx, req.FloatAccountID)
	if err != nil {
		return nil, err
	}
	for _, role := range RequiredRolesForEntry(entryType, req.Fee, req.Commission) {
		if _, ok := accounts[role]; !ok {
			return s.deferPosting(ctx, req, floatAccount, role, actorID), nil
		}
	}

	input := EntryInput{
		Type:        entryType,
		Amount:      req.Amount,
		Fee:         req.Fee,
		Commission:  req.Commission,
		Description: postingDescription(req),
		Accounts:    accounts,
	}
	if _, ok := cashEntryTypes[entryType]; ok {
		cash, err := s.registry.GetOrCreateAccount(ctx,
			"CASH-"+req.BranchID, "Branch Cash Counter", domain.Asset, req.BranchID, actorID)
		if err != nil {
			return nil, err
		}
		input.CashAccount = cash
	}
	if entryType == domain.EntryFloatTransfer {
		if req.CounterFloatAccountID == "" {
			return nil, fmt.Errorf("%w: float transfer needs a counter float account", apperrors.ErrValidation)
		}
		counterMain, err := s.mappings.Resolve(ctx, req.CounterFloatAccountID, domain.RoleMain)
		if err != nil {
			if errors.Is(err, apperrors.ErrMappingNotFound) {
				return s.deferPosting(ctx, req, floatAccount, domain.RoleMain, actorID), nil
			}
			return nil, err
		}
		input.CounterAccount = counterMain
	}

	lines, err := BuildEntryLines(input)
	if err != nil {
		metrics.PostingsTotal.WithLabelValues(req.SourceModule, "failed").Inc()
		return nil, err
	}

	now := time.Now()
	header := domain.JournalTransaction{
		TransactionID:         uuid.NewString(),
		Date:                  now,
		SourceModule:          req.SourceModule,
		SourceTransactionID:   req.SourceTransactionID,
		SourceTransactionType: req.SourceTransactionType,
		Description:           input.Description,
		Status:                domain.StatusPosted,
		BranchID:              req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	posted, err := s.Post(ctx, header, lines)
	if err != nil {
		metrics.PostingsTotal.WithLabelValues(req.SourceModule, "failed").Inc()
		return nil, err
	}

	metrics.PostingsTotal.WithLabelValues(req.SourceModule, "posted").Inc()
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "posting.posted",
		EntityType: "journal_transaction",
		EntityID:   posted.TransactionID,
		ActorID:    actorID,
		BranchID:   req.BranchID,
		Severity:   domain.SeverityInfo,
		Details: map[string]any{
			"sourceModule":        req.SourceModule,
			"sourceTransactionID": req.SourceTransactionID,
			"amount":              posted.Amount.String(),
		},
	})
	return &dto.PostingResult{Success: true, TransactionID: &posted.TransactionID}, nil
}

// Post persists an already-built entry set atomically. The balance invariant is
// re-checked, deltas are computed from the target accounts' categories and the
// whole write (header, lines, balance updates) happens in one database
// transaction. A concurrent duplicate post resolves to the winner's transaction.
func (s *postingService) Post(ctx context.Context, header domain.JournalTransaction, lines []domain.EntryLine) (*domain.JournalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalancedEntry, err)
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{})
	for _, l := range lines {
		if _, ok := seen[l.GLAccountID]; ok {
			continue
		}
		seen[l.GLAccountID] = struct{}{}
		accountIDs = append(accountIDs, l.GLAccountID)
	}
	accounts, err := s.glRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]decimal.Decimal, len(accounts))
	for _, l := range lines {
		account, ok := accounts[l.GLAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: entry line targets unknown GL account %s", apperrors.ErrSchema, l.GLAccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: entry line targets inactive GL account %s", apperrors.ErrSchema, account.Code)
		}
		delta, err := accounting.NormalBalanceDelta(account.Category, l.Debit, l.Credit)
		if err != nil {
			return nil, err
		}
		deltas[l.GLAccountID] = deltas[l.GLAccountID].Add(delta)
	}

	now := header.CreatedAt
	finalLines := make([]domain.EntryLine, len(lines))
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.TransactionID = header.TransactionID
		l.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     header.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: header.CreatedBy,
		}
		finalLines[i] = l
	}
	header.Amount = accounting.TotalDebits(finalLines)
	header.Lines = finalLines

	saveErr := s.journalRepo.SaveTransaction(ctx, header, finalLines, deltas)
	if errors.Is(saveErr, apperrors.ErrConflict) {
		// Deadlock or serialization failure: the whole unit of work rolled back,
		// so one retry is safe and the idempotency key absorbs any overlap.
		logger.Warn("Posting hit a concurrency conflict, retrying once",
			slog.String("transaction_id", header.TransactionID))
		saveErr = s.journalRepo.SaveTransaction(ctx, header, finalLines, deltas)
	}
	if err := saveErr; err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the idempotency race: another request posted the same source
			// triple between our pre-check and the insert.
			winner, ferr := s.journalRepo.FindTransactionBySource(ctx,
				header.SourceModule, header.SourceTransactionType, header.SourceTransactionID)
			if ferr != nil {
				return nil, err
			}
			logger.Info("Posting lost duplicate race, returning winner",
				slog.String("transaction_id", winner.TransactionID))
			return winner, nil
		}
		logger.Error("Failed to save journal transaction", slog.String("error", err.Error()),
			slog.String("transaction_id", header.TransactionID))
		return nil, err
	}

	logger.Info("Journal transaction posted",
		slog.String("transaction_id", header.TransactionID),
		slog.String("source_module", header.SourceModule),
		slog.Int("lines", len(finalLines)),
		slog.String("amount", header.Amount.String()))
	return &header, nil
}

func (s *postingService) GetTransaction(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	txn, err := s.journalRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines
	return txn, nil
}

func (s *postingService) ListTransactions(ctx context.Context, branchID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	txns, nextToken, err := s.journalRepo.ListTransactionsByBranch(ctx, branchID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = dto.ToTransactionResponse(&txns[i])
	}
	return &dto.ListTransactionsResponse{
		Transactions: responses,
		NextToken:    nextToken,
	}, nil
}

// deferPosting records a posting gap caused by a missing mapping. The business
// operation already happened at the counter; failing it here would strand the
// customer, so the gap is surfaced loudly and reconciled later instead.
func (s *postingService) deferPosting(ctx context.Context, req dto.PostTransactionRequest, floatAccount *domain.FloatAccount, missingRole domain.MappingRole, actorID string) *dto.PostingResult {
	logger := middleware.GetLoggerFromCtx(ctx)

	logger.Warn("Posting deferred: required mapping missing",
		slog.String("float_account_id", req.FloatAccountID),
		slog.String("account_type", string(floatAccount.AccountType)),
		slog.String("missing_role", string(missingRole)),
		slog.String("source_module", req.SourceModule),
		slog.String("source_transaction_id", req.SourceTransactionID))

	metrics.PostingsTotal.WithLabelValues(req.SourceModule, "deferred").Inc()
	metrics.DeferredPostingsTotal.WithLabelValues(req.SourceModule, string(missingRole)).Inc()
	details := map[string]any{
		"missingRole":         string(missingRole),
		"sourceModule":        req.SourceModule,
		"sourceTransactionID": req.SourceTransactionID,
		"amount":              req.Amount.String(),
	}
	if req.CounterFloatAccountID != "" {
		details["counterFloatAccountID"] = req.CounterFloatAccountID
	}
	s.audit.Publish(ctx, domain.AuditEvent{
		Action:     "posting.deferred",
		EntityType: "float_account",
		EntityID:   req.FloatAccountID,
		ActorID:    actorID,
		BranchID:   req.BranchID,
		Severity:   domain.SeverityCritical,
		Details:    details,
	})
	return &dto.PostingResult{
		Success:  true,
		Deferred: true,
		Error:    fmt.Sprintf("no active %s mapping for float account %s", missingRole, req.FloatAccountID),
	}
}

func postingDescription(req dto.PostTransactionRequest) string {
	if req.Description != "" {
		return req.Description
	}
	return fmt.Sprintf("%s %s %s", req.SourceModule, req.SourceTransactionType, req.SourceTransactionID)
}
