package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portsrepo "github.com/kelvinbaffour/branchledger/internal/core/ports/repositories"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTransaction), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionBySource(ctx context.Context, sourceModule, sourceTransactionType, sourceTransactionID string) (*domain.JournalTransaction, error) {
	args := m.Called(ctx, sourceModule, sourceTransactionType, sourceTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTransaction), args.Error(1)
}

func (m *MockJournalRepository) ListTransactionsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.JournalTransaction, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalTransaction), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveTransaction(ctx context.Context, txn domain.JournalTransaction, lines []domain.EntryLine, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, lines, deltas)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByGLAccount(ctx context.Context, glAccountID string, limit int, nextToken *string) ([]domain.EntryLine, *string, error) {
	args := m.Called(ctx, glAccountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.EntryLine), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock GLAccountRepository ---
type MockGLAccountRepository struct {
	mock.Mock
}

var _ portsrepo.GLAccountRepositoryFacade = (*MockGLAccountRepository)(nil)

func (m *MockGLAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) ListAccounts(ctx context.Context, branchID string, limit int, offset int) ([]domain.GLAccount, error) {
	args := m.Called(ctx, branchID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) SaveAccount(ctx context.Context, account domain.GLAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockGLAccountRepository) UpdateAccount(ctx context.Context, account domain.GLAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockGLAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockGLAccountRepository) ReactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockGLAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.GLAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GLAccount), args.Error(1)
}

func (m *MockGLAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Mock MappingRepository ---
type MockMappingRepository struct {
	mock.Mock
}

var _ portsrepo.MappingRepositoryFacade = (*MockMappingRepository)(nil)

func (m *MockMappingRepository) FindActiveMapping(ctx context.Context, floatAccountID string, role domain.MappingRole) (*domain.AccountMapping, error) {
	args := m.Called(ctx, floatAccountID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

func (m *MockMappingRepository) FindActiveMappings(ctx context.Context, floatAccountID string) (map[domain.MappingRole]domain.AccountMapping, error) {
	args := m.Called(ctx, floatAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.MappingRole]domain.AccountMapping), args.Error(1)
}

func (m *MockMappingRepository) ListMappingsByFloatAccount(ctx context.Context, floatAccountID string) ([]domain.AccountMapping, error) {
	args := m.Called(ctx, floatAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMapping), args.Error(1)
}

func (m *MockMappingRepository) ReplaceActiveMapping(ctx context.Context, newMapping domain.AccountMapping) error {
	args := m.Called(ctx, newMapping)
	return args.Error(0)
}

// --- Mock ReversalRepository ---
type MockReversalRepository struct {
	mock.Mock
}

var _ portsrepo.ReversalRepositoryFacade = (*MockReversalRepository)(nil)

func (m *MockReversalRepository) FindReversalByID(ctx context.Context, reversalID string) (*domain.ReversalRecord, error) {
	args := m.Called(ctx, reversalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalRecord), args.Error(1)
}

func (m *MockReversalRepository) FindCompletedReversalForTransaction(ctx context.Context, originalTransactionID string) (*domain.ReversalRecord, error) {
	args := m.Called(ctx, originalTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReversalRecord), args.Error(1)
}

func (m *MockReversalRepository) ListReversalsForTransaction(ctx context.Context, originalTransactionID string) ([]domain.ReversalRecord, error) {
	args := m.Called(ctx, originalTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReversalRecord), args.Error(1)
}

func (m *MockReversalRepository) SaveReversal(ctx context.Context, record domain.ReversalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReversalRepository) UpdateReversalOutcome(ctx context.Context, reversalID string, status domain.ReversalStatus, reversalTransactionID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, reversalID, status, reversalTransactionID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock FloatAccountReader ---
type MockFloatAccountReader struct {
	mock.Mock
}

var _ portsrepo.FloatAccountReader = (*MockFloatAccountReader)(nil)

func (m *MockFloatAccountReader) FindFloatAccountByID(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error) {
	args := m.Called(ctx, floatAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FloatAccount), args.Error(1)
}

func (m *MockFloatAccountReader) ListFloatAccounts(ctx context.Context, branchID string) ([]domain.FloatAccount, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FloatAccount), args.Error(1)
}

// --- Mock MappingResolverSvc (as used by the posting and reconciliation services) ---
type MockMappingResolver struct {
	mock.Mock
}

var _ portssvc.MappingResolverSvc = (*MockMappingResolver)(nil)

func (m *MockMappingResolver) Resolve(ctx context.Context, floatAccountID string, role domain.MappingRole) (*domain.GLAccount, error) {
	args := m.Called(ctx, floatAccountID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockMappingResolver) ResolveActive(ctx context.Context, floatAccountID string) (map[domain.MappingRole]domain.GLAccount, error) {
	args := m.Called(ctx, floatAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.MappingRole]domain.GLAccount), args.Error(1)
}

// --- Mock RegistryWriterSvc ---
type MockRegistryWriter struct {
	mock.Mock
}

var _ portssvc.RegistryWriterSvc = (*MockRegistryWriter)(nil)

func (m *MockRegistryWriter) GetOrCreateAccount(ctx context.Context, code, name string, category domain.AccountCategory, branchID, actorID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, code, name, category, branchID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

func (m *MockRegistryWriter) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	args := m.Called(ctx, accountID, actorID)
	return args.Error(0)
}

// --- Mock PostingWriterSvc (as used by the reversal service) ---
type MockPostingWriter struct {
	mock.Mock
}

var _ portssvc.PostingWriterSvc = (*MockPostingWriter)(nil)

func (m *MockPostingWriter) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, actorID string) (*dto.PostingResult, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResult), args.Error(1)
}

func (m *MockPostingWriter) Post(ctx context.Context, header domain.JournalTransaction, lines []domain.EntryLine) (*domain.JournalTransaction, error) {
	args := m.Called(ctx, header, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTransaction), args.Error(1)
}

// recordingAuditPublisher captures published events so tests can assert on the
// audit trail without a full mock setup.
type recordingAuditPublisher struct {
	Events []domain.AuditEvent
}

var _ portssvc.AuditPublisher = (*recordingAuditPublisher)(nil)

func (p *recordingAuditPublisher) Publish(_ context.Context, event domain.AuditEvent) {
	p.Events = append(p.Events, event)
}

func (p *recordingAuditPublisher) lastAction() string {
	if len(p.Events) == 0 {
		return ""
	}
	return p.Events[len(p.Events)-1].Action
}
