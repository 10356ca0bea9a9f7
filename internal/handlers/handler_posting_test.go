package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/handlers"
	"github.com/kelvinbaffour/branchledger/internal/platform/config"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, actorID string) (*dto.PostingResult, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostingResult), args.Error(1)
}

func (m *MockPostingService) Post(ctx context.Context, header domain.JournalTransaction, lines []domain.EntryLine) (*domain.JournalTransaction, error) {
	args := m.Called(ctx, header, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTransaction), args.Error(1)
}

func (m *MockPostingService) GetTransaction(ctx context.Context, transactionID string) (*domain.JournalTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalTransaction), args.Error(1)
}

func (m *MockPostingService) ListTransactions(ctx context.Context, branchID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, branchID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// --- Test Suite Setup ---
type PostingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPostingService *MockPostingService
	jwtSecret          string
	actorID            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PostingHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "branchledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PostingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.actorID = uuid.NewString()
	suite.mockPostingService = new(MockPostingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger routes in tests
	}
	services := &portssvc.ServiceContainer{
		Posting: suite.mockPostingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *PostingHandlerTestSuite) postJSON(url string, body any, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PostingHandlerTestSuite) saleRequest() dto.PostTransactionRequest {
	return dto.PostTransactionRequest{
		SourceModule:          domain.SourceMomo,
		SourceTransactionType: string(domain.EntryServiceSale),
		SourceTransactionID:   uuid.NewString(),
		Amount:                decimal.NewFromInt(50),
		Fee:                   decimal.NewFromInt(2),
		FloatAccountID:        "flt-mtn-001",
		BranchID:              "BR-ACCRA-01",
	}
}

// --- Test Cases ---

func (suite *PostingHandlerTestSuite) TestPostTransaction_Success() {
	req := suite.saleRequest()
	txnID := uuid.NewString()
	expected := &dto.PostingResult{Success: true, TransactionID: &txnID}

	suite.mockPostingService.On("PostTransaction",
		mock.Anything,
		mock.MatchedBy(func(r dto.PostTransactionRequest) bool {
			return r.SourceTransactionID == req.SourceTransactionID && r.Amount.Equal(req.Amount)
		}),
		suite.actorID,
	).Return(expected, nil).Once()

	w := suite.postJSON("/api/v1/postings", req, suite.generateTestToken(suite.actorID))

	suite.Equal(http.StatusOK, w.Code)
	var result dto.PostingResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.True(result.Success)
	suite.Require().NotNil(result.TransactionID)
	suite.Equal(txnID, *result.TransactionID)
	suite.mockPostingService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_DeferredStillOK() {
	req := suite.saleRequest()
	deferred := &dto.PostingResult{Success: true, Deferred: true, Error: "no active LIABILITY mapping for float account flt-mtn-001"}

	suite.mockPostingService.On("PostTransaction", mock.Anything, mock.AnythingOfType("dto.PostTransactionRequest"), suite.actorID).
		Return(deferred, nil).Once()

	w := suite.postJSON("/api/v1/postings", req, suite.generateTestToken(suite.actorID))

	suite.Equal(http.StatusOK, w.Code, "a deferred posting is not an HTTP failure")
	var result dto.PostingResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.True(result.Deferred)
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_SchemaErrorIsBadRequest() {
	req := suite.saleRequest()
	req.SourceModule = domain.SourceMomo // passes binding, rejected by service

	suite.mockPostingService.On("PostTransaction", mock.Anything, mock.AnythingOfType("dto.PostTransactionRequest"), suite.actorID).
		Return(nil, apperrors.ErrSchema).Once()

	w := suite.postJSON("/api/v1/postings", req, suite.generateTestToken(suite.actorID))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_MissingFieldsRejected() {
	w := suite.postJSON("/api/v1/postings", map[string]string{"sourceModule": "momo"}, suite.generateTestToken(suite.actorID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestPostTransaction_NoToken() {
	w := suite.postJSON("/api/v1/postings", suite.saleRequest(), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestGetTransaction_NotFound() {
	txnID := uuid.NewString()
	suite.mockPostingService.On("GetTransaction", mock.Anything, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions/"+txnID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.actorID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PostingHandlerTestSuite) TestListTransactions_RequiresBranchID() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.actorID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostingHandlerTestSuite))
}
