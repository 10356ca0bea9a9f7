package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
)

// postingHandler handles HTTP requests for the posting engine.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// registerPostingRoutes registers posting and transaction read routes.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	rg.POST("/postings", h.postTransaction)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
	}
}

// postTransaction godoc
// @Summary Post a business transaction to the ledger
// @Description Builds balanced entry lines for the source transaction and posts them atomically. Idempotent on the source identity triple; a missing required mapping defers the posting instead of failing.
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   posting body dto.PostTransactionRequest true "Business transaction details"
// @Success 200 {object} dto.PostingResult
// @Failure 400 {object} map[string]string "Invalid input format or schema error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post transaction"
// @Security BearerAuth
// @Router /postings [post]
func (h *postingHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.postingService.PostTransaction(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSchema), errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalancedEntry):
			logger.Warn("Posting rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// getTransaction godoc
// @Summary Get a journal transaction
// @Description Retrieves a journal transaction with its entry lines
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *postingHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.postingService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List journal transactions for a branch
// @Description Retrieves a paginated list of transactions, newest first
// @Tags transactions
// @Produce  json
// @Param   branchID query string true "Branch ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Missing branchID or invalid token"
// @Security BearerAuth
// @Router /transactions [get]
func (h *postingHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branchID := c.Query("branchID")
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branchID query parameter is required"})
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.postingService.ListTransactions(c.Request.Context(), branchID, params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
