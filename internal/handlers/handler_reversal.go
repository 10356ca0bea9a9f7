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

// reversalHandler handles HTTP requests for the reversal engine.
type reversalHandler struct {
	reversalService portssvc.ReversalSvcFacade
}

func newReversalHandler(rs portssvc.ReversalSvcFacade) *reversalHandler {
	return &reversalHandler{reversalService: rs}
}

// registerReversalRoutes registers reversal routes.
func registerReversalRoutes(rg *gin.RouterGroup, reversalService portssvc.ReversalSvcFacade) {
	h := newReversalHandler(reversalService)

	reversals := rg.Group("/reversals")
	{
		reversals.POST("", h.requestReversal)
		reversals.GET("/:id", h.getReversal)
	}
	rg.POST("/adjustments", h.adjustTransaction)
	rg.GET("/transactions/:id/reversals", h.listReversalsForTransaction)
}

// requestReversal godoc
// @Summary Reverse a posted transaction
// @Description Posts the mirror-image transaction and voids the original. A transaction can be reversed at most once.
// @Tags reversals
// @Accept  json
// @Produce  json
// @Param   reversal body dto.RequestReversalRequest true "Source identity of the transaction to reverse and the reason"
// @Success 200 {object} dto.ReversalResponse
// @Failure 404 {object} map[string]string "Original transaction not found"
// @Failure 409 {object} map[string]string "Transaction not eligible for reversal"
// @Security BearerAuth
// @Router /reversals [post]
func (h *reversalHandler) requestReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RequestReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reversal request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reversalService.RequestReversal(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotEligible):
			logger.Warn("Reversal not eligible", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process reversal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process reversal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReversalResponse(record))
}

// adjustTransaction godoc
// @Summary Adjust a posted transaction
// @Description Reverses the original transaction and posts the corrected replacement under its own source identity
// @Tags reversals
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.AdjustTransactionRequest true "Original to reverse and the corrected replacement"
// @Success 200 {object} dto.AdjustmentResult
// @Failure 400 {object} map[string]string "Invalid replacement payload"
// @Failure 404 {object} map[string]string "Original transaction not found"
// @Failure 409 {object} map[string]string "Original not eligible for reversal"
// @Security BearerAuth
// @Router /adjustments [post]
func (h *reversalHandler) adjustTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reversalService.AdjustTransaction(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotEligible):
			logger.Warn("Adjustment not eligible", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrSchema), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process adjustment"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// getReversal godoc
// @Summary Get a reversal record
// @Tags reversals
// @Produce  json
// @Param   id path string true "Reversal ID"
// @Success 200 {object} dto.ReversalResponse
// @Failure 404 {object} map[string]string "Reversal not found"
// @Security BearerAuth
// @Router /reversals/{id} [get]
func (h *reversalHandler) getReversal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reversalID := c.Param("id")

	record, err := h.reversalService.GetReversal(c.Request.Context(), reversalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reversal not found"})
			return
		}
		logger.Error("Failed to get reversal", slog.String("error", err.Error()), slog.String("reversal_id", reversalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reversal"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReversalResponse(record))
}

// listReversalsForTransaction godoc
// @Summary List reversal history of a transaction
// @Tags reversals
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {array} dto.ReversalResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id}/reversals [get]
func (h *reversalHandler) listReversalsForTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	records, err := h.reversalService.ListReversalsForTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to list reversals", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reversals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReversalResponses(records))
}
