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

// reconciliationHandler handles HTTP requests for the reconciliation reporter.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers reconciliation routes.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	recon := rg.Group("/reconciliation")
	{
		recon.GET("/floats/:floatID/variance", h.getVariance)
		recon.GET("/report", h.getReport)
	}
}

// getVariance godoc
// @Summary Get the float-vs-GL variance of one float account
// @Tags reconciliation
// @Produce  json
// @Param   floatID path string true "Float account ID"
// @Success 200 {object} dto.VarianceResponse
// @Failure 404 {object} map[string]string "Float account not found or no MAIN mapping"
// @Security BearerAuth
// @Router /reconciliation/floats/{floatID}/variance [get]
func (h *reconciliationHandler) getVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	floatAccountID := c.Param("floatID")

	report, err := h.reconciliationService.Variance(c.Request.Context(), floatAccountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Float account not found"})
		case errors.Is(err, apperrors.ErrMappingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Float account has no active MAIN mapping"})
		default:
			logger.Error("Failed to compute variance", slog.String("error", err.Error()), slog.String("float_account_id", floatAccountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute variance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVarianceResponse(report))
}

// getReport godoc
// @Summary Reconciliation variance report
// @Description Lists float accounts whose externally tracked balance disagrees with their MAIN GL balance beyond the configured epsilon
// @Tags reconciliation
// @Produce  json
// @Param   branchID query string false "Restrict to one branch"
// @Success 200 {array} dto.VarianceResponse
// @Security BearerAuth
// @Router /reconciliation/report [get]
func (h *reconciliationHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	reports, err := h.reconciliationService.Report(c.Request.Context(), c.Query("branchID"))
	if err != nil {
		logger.Error("Failed to build reconciliation report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build reconciliation report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVarianceResponses(reports))
}
