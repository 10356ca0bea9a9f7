package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
)

// mappingHandler handles HTTP requests for the account mapping directory.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func newMappingHandler(ms portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: ms}
}

// registerMappingRoutes registers mapping routes under a float account scope.
func registerMappingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := newMappingHandler(mappingService)

	floats := rg.Group("/floats/:floatID")
	{
		floats.GET("/mappings", h.listMappings)
		floats.PUT("/mappings", h.upsertMapping)
		floats.POST("/mappings/provision", h.provisionMappings)
	}
}

// listMappings godoc
// @Summary List account mappings for a float account
// @Description Retrieves all mappings, active and superseded, newest first
// @Tags mappings
// @Produce  json
// @Param   floatID path string true "Float account ID"
// @Success 200 {array} dto.MappingResponse
// @Failure 404 {object} map[string]string "Float account not found"
// @Security BearerAuth
// @Router /floats/{floatID}/mappings [get]
func (h *mappingHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	floatAccountID := c.Param("floatID")

	mappings, err := h.mappingService.ListMappings(c.Request.Context(), floatAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Float account not found"})
			return
		}
		logger.Error("Failed to list mappings", slog.String("error", err.Error()), slog.String("float_account_id", floatAccountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponses(mappings))
}

// upsertMapping godoc
// @Summary Re-map a float account role to a GL account
// @Description Replaces the active mapping for the role; the superseded mapping is kept inactive for audit
// @Tags mappings
// @Accept  json
// @Produce  json
// @Param   floatID path string true "Float account ID"
// @Param   mapping body dto.UpsertMappingRequest true "Mapping target (GL account ID or code) and role"
// @Success 200 {object} dto.MappingResponse
// @Failure 400 {object} map[string]string "Invalid role or target"
// @Failure 404 {object} map[string]string "Float or GL account not found"
// @Failure 409 {object} map[string]string "Concurrent re-mapping conflict"
// @Security BearerAuth
// @Router /floats/{floatID}/mappings [put]
func (h *mappingHandler) upsertMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	floatAccountID := c.Param("floatID")

	var req dto.UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for mapping upsert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var ref domain.GLAccountRef
	if req.GLAccountID != "" {
		ref = domain.RefByID(req.GLAccountID)
	} else {
		ref = domain.RefByCode(req.GLAccountCode)
	}

	mapping, err := h.mappingService.UpsertMapping(c.Request.Context(), floatAccountID, ref, domain.MappingRole(req.Role), actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Mapping was changed concurrently, retry"})
		default:
			logger.Error("Failed to upsert mapping", slog.String("error", err.Error()), slog.String("float_account_id", floatAccountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mapping"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponse(mapping))
}

// provisionMappings godoc
// @Summary Auto-provision GL accounts and mappings for a float account
// @Description Derives and creates the GL accounts and mappings the float account's type mandates. Idempotent.
// @Tags mappings
// @Produce  json
// @Param   floatID path string true "Float account ID"
// @Success 201 {array} dto.MappingResponse
// @Failure 404 {object} map[string]string "Float account not found"
// @Security BearerAuth
// @Router /floats/{floatID}/mappings/provision [post]
func (h *mappingHandler) provisionMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	floatAccountID := c.Param("floatID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	mappings, err := h.mappingService.AutoProvision(c.Request.Context(), floatAccountID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Float account not found"})
			return
		}
		logger.Error("Failed to provision mappings", slog.String("error", err.Error()), slog.String("float_account_id", floatAccountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision mappings"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToMappingResponses(mappings))
}
