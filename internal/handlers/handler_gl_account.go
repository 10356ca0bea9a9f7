package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kelvinbaffour/branchledger/internal/apperrors"
	"github.com/kelvinbaffour/branchledger/internal/core/domain"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
)

// glAccountHandler handles HTTP requests for the chart-of-accounts registry.
type glAccountHandler struct {
	registryService portssvc.RegistrySvcFacade
}

func newGLAccountHandler(rs portssvc.RegistrySvcFacade) *glAccountHandler {
	return &glAccountHandler{registryService: rs}
}

// registerGLAccountRoutes registers chart-of-accounts routes.
func registerGLAccountRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade) {
	h := newGLAccountHandler(registryService)

	accounts := rg.Group("/gl-accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/lines", h.listAccountLines)
		accounts.DELETE("/:id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Create a GL account
// @Description Creates the account if the code is unused; returns the existing account otherwise
// @Tags gl-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateGLAccountRequest true "Account details"
// @Success 201 {object} dto.GLAccountResponse
// @Failure 400 {object} map[string]string "Invalid category or code"
// @Security BearerAuth
// @Router /gl-accounts [post]
func (h *glAccountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateGLAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GL account creation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.registryService.GetOrCreateAccount(c.Request.Context(),
		req.Code, req.Name, domain.AccountCategory(req.Category), req.BranchID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSchema) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create GL account", slog.String("error", err.Error()), slog.String("code", req.Code))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create GL account"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToGLAccountResponse(account))
}

// getAccount godoc
// @Summary Get a GL account
// @Tags gl-accounts
// @Produce  json
// @Param   id path string true "GL account ID"
// @Success 200 {object} dto.GLAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /gl-accounts/{id} [get]
func (h *glAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.registryService.GetAccountByRef(c.Request.Context(), domain.RefByID(accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "GL account not found"})
			return
		}
		logger.Error("Failed to get GL account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve GL account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGLAccountResponse(account))
}

// listAccounts godoc
// @Summary List active GL accounts
// @Tags gl-accounts
// @Produce  json
// @Param   branchID query string false "Restrict to one branch"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   offset query int false "Offset into the result set"
// @Success 200 {array} dto.GLAccountResponse
// @Security BearerAuth
// @Router /gl-accounts [get]
func (h *glAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	accounts, err := h.registryService.ListAccounts(c.Request.Context(), c.Query("branchID"), limit, offset)
	if err != nil {
		logger.Error("Failed to list GL accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list GL accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGLAccountResponses(accounts))
}

// listAccountLines godoc
// @Summary List entry lines touching a GL account
// @Description Retrieves the posted activity of a GL account, newest first, with cursor pagination
// @Tags gl-accounts
// @Produce  json
// @Param   id path string true "GL account ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /gl-accounts/{id}/lines [get]
func (h *glAccountHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.registryService.ListAccountLines(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "GL account not found"})
			return
		}
		logger.Error("Failed to list account lines", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account lines"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deactivateAccount godoc
// @Summary Deactivate a GL account
// @Description Marks the account inactive. Only zero-balance accounts can be deactivated; accounts are never deleted.
// @Tags gl-accounts
// @Param   id path string true "GL account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account carries a non-zero balance"
// @Security BearerAuth
// @Router /gl-accounts/{id} [delete]
func (h *glAccountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.registryService.DeactivateAccount(c.Request.Context(), accountID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "GL account not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to deactivate GL account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate GL account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
