package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/core/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/bizfolio/biz_management_app/internal/middleware"
)

// journalHandler handles HTTP requests for journal batches and the ledger.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal batch and ledger routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournalBatch)
		journals.GET("", h.listJournalBatches)
		journals.GET("/:journalID", h.getJournalBatch)
		journals.POST("/:journalID/reverse", h.reverseJournalBatch)
	}

	rg.GET("/accounts/:accountID/entries", h.listEntriesByAccount)
}

func (h *journalHandler) createJournalBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateJournalBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createJournalBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.journalService.CreateJournalBatch(c.Request.Context(), companyID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJournalUnbalanced):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Batch references unknown accounts"})
		default:
			logger.Error("Failed to post journal batch", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal batch"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *journalHandler) listJournalBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournalBatches(c.Request.Context(), companyID, params)
	if err != nil {
		logger.Error("Failed to list journal batches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal batches"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) getJournalBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalBatch(c.Request.Context(), companyID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal batch not found"})
			return
		}
		logger.Error("Failed to get journal batch", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) reverseJournalBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	journalID := c.Param("journalID")

	var req dto.ReverseJournalBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reversing, err := h.journalService.ReverseJournalBatch(c.Request.Context(), companyID, journalID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal batch not found"})
		case errors.Is(err, services.ErrAlreadyReversed):
			c.JSON(http.StatusConflict, gin.H{"error": "Journal batch is already reversed"})
		case errors.Is(err, services.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse journal batch", slog.String("journal_id", journalID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse journal batch"})
		}
		return
	}

	logger.Info("Journal batch reversed", slog.String("journal_id", journalID), slog.String("reversing_journal_id", reversing.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversing))
}

func (h *journalHandler) listEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListEntriesByAccount(c.Request.Context(), companyID, accountID, params)
	if err != nil {
		logger.Error("Failed to list account ledger", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
