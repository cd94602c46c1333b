package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/bizfolio/biz_management_app/internal/middleware"
)

// fiscalPeriodHandler administers period open/close state.
type fiscalPeriodHandler struct {
	fiscalPeriodService portssvc.FiscalPeriodSvcFacade
}

func newFiscalPeriodHandler(fps portssvc.FiscalPeriodSvcFacade) *fiscalPeriodHandler {
	return &fiscalPeriodHandler{fiscalPeriodService: fps}
}

func registerFiscalPeriodRoutes(rg *gin.RouterGroup, fiscalPeriodService portssvc.FiscalPeriodSvcFacade) {
	h := newFiscalPeriodHandler(fiscalPeriodService)

	periods := rg.Group("/fiscal-periods")
	{
		periods.PUT("", h.upsertPeriod)
		periods.GET("", h.listPeriods)
	}
}

func (h *fiscalPeriodHandler) upsertPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpsertFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.fiscalPeriodService.UpsertPeriod(c.Request.Context(), companyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to upsert fiscal period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert fiscal period"})
		return
	}

	logger.Info("Fiscal period upserted",
		slog.String("period_key", period.PeriodKey),
		slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, period)
}

func (h *fiscalPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	periods, err := h.fiscalPeriodService.ListPeriods(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list fiscal periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal periods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": periods})
}
