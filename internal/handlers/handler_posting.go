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

// postingHandler exposes the domain posting helpers over HTTP. Each endpoint
// posts one business event as a balanced journal batch.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// registerPostingRoutes registers business event posting routes.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/ar-invoice", h.postARInvoice)
		postings.POST("/cogs", h.postCOGS)
		postings.POST("/ar-payment", h.postARPayment)
		postings.POST("/sale", h.recordSale)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.issueInvoice)
		invoices.GET("/open", h.listOpenInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
	}
}

// respondPostingError maps posting helper failures to HTTP statuses.
func respondPostingError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPeriodClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrJournalUnbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *postingHandler) postARInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.PostARInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.postingService.PostARInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondPostingError(c, logger, "post AR invoice", err)
		return
	}

	logger.Info("AR invoice posted", slog.String("journal_id", journal.JournalID), slog.String("invoice_id", req.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *postingHandler) postCOGS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.PostCOGSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.postingService.PostCOGS(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondPostingError(c, logger, "post COGS", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *postingHandler) postARPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.PostARPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.postingService.PostARPayment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondPostingError(c, logger, "post AR payment", err)
		return
	}

	logger.Info("AR payment posted", slog.String("journal_id", journal.JournalID), slog.String("receipt_id", req.ReceiptID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *postingHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	journal, err := h.postingService.RecordSale(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondPostingError(c, logger, "record sale", err)
		return
	}

	logger.Info("Sale recorded", slog.String("journal_id", journal.JournalID), slog.String("invoice_id", req.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *postingHandler) issueInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	invoice, err := h.postingService.IssueInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondPostingError(c, logger, "issue invoice", err)
		return
	}

	logger.Info("Invoice issued", slog.String("invoice_id", invoice.InvoiceID), slog.String("number", invoice.Number))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *postingHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	invoice, err := h.postingService.GetInvoice(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *postingHandler) listOpenInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	invoices, err := h.postingService.ListOpenInvoices(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list open invoices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list open invoices"})
		return
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, gin.H{"invoices": responses})
}
