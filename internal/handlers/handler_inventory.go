package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bizfolio/biz_management_app/internal/apperrors"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/core/services"
	"github.com/bizfolio/biz_management_app/internal/dto"
	"github.com/bizfolio/biz_management_app/internal/middleware"
)

// inventoryHandler handles HTTP requests for products, costing and stock.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers product and stock movement routes.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("/:productID", h.getProduct)
		products.GET("/:productID/cogs-quote", h.cogsQuote)
		products.GET("/:productID/movements", h.listMovements)
	}

	inventory := rg.Group("/inventory")
	{
		inventory.GET("/stock-levels", h.listStockLevels)
		inventory.POST("/receipts", h.receivePurchaseLine)
		inventory.POST("/adjustments", h.adjustStock)
	}
}

func respondInventoryError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, services.ErrProductInactive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPeriodClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *inventoryHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondInventoryError(c, logger, "create product", err)
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *inventoryHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}
	productID := c.Param("productID")

	product, err := h.inventoryService.GetProduct(c.Request.Context(), companyID, productID)
	if err != nil {
		respondInventoryError(c, logger, "get product", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// cogsQuote returns the cost of goods sold for a prospective sale quantity
// without recording anything.
func (h *inventoryHandler) cogsQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}
	productID := c.Param("productID")

	qtyStr := c.Query("quantity")
	quantity, err := decimal.NewFromString(qtyStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	amount, err := h.inventoryService.CogsForSale(c.Request.Context(), companyID, productID, quantity)
	if err != nil {
		respondInventoryError(c, logger, "quote COGS", err)
		return
	}

	product, err := h.inventoryService.GetProduct(c.Request.Context(), companyID, productID)
	if err != nil {
		respondInventoryError(c, logger, "quote COGS", err)
		return
	}

	c.JSON(http.StatusOK, dto.CogsQuoteResponse{
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  product.AvgCost,
		Amount:    amount,
	})
}

func (h *inventoryHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}
	productID := c.Param("productID")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), companyID, productID, limit)
	if err != nil {
		respondInventoryError(c, logger, "list movements", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

func (h *inventoryHandler) listStockLevels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	levels, err := h.inventoryService.ListStockLevels(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list stock levels", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock levels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stockLevels": dto.ToStockLevelResponses(levels)})
}

func (h *inventoryHandler) receivePurchaseLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.ReceivePurchaseLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.inventoryService.ReceivePurchaseLine(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondInventoryError(c, logger, "receive purchase line", err)
		return
	}

	logger.Info("Purchase line received",
		slog.String("product_id", product.ProductID),
		slog.String("new_avg_cost", product.AvgCost.String()))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *inventoryHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	movement, err := h.inventoryService.AdjustStock(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondInventoryError(c, logger, "adjust stock", err)
		return
	}

	logger.Info("Stock adjusted",
		slog.String("product_id", movement.ProductID),
		slog.String("qty_change", movement.QtyChange.String()),
		slog.String("reason", string(movement.Reason)))
	c.JSON(http.StatusCreated, movement)
}
