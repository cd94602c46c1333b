package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bizfolio/biz_management_app/internal/core/domain"
	portssvc "github.com/bizfolio/biz_management_app/internal/core/ports/services"
	"github.com/bizfolio/biz_management_app/internal/middleware"
	"github.com/bizfolio/biz_management_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	registerHomeRoutes(r)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route is tenant-scoped via the company header.
	v1 := r.Group("/api/v1", middleware.CompanyScopeMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerPostingRoutes(v1, services.Posting)
	registerInventoryRoutes(v1, services.Inventory)
	registerReportingRoutes(v1, services.Reporting)
	registerFiscalPeriodRoutes(v1, services.FiscalPeriod)
}

// registerCustomValidators attaches binding-tag validators for domain enums.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		switch domain.AccountType(fl.Field().String()) {
		case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("movementreason", func(fl validator.FieldLevel) bool {
		switch domain.MovementReason(fl.Field().String()) {
		case domain.MovementSale, domain.MovementPurchase, domain.MovementAdjustment,
			domain.MovementReturn, domain.MovementTransfer:
			return true
		}
		return false
	})
}

// requestScope pulls the tenant company ID and acting user ID out of the
// request context. It writes the error response itself when either is
// missing, so callers just return on !ok.
func requestScope(c *gin.Context) (companyID, userID string, ok bool) {
	companyID, found := middleware.GetCompanyIDFromContext(c)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID required"})
		return "", "", false
	}
	userID, found = middleware.GetUserIDFromContext(c)
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return companyID, userID, true
}
