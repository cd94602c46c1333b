package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CompanyHeader is the request header carrying the tenant company ID.
// Session-based tenant resolution lives outside this service; the API trusts
// the upstream gateway to have authenticated the header.
const CompanyHeader = "X-Company-ID"

// UserHeader is the request header carrying the acting user ID.
const UserHeader = "X-User-ID"

// CompanyScopeMiddleware extracts the tenant company ID (and acting user) from
// request headers and stores them in the Gin context. Requests without a
// company ID are rejected: every read and write in this service is
// company-scoped.
func CompanyScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(CompanyHeader)
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + CompanyHeader + " header"})
			return
		}
		c.Set(string(companyIDKey), companyID)

		if userID := c.GetHeader(UserHeader); userID != "" {
			c.Set(string(userIDKey), userID)
		} else {
			c.Set(string(userIDKey), "system")
		}

		c.Next()
	}
}
