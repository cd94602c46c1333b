package middleware

import "github.com/gin-gonic/gin"

const (
	companyIDKey = contextKey("companyID")
	userIDKey    = contextKey("userID")
)

// GetCompanyIDFromContext retrieves the tenant company ID from the Gin context.
// It returns the company ID and a boolean indicating if it was found.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(companyIDKey))
	if !exists {
		if ctxVal := c.Request.Context().Value(companyIDKey); ctxVal != nil {
			if s, ok := ctxVal.(string); ok {
				return s, true
			}
		}
		return "", false
	}
	companyID, ok := val.(string)
	if !ok {
		return "", false
	}
	return companyID, true
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
