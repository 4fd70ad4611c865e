package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const tenantHeader = "X-Tenant-ID"
const tenantKey = "tenantID"

// TenantRequired resolves the tenant once per request. Handlers read it
// with TenantID and pass it as an explicit argument into the core; the
// core itself never reaches into ambient request state.
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(tenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + tenantHeader + " header",
				"code":  "tenant_required",
			})
			return
		}
		c.Set(tenantKey, tenantID)
		c.Next()
	}
}

func TenantID(c *gin.Context) string {
	return c.GetString(tenantKey)
}
