package tenant

import (
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// GinKey mirrors the resolved salon id on the gin context for handlers and
// the request logger.
const GinKey = "salonId"

// Middleware derives the tenant scope from the authenticated principal.
// Anonymous requests and principals without a salon get None explicitly.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := None
		if p, ok := utils.PrincipalFrom(c); ok {
			scope = ForRef(p.SalonID)
		}

		if id, ok := scope.SalonID(); ok {
			c.Set(GinKey, id)
		} else {
			delete(c.Keys, GinKey)
		}

		c.Request = c.Request.WithContext(WithScope(c.Request.Context(), scope))
		c.Next()
	}
}
