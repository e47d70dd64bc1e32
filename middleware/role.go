package middleware

import (
	"fmt"
	"net/http"

	"campfinder/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects authenticated users whose role is not in the allowed
// set. It must run after Protect.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		usr := CurrentUser(c)
		if usr == nil {
			abortUnauthorized(c)
			return
		}
		if !allowed[usr.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   fmt.Sprintf("User role %s is not authorized to access this route", usr.Role),
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user Protect stored on the context, or nil when
// the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	usr, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return usr
}
