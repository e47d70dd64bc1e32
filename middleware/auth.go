package middleware

import (
	"net/http"
	"strings"

	userRepo "campfinder/database/repository/user"
	"campfinder/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentUserKey is the context key under which Protect stores the
// authenticated user.
const CurrentUserKey = "currentUser"

// Protect authenticates the request from a Bearer token or the token
// cookie, resolves the user, and stores it in the request context. Every
// failure mode answers with the same generic 401.
func Protect(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		idHex, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		id, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		usr, err := users.GetByID(c.Request.Context(), id)
		if err != nil || usr == nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CurrentUserKey, usr)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Not authorized to access this route",
	})
}
