package handlers

import (
	"fmt"
	"net/http"
	"time"

	"campfinder/config"
	"campfinder/middleware"
	userService "campfinder/services/user"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the credential lifecycle.
type AuthHandler struct {
	Users userService.UserService
}

// sendTokenResponse issues the session cookie alongside the JSON token so
// both browser and API clients can authenticate follow-up requests.
func sendTokenResponse(c *gin.Context, status int, token string) {
	maxAge := int((time.Duration(config.AppConfig.CookieExpireDays) * 24 * time.Hour).Seconds())
	c.SetCookie("token", token, maxAge, "/", "", config.IsProduction(), true)
	c.JSON(status, gin.H{"success": true, "token": token})
}

// RegisterHandler handles POST /api/v1/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var input userService.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	_, token, err := h.Users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	sendTokenResponse(c, http.StatusCreated, token)
}

// LoginHandler handles POST /api/v1/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide an email and password")
		return
	}

	_, token, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	sendTokenResponse(c, http.StatusOK, token)
}

// LogoutHandler handles GET /api/v1/auth/logout by expiring the cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.SetCookie("token", "none", 10, "/", "", config.IsProduction(), true)
	respondOK(c, http.StatusOK, gin.H{})
}

// MeHandler handles GET /api/v1/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	usr := middleware.CurrentUser(c)
	respondOK(c, http.StatusOK, usr)
}

// UpdateDetailsHandler handles PUT /api/v1/auth/updatedetails.
func (h *AuthHandler) UpdateDetailsHandler(c *gin.Context) {
	usr := middleware.CurrentUser(c)

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := h.Users.UpdateDetails(c.Request.Context(), usr.ID, req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

// UpdatePasswordHandler handles PUT /api/v1/auth/updatepassword. A correct
// current password yields a fresh token.
func (h *AuthHandler) UpdatePasswordHandler(c *gin.Context) {
	usr := middleware.CurrentUser(c)

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	token, err := h.Users.UpdatePassword(c.Request.Context(), usr.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	sendTokenResponse(c, http.StatusOK, token)
}

// ForgotPasswordHandler handles POST /api/v1/auth/forgotpassword. The reset
// URL embedded in the email is derived from the incoming request.
func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Please provide an email")
		return
	}

	scheme := "http"
	if c.Request.TLS != nil || config.IsProduction() {
		scheme = "https"
	}
	resetURLBase := fmt.Sprintf("%s://%s/api/v1/auth/resetpassword", scheme, c.Request.Host)

	if err := h.Users.ForgotPassword(c.Request.Context(), req.Email, resetURLBase); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Email sent")
}

// ResetPasswordHandler handles PUT /api/v1/auth/resetpassword/:resettoken.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	token, err := h.Users.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	sendTokenResponse(c, http.StatusOK, token)
}
