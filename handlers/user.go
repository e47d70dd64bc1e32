package handlers

import (
	"net/http"

	"campfinder/database/query"
	userService "campfinder/services/user"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin-only user management endpoints.
type UserHandler struct {
	Users userService.UserService
}

// ListUsersHandler handles GET /api/v1/users.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	opts := query.Parse(c.Request.URL.Query())
	users, pagination, err := h.Users.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, len(users), &pagination, users)
}

// GetUserHandler handles GET /api/v1/users/:id.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "User")
	if !ok {
		return
	}
	usr, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, usr)
}

// CreateUserHandler handles POST /api/v1/users. Unlike registration, an
// admin may create a user with any role.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var input userService.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	usr, err := h.Users.CreateUser(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, usr)
}

// UpdateUserHandler handles PUT /api/v1/users/:id.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "User")
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email" binding:"omitempty,email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	usr, err := h.Users.UpdateUser(c.Request.Context(), id, req.Name, req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/v1/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id, ok := parseObjectID(c, "id", "User")
	if !ok {
		return
	}
	if err := h.Users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{})
}
