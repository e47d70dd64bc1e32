package user

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterInput is the payload accepted on registration and admin creation.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// UserService covers authentication, the credential lifecycle and the
// admin-only user management operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, currentPassword, newPassword string) (string, error)
	ForgotPassword(ctx context.Context, email, resetURLBase string) error
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)

	List(ctx context.Context, opts query.Options) ([]models.User, models.Pagination, error)
	CreateUser(ctx context.Context, input RegisterInput) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, name, email, role string) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}
