package userRepo

import (
	"context"
	"time"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	List(ctx context.Context, opts query.Options) ([]models.User, error)
	CountAll(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
}
