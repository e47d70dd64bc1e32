package reviewRepo

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRepository defines the persistence operations for reviews.
type ReviewRepository interface {
	List(ctx context.Context, opts query.Options) ([]models.Review, error)
	CountAll(ctx context.Context) (int64, error)
	ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error
	AverageRating(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error)
}
