package bootcampRepo

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BootcampRepository defines the persistence operations for bootcamps.
type BootcampRepository interface {
	List(ctx context.Context, opts query.Options) ([]models.Bootcamp, error)
	CountAll(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error)
	GetByPublisher(ctx context.Context, publisher primitive.ObjectID) (*models.Bootcamp, error)
	Create(ctx context.Context, bootcamp *models.Bootcamp) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	WithinRadius(ctx context.Context, lng, lat, radians float64) ([]models.Bootcamp, error)
	SetAverage(ctx context.Context, id primitive.ObjectID, field string, value float64) error
	ClearAverage(ctx context.Context, id primitive.ObjectID, field string) error
}
