package courseRepo

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseRepository defines the persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context, opts query.Options) ([]models.Course, error)
	CountAll(ctx context.Context) (int64, error)
	ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error
	AverageTuition(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error)
}
