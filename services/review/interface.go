package review

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateInput is the payload accepted when reviewing a bootcamp.
type CreateInput struct {
	Title  string  `json:"title" binding:"required"`
	Text   string  `json:"text" binding:"required"`
	Rating float64 `json:"rating" binding:"required"`
}

// UpdateInput is the partial payload accepted on update. Rating changes do
// not trigger an average-rating recompute; only create and delete do.
type UpdateInput struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Rating *float64 `json:"rating"`
}

// ReviewService orchestrates review CRUD. A review belongs to its author;
// only the author or an admin may modify or delete it.
type ReviewService interface {
	List(ctx context.Context, opts query.Options) ([]models.Review, models.Pagination, error)
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, actor *models.User, bootcampID primitive.ObjectID, input CreateInput) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, id primitive.ObjectID, input UpdateInput) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error
}
