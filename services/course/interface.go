package course

import (
	"context"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateInput is the payload accepted when adding a course to a bootcamp.
type CreateInput struct {
	Title                string  `json:"title" binding:"required"`
	Description          string  `json:"description" binding:"required"`
	Weeks                string  `json:"weeks" binding:"required"`
	Tuition              float64 `json:"tuition" binding:"required"`
	MinimumSkill         string  `json:"minimumSkill" binding:"required"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

// UpdateInput is the partial payload accepted on update. Tuition changes do
// not trigger an average-cost recompute; only create and delete do.
type UpdateInput struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Weeks                string   `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         string   `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

// CourseService orchestrates course CRUD with transitive ownership checks
// through the parent bootcamp's publisher.
type CourseService interface {
	List(ctx context.Context, opts query.Options) ([]models.Course, models.Pagination, error)
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	Create(ctx context.Context, actor *models.User, bootcampID primitive.ObjectID, input CreateInput) (*models.Course, error)
	Update(ctx context.Context, actor *models.User, id primitive.ObjectID, input UpdateInput) (*models.Course, error)
	Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error
}
