package bootcamp

import (
	"context"
	"io"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateInput is the payload accepted when publishing a bootcamp. Address is
// consumed to produce the geocoded location and never stored as-is.
type CreateInput struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

// UpdateInput is the partial payload accepted on update. Derived fields
// (averageCost, averageRating, photo) are deliberately absent.
type UpdateInput struct {
	Name          string   `json:"name" binding:"omitempty,max=50"`
	Description   string   `json:"description" binding:"omitempty,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

// BootcampService orchestrates bootcamp CRUD, the geospatial search and
// photo uploads, enforcing publisher ownership on every mutation.
type BootcampService interface {
	List(ctx context.Context, opts query.Options) ([]models.Bootcamp, models.Pagination, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error)
	Create(ctx context.Context, actor *models.User, input CreateInput) (*models.Bootcamp, error)
	Update(ctx context.Context, actor *models.User, id primitive.ObjectID, input UpdateInput) (*models.Bootcamp, error)
	Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error
	WithinRadius(ctx context.Context, zipcode string, distance float64, unit string) ([]models.Bootcamp, error)
	UploadPhoto(ctx context.Context, actor *models.User, id primitive.ObjectID, file io.Reader, ext string) (string, error)
}
