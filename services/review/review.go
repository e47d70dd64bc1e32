package review

import (
	"context"

	"campfinder/database/query"
	bootcampRepo "campfinder/database/repository/bootcamp"
	reviewRepo "campfinder/database/repository/review"
	"campfinder/models"
	"campfinder/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	Repo      reviewRepo.ReviewRepository
	Bootcamps bootcampRepo.BootcampRepository
}

// List returns a page of reviews with the bootcamp summary joined in.
func (s *DefaultReviewService) List(ctx context.Context, opts query.Options) ([]models.Review, models.Pagination, error) {
	opts.Populate = &query.Populate{
		From:       "bootcamps",
		LocalField: "bootcamp",
		As:         "bootcampInfo",
		Projection: bson.M{"name": 1, "description": 1},
	}

	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "reviews")
	}
	reviews, err := s.Repo.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "reviews")
	}
	return reviews, query.Paginate(opts.Page, opts.Limit, total), nil
}

// ListByBootcamp returns every review written for one bootcamp.
func (s *DefaultReviewService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	if err := s.requireBootcamp(ctx, bootcampID); err != nil {
		return nil, err
	}
	reviews, err := s.Repo.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, utils.FromStoreError(err, "reviews")
	}
	return reviews, nil
}

// GetByID fetches a review, mapping absence to a not-found error.
func (s *DefaultReviewService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromStoreError(err, "id")
	}
	if r == nil {
		return nil, utils.NewNotFound("Review", id.Hex())
	}
	return r, nil
}

// Create adds the actor's review of a bootcamp and recomputes the bootcamp's
// average rating. A second review of the same bootcamp by the same user is
// rejected by the unique index and surfaces as a duplicate-field error.
func (s *DefaultReviewService) Create(ctx context.Context, actor *models.User, bootcampID primitive.ObjectID, input CreateInput) (*models.Review, error) {
	if err := s.requireBootcamp(ctx, bootcampID); err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 10 {
		return nil, utils.NewBadRequest("Rating must be between 1 and 10")
	}

	r := &models.Review{
		Title:    input.Title,
		Text:     input.Text,
		Rating:   input.Rating,
		Bootcamp: bootcampID,
		User:     actor.ID,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, utils.FromStoreError(err, "bootcamp,user")
	}

	s.recalcAverageRating(ctx, bootcampID)
	return r, nil
}

// Update modifies the actor's own review. Updates do not recompute the
// parent's average rating.
func (s *DefaultReviewService) Update(ctx context.Context, actor *models.User, id primitive.ObjectID, input UpdateInput) (*models.Review, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAuthor(actor, existing.User, "update"); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Text != "" {
		fields["text"] = input.Text
	}
	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 10 {
			return nil, utils.NewBadRequest("Rating must be between 1 and 10")
		}
		fields["rating"] = *input.Rating
	}
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return nil, utils.FromStoreError(err, "title")
	}
	if updated == nil {
		return nil, utils.NewNotFound("Review", id.Hex())
	}
	return updated, nil
}

// Delete removes a review and recomputes the parent's average rating.
func (s *DefaultReviewService) Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeAuthor(actor, existing.User, "delete"); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return utils.FromStoreError(err, "id")
	}

	s.recalcAverageRating(ctx, existing.Bootcamp)
	return nil
}

// recalcAverageRating recomputes the parent's mean rating, stored without
// rounding, and unsets the field once the last review is gone. Failures are
// logged, never surfaced to the triggering request.
func (s *DefaultReviewService) recalcAverageRating(ctx context.Context, bootcampID primitive.ObjectID) {
	logger := utils.GetLogger()

	avg, hasReviews, err := s.Repo.AverageRating(ctx, bootcampID)
	if err != nil {
		logger.Error("average rating aggregation failed",
			zap.String("bootcamp", bootcampID.Hex()), zap.Error(err))
		return
	}

	if !hasReviews {
		if err := s.Bootcamps.ClearAverage(ctx, bootcampID, "averageRating"); err != nil {
			logger.Error("failed to clear average rating",
				zap.String("bootcamp", bootcampID.Hex()), zap.Error(err))
		}
		return
	}

	if err := s.Bootcamps.SetAverage(ctx, bootcampID, "averageRating", avg); err != nil {
		logger.Error("failed to write average rating",
			zap.String("bootcamp", bootcampID.Hex()), zap.Error(err))
	}
}

func (s *DefaultReviewService) requireBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	parent, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return utils.FromStoreError(err, "bootcamp")
	}
	if parent == nil {
		return utils.NewNotFound("Bootcamp", bootcampID.Hex())
	}
	return nil
}

func (s *DefaultReviewService) authorizeAuthor(actor *models.User, author primitive.ObjectID, action string) error {
	if actor.IsAdmin() || actor.ID == author {
		return nil
	}
	return utils.NewForbidden("User %s is not authorized to %s this review", actor.ID.Hex(), action)
}
