package course

import (
	"context"
	"math"

	"campfinder/database/query"
	bootcampRepo "campfinder/database/repository/bootcamp"
	courseRepo "campfinder/database/repository/course"
	"campfinder/models"
	"campfinder/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultCourseService is the production implementation of CourseService.
type DefaultCourseService struct {
	Repo      courseRepo.CourseRepository
	Bootcamps bootcampRepo.BootcampRepository
}

// List returns a page of courses with the parent bootcamp summary joined in.
func (s *DefaultCourseService) List(ctx context.Context, opts query.Options) ([]models.Course, models.Pagination, error) {
	opts.Populate = &query.Populate{
		From:       "bootcamps",
		LocalField: "bootcamp",
		As:         "bootcampInfo",
		Projection: bson.M{"name": 1, "description": 1},
	}

	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "courses")
	}
	courses, err := s.Repo.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "courses")
	}
	return courses, query.Paginate(opts.Page, opts.Limit, total), nil
}

// ListByBootcamp returns the full unpaginated course list of one bootcamp.
func (s *DefaultCourseService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	if err := s.requireBootcamp(ctx, bootcampID); err != nil {
		return nil, err
	}
	courses, err := s.Repo.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, utils.FromStoreError(err, "courses")
	}
	return courses, nil
}

// GetByID fetches a course, mapping absence to a not-found error.
func (s *DefaultCourseService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromStoreError(err, "id")
	}
	if c == nil {
		return nil, utils.NewNotFound("Course", id.Hex())
	}
	return c, nil
}

// Create adds a course under a bootcamp owned by the actor and recomputes
// the bootcamp's average cost.
func (s *DefaultCourseService) Create(ctx context.Context, actor *models.User, bootcampID primitive.ObjectID, input CreateInput) (*models.Course, error) {
	parent, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, utils.FromStoreError(err, "bootcamp")
	}
	if parent == nil {
		return nil, utils.NewNotFound("Bootcamp", bootcampID.Hex())
	}
	if err := s.authorizeOwner(actor, parent.Publisher, "add a course to"); err != nil {
		return nil, err
	}
	if !models.ValidSkillLevels[input.MinimumSkill] {
		return nil, utils.NewBadRequest("Invalid minimum skill: %s", input.MinimumSkill)
	}

	c := &models.Course{
		Title:                input.Title,
		Description:          input.Description,
		Weeks:                input.Weeks,
		Tuition:              input.Tuition,
		MinimumSkill:         input.MinimumSkill,
		ScholarshipAvailable: input.ScholarshipAvailable,
		Bootcamp:             bootcampID,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, utils.FromStoreError(err, "title")
	}

	s.recalcAverageCost(ctx, bootcampID)
	return c, nil
}

// Update modifies a course after the transitive ownership check. Updates do
// not recompute the parent's average cost.
func (s *DefaultCourseService) Update(ctx context.Context, actor *models.User, id primitive.ObjectID, input UpdateInput) (*models.Course, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeThroughBootcamp(ctx, actor, existing.Bootcamp, "update"); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.Weeks != "" {
		fields["weeks"] = input.Weeks
	}
	if input.Tuition != nil {
		fields["tuition"] = *input.Tuition
	}
	if input.MinimumSkill != "" {
		if !models.ValidSkillLevels[input.MinimumSkill] {
			return nil, utils.NewBadRequest("Invalid minimum skill: %s", input.MinimumSkill)
		}
		fields["minimumSkill"] = input.MinimumSkill
	}
	if input.ScholarshipAvailable != nil {
		fields["scholarshipAvailable"] = *input.ScholarshipAvailable
	}
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return nil, utils.FromStoreError(err, "title")
	}
	if updated == nil {
		return nil, utils.NewNotFound("Course", id.Hex())
	}
	return updated, nil
}

// Delete removes a course and recomputes the parent's average cost.
func (s *DefaultCourseService) Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeThroughBootcamp(ctx, actor, existing.Bootcamp, "delete"); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return utils.FromStoreError(err, "id")
	}

	s.recalcAverageCost(ctx, existing.Bootcamp)
	return nil
}

// recalcAverageCost recomputes the parent's average tuition, rounded up to
// the nearest multiple of 10, and unsets the field once the last course is
// gone. Failures are logged, never surfaced to the triggering request.
func (s *DefaultCourseService) recalcAverageCost(ctx context.Context, bootcampID primitive.ObjectID) {
	logger := utils.GetLogger()

	avg, hasCourses, err := s.Repo.AverageTuition(ctx, bootcampID)
	if err != nil {
		logger.Error("average cost aggregation failed",
			zap.String("bootcamp", bootcampID.Hex()), zap.Error(err))
		return
	}

	if !hasCourses {
		if err := s.Bootcamps.ClearAverage(ctx, bootcampID, "averageCost"); err != nil {
			logger.Error("failed to clear average cost",
				zap.String("bootcamp", bootcampID.Hex()), zap.Error(err))
		}
		return
	}

	rounded := math.Ceil(avg/10) * 10
	if err := s.Bootcamps.SetAverage(ctx, bootcampID, "averageCost", rounded); err != nil {
		logger.Error("failed to write average cost",
			zap.String("bootcamp", bootcampID.Hex()), zap.Error(err))
	}
}

func (s *DefaultCourseService) requireBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	parent, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return utils.FromStoreError(err, "bootcamp")
	}
	if parent == nil {
		return utils.NewNotFound("Bootcamp", bootcampID.Hex())
	}
	return nil
}

// authorizeThroughBootcamp resolves the parent and applies the ownership
// check against its publisher.
func (s *DefaultCourseService) authorizeThroughBootcamp(ctx context.Context, actor *models.User, bootcampID primitive.ObjectID, action string) error {
	parent, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return utils.FromStoreError(err, "bootcamp")
	}
	if parent == nil {
		return utils.NewNotFound("Bootcamp", bootcampID.Hex())
	}
	return s.authorizeOwner(actor, parent.Publisher, action)
}

func (s *DefaultCourseService) authorizeOwner(actor *models.User, owner primitive.ObjectID, action string) error {
	if actor.IsAdmin() || actor.ID == owner {
		return nil
	}
	return utils.NewForbidden("User %s is not authorized to %s this course", actor.ID.Hex(), action)
}
