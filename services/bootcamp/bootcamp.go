package bootcamp

import (
	"context"
	"regexp"
	"strings"

	"campfinder/database/query"
	bootcampRepo "campfinder/database/repository/bootcamp"
	courseRepo "campfinder/database/repository/course"
	reviewRepo "campfinder/database/repository/review"
	"campfinder/models"
	"campfinder/services/geocode"
	"campfinder/services/storage"
	"campfinder/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultBootcampService is the production implementation of BootcampService.
type DefaultBootcampService struct {
	Repo     bootcampRepo.BootcampRepository
	Courses  courseRepo.CourseRepository
	Reviews  reviewRepo.ReviewRepository
	Geocoder geocode.Geocoder
	Storage  storage.PhotoStorage
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// List returns a page of bootcamps with pagination metadata computed
// against the unfiltered collection count.
func (s *DefaultBootcampService) List(ctx context.Context, opts query.Options) ([]models.Bootcamp, models.Pagination, error) {
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "bootcamps")
	}
	bootcamps, err := s.Repo.List(ctx, opts)
	if err != nil {
		return nil, models.Pagination{}, utils.FromStoreError(err, "bootcamps")
	}
	return bootcamps, query.Paginate(opts.Page, opts.Limit, total), nil
}

// GetByID fetches a bootcamp, mapping absence to a not-found error echoing
// the attempted identifier.
func (s *DefaultBootcampService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromStoreError(err, "id")
	}
	if b == nil {
		return nil, utils.NewNotFound("Bootcamp", id.Hex())
	}
	return b, nil
}

// Create publishes a bootcamp under the acting user. A non-admin publisher
// may only have one published bootcamp at a time. The submitted address is
// geocoded into the stored location.
func (s *DefaultBootcampService) Create(ctx context.Context, actor *models.User, input CreateInput) (*models.Bootcamp, error) {
	if !actor.IsAdmin() {
		existing, err := s.Repo.GetByPublisher(ctx, actor.ID)
		if err != nil {
			return nil, utils.FromStoreError(err, "publisher")
		}
		if existing != nil {
			return nil, utils.NewBadRequest("The user with ID %s has already published a bootcamp", actor.ID.Hex())
		}
	}

	if err := validateCareers(input.Careers); err != nil {
		return nil, err
	}

	loc, err := s.Geocoder.Geocode(ctx, input.Address)
	if err != nil {
		utils.GetLogger().Error("geocoding failed", zap.String("address", input.Address), zap.Error(err))
		return nil, utils.NewServerError("Could not geocode address")
	}

	b := &models.Bootcamp{
		Name:          input.Name,
		Slug:          slugify(input.Name),
		Description:   input.Description,
		Website:       input.Website,
		Phone:         input.Phone,
		Email:         input.Email,
		Location:      *loc,
		Careers:       input.Careers,
		Photo:         models.DefaultPhoto,
		Housing:       input.Housing,
		JobAssistance: input.JobAssistance,
		JobGuarantee:  input.JobGuarantee,
		AcceptGi:      input.AcceptGi,
		Publisher:     actor.ID,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, utils.FromStoreError(err, "name")
	}
	return b, nil
}

// Update modifies a bootcamp after checking ownership. A new address is
// re-geocoded; derived aggregates are never writable through this path.
func (s *DefaultBootcampService) Update(ctx context.Context, actor *models.User, id primitive.ObjectID, input UpdateInput) (*models.Bootcamp, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, existing.Publisher, "update"); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Name != "" {
		fields["name"] = input.Name
		fields["slug"] = slugify(input.Name)
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.Website != "" {
		fields["website"] = input.Website
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Email != "" {
		fields["email"] = input.Email
	}
	if input.Careers != nil {
		if err := validateCareers(input.Careers); err != nil {
			return nil, err
		}
		fields["careers"] = input.Careers
	}
	if input.Address != "" {
		loc, err := s.Geocoder.Geocode(ctx, input.Address)
		if err != nil {
			utils.GetLogger().Error("geocoding failed", zap.String("address", input.Address), zap.Error(err))
			return nil, utils.NewServerError("Could not geocode address")
		}
		fields["location"] = loc
	}
	if input.Housing != nil {
		fields["housing"] = *input.Housing
	}
	if input.JobAssistance != nil {
		fields["jobAssistance"] = *input.JobAssistance
	}
	if input.JobGuarantee != nil {
		fields["jobGuarantee"] = *input.JobGuarantee
	}
	if input.AcceptGi != nil {
		fields["acceptGi"] = *input.AcceptGi
	}
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return nil, utils.FromStoreError(err, "name")
	}
	if updated == nil {
		return nil, utils.NewNotFound("Bootcamp", id.Hex())
	}
	return updated, nil
}

// Delete removes a bootcamp and cascades to its courses and reviews. The
// cascade runs explicitly here so it fires however the children were
// created, with no reliance on per-document lifecycle hooks.
func (s *DefaultBootcampService) Delete(ctx context.Context, actor *models.User, id primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actor, existing.Publisher, "delete"); err != nil {
		return err
	}

	if err := s.Courses.DeleteByBootcamp(ctx, id); err != nil {
		return utils.FromStoreError(err, "courses")
	}
	if err := s.Reviews.DeleteByBootcamp(ctx, id); err != nil {
		return utils.FromStoreError(err, "reviews")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return utils.FromStoreError(err, "id")
	}

	if existing.Photo != models.DefaultPhoto {
		if err := s.Storage.DeletePhoto(ctx, strings.TrimSuffix(existing.Photo, extOf(existing.Photo))); err != nil {
			utils.GetLogger().Warn("failed to delete bootcamp photo", zap.Error(err))
		}
	}
	return nil
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func validateCareers(careers []string) error {
	if len(careers) == 0 {
		return utils.NewBadRequest("Please add at least one career")
	}
	for _, c := range careers {
		if !models.ValidCareers[c] {
			return utils.NewBadRequest("Invalid career: %s", c)
		}
	}
	return nil
}

// authorizeOwner rejects actors who neither own the resource nor hold the
// admin role.
func authorizeOwner(actor *models.User, owner primitive.ObjectID, action string) error {
	if actor.IsAdmin() || actor.ID == owner {
		return nil
	}
	return utils.NewForbidden("User %s is not authorized to %s this bootcamp", actor.ID.Hex(), action)
}
