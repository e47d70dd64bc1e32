package review

import (
	"context"
	"testing"

	"campfinder/database/query"
	"campfinder/models"
	"campfinder/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeReviewRepo struct {
	reviews   map[primitive.ObjectID]*models.Review
	average   float64
	hasAny    bool
	createErr error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewRepo) List(ctx context.Context, opts query.Options) ([]models.Review, error) {
	out := []models.Review{}
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReviewRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.reviews)), nil
}

func (f *fakeReviewRepo) ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Review, error) {
	out := []models.Review{}
	for _, r := range f.reviews {
		if r.Bootcamp == bootcamp {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return f.reviews[id], nil
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	review.ID = primitive.NewObjectID()
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Review, error) {
	r := f.reviews[id]
	if r == nil {
		return nil, nil
	}
	if rating, ok := fields["rating"].(float64); ok {
		r.Rating = rating
	}
	return r, nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	for id, r := range f.reviews {
		if r.Bootcamp == bootcamp {
			delete(f.reviews, id)
		}
	}
	return nil
}

func (f *fakeReviewRepo) AverageRating(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	return f.average, f.hasAny, nil
}

type fakeBootcampRepo struct {
	bootcamps map[primitive.ObjectID]*models.Bootcamp
	averages  map[string]float64
	cleared   []string
}

func newFakeBootcampRepo() *fakeBootcampRepo {
	return &fakeBootcampRepo{
		bootcamps: map[primitive.ObjectID]*models.Bootcamp{},
		averages:  map[string]float64{},
	}
}

func (f *fakeBootcampRepo) List(ctx context.Context, opts query.Options) ([]models.Bootcamp, error) {
	return nil, nil
}

func (f *fakeBootcampRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.bootcamps)), nil
}

func (f *fakeBootcampRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error) {
	return f.bootcamps[id], nil
}

func (f *fakeBootcampRepo) GetByPublisher(ctx context.Context, publisher primitive.ObjectID) (*models.Bootcamp, error) {
	return nil, nil
}

func (f *fakeBootcampRepo) Create(ctx context.Context, bootcamp *models.Bootcamp) error {
	bootcamp.ID = primitive.NewObjectID()
	f.bootcamps[bootcamp.ID] = bootcamp
	return nil
}

func (f *fakeBootcampRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Bootcamp, error) {
	return f.bootcamps[id], nil
}

func (f *fakeBootcampRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.bootcamps, id)
	return nil
}

func (f *fakeBootcampRepo) WithinRadius(ctx context.Context, lng, lat, radians float64) ([]models.Bootcamp, error) {
	return nil, nil
}

func (f *fakeBootcampRepo) SetAverage(ctx context.Context, id primitive.ObjectID, field string, value float64) error {
	f.averages[field] = value
	return nil
}

func (f *fakeBootcampRepo) ClearAverage(ctx context.Context, id primitive.ObjectID, field string) error {
	f.cleared = append(f.cleared, field)
	return nil
}

func seedBootcamp(repo *fakeBootcampRepo) *models.Bootcamp {
	b := &models.Bootcamp{
		ID:        primitive.NewObjectID(),
		Name:      "Devworks Bootcamp",
		Publisher: primitive.NewObjectID(),
	}
	repo.bootcamps[b.ID] = b
	return b
}

func reviewer() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
}

func TestCreateStoresUnroundedAverageRating(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	// 7 and 8 average to 7.5, stored without rounding.
	reviews.average = 7.5
	reviews.hasAny = true

	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), reviewer(), b.ID, CreateInput{
		Title:  "Great learning experience",
		Text:   "Covered everything promised",
		Rating: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 7.5, bootcamps.averages["averageRating"])
}

func TestDeleteLastReviewClearsAverageRating(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	author := reviewer()
	r := &models.Review{ID: primitive.NewObjectID(), Bootcamp: b.ID, User: author.ID}
	reviews.reviews[r.ID] = r
	reviews.hasAny = false

	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	require.NoError(t, svc.Delete(context.Background(), author, r.ID))
	assert.Contains(t, bootcamps.cleared, "averageRating")
}

func TestCreateRejectsRatingOutOfRange(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	for _, rating := range []float64{0, 11} {
		_, err := svc.Create(context.Background(), reviewer(), b.ID, CreateInput{
			Title:  "Out of range",
			Text:   "Rating outside 1..10",
			Rating: rating,
		})
		var apiErr *utils.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Status)
	}
	assert.Empty(t, reviews.reviews)
}

func TestUpdateRejectsNonAuthor(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	author := reviewer()
	other := reviewer()
	r := &models.Review{ID: primitive.NewObjectID(), Bootcamp: b.ID, User: author.ID, Rating: 8}
	reviews.reviews[r.ID] = r

	newRating := 1.0
	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	_, err := svc.Update(context.Background(), other, r.ID, UpdateInput{Rating: &newRating})

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, 8.0, reviews.reviews[r.ID].Rating)
}

func TestDeleteAllowsAdmin(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	author := reviewer()
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	r := &models.Review{ID: primitive.NewObjectID(), Bootcamp: b.ID, User: author.ID}
	reviews.reviews[r.ID] = r

	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	require.NoError(t, svc.Delete(context.Background(), admin, r.ID))
	assert.Empty(t, reviews.reviews)
}

func TestUpdateDoesNotRecompute(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	author := reviewer()
	r := &models.Review{ID: primitive.NewObjectID(), Bootcamp: b.ID, User: author.ID, Rating: 5}
	reviews.reviews[r.ID] = r

	newRating := 10.0
	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	_, err := svc.Update(context.Background(), author, r.ID, UpdateInput{Rating: &newRating})
	require.NoError(t, err)
	assert.Empty(t, bootcamps.averages)
	assert.Empty(t, bootcamps.cleared)
}

func TestCreateDuplicateReviewIs400(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()
	b := seedBootcamp(bootcamps)

	// The unique (bootcamp, user) index surfaces as a duplicate-key write error.
	reviews.createErr = mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), reviewer(), b.ID, CreateInput{
		Title:  "Second opinion",
		Text:   "Same user, same bootcamp",
		Rating: 6,
	})

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Contains(t, apiErr.Message, "Duplicate field value entered")
	assert.Empty(t, bootcamps.averages)
}

func TestCreateOnUnknownBootcampIs404(t *testing.T) {
	bootcamps := newFakeBootcampRepo()
	reviews := newFakeReviewRepo()

	missing := primitive.NewObjectID()
	svc := &DefaultReviewService{Repo: reviews, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), reviewer(), missing, CreateInput{
		Title:  "No parent",
		Text:   "Bootcamp does not exist",
		Rating: 5,
	})

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Contains(t, apiErr.Message, missing.Hex())
}
