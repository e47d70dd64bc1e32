package course

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
)

type fakeCourseRepo struct {
	courses map[primitive.ObjectID]*models.Course
	average float64
	hasAny  bool
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[primitive.ObjectID]*models.Course{}}
}

func (f *fakeCourseRepo) List(ctx context.Context, opts query.Options) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range f.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

func (f *fakeCourseRepo) ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range f.courses {
		if c.Bootcamp == bootcamp {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return f.courses[id], nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	c := f.courses[id]
	if c == nil {
		return nil, nil
	}
	if title, ok := fields["title"].(string); ok {
		c.Title = title
	}
	if tuition, ok := fields["tuition"].(float64); ok {
		c.Tuition = tuition
	}
	return c, nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	for id, c := range f.courses {
		if c.Bootcamp == bootcamp {
			delete(f.courses, id)
		}
	}
	return nil
}

func (f *fakeCourseRepo) AverageTuition(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
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
	for _, b := range f.bootcamps {
		if b.Publisher == publisher {
			return b, nil
		}
	}
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

func seedBootcamp(repo *fakeBootcampRepo, publisher primitive.ObjectID) *models.Bootcamp {
	b := &models.Bootcamp{
		ID:        primitive.NewObjectID(),
		Name:      "Devworks Bootcamp",
		Publisher: publisher,
	}
	repo.bootcamps[b.ID] = b
	return b
}

func publisherUser() *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: models.RolePublisher}
}

func TestCreateRecomputesAverageCost(t *testing.T) {
	owner := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)

	// 100 and 200 average to 150, already a multiple of 10.
	courses.average = 150
	courses.hasAny = true

	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), owner, b.ID, CreateInput{
		Title:        "Front End Web Development",
		Description:  "Twelve weeks of HTML, CSS and JavaScript",
		Weeks:        "12",
		Tuition:      200,
		MinimumSkill: "beginner",
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, bootcamps.averages["averageCost"])
}

func TestCreateRoundsAverageCostUpToTen(t *testing.T) {
	owner := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)

	// 100 and 150 average to 125, which rounds up to 130.
	courses.average = 125
	courses.hasAny = true

	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), owner, b.ID, CreateInput{
		Title:        "Data Science Basics",
		Description:  "Statistics and Python",
		Weeks:        "8",
		Tuition:      150,
		MinimumSkill: "intermediate",
	})
	require.NoError(t, err)
	assert.Equal(t, 130.0, bootcamps.averages["averageCost"])
}

func TestDeleteLastCourseClearsAverageCost(t *testing.T) {
	owner := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)

	c := &models.Course{ID: primitive.NewObjectID(), Title: "Last Course", Bootcamp: b.ID}
	courses.courses[c.ID] = c
	courses.hasAny = false

	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	require.NoError(t, svc.Delete(context.Background(), owner, c.ID))
	assert.Contains(t, bootcamps.cleared, "averageCost")
	assert.Empty(t, bootcamps.averages)
}

func TestCreateRejectsNonOwner(t *testing.T) {
	owner := publisherUser()
	intruder := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)

	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), intruder, b.ID, CreateInput{
		Title:        "Unowned Course",
		Description:  "Should not be created",
		Weeks:        "4",
		Tuition:      100,
		MinimumSkill: "beginner",
	})

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Empty(t, courses.courses)
}

func TestCreateAllowsAdminOnAnyBootcamp(t *testing.T) {
	owner := publisherUser()
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)
	courses.average = 100
	courses.hasAny = true

	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), admin, b.ID, CreateInput{
		Title:        "Admin Course",
		Description:  "Created on someone else's bootcamp",
		Weeks:        "6",
		Tuition:      100,
		MinimumSkill: "beginner",
	})
	require.NoError(t, err)
	assert.Len(t, courses.courses, 1)
}

func TestCreateUnknownBootcampIs404(t *testing.T) {
	owner := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()

	missing := primitive.NewObjectID()
	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), owner, missing, CreateInput{
		Title:        "Orphan Course",
		Description:  "No parent",
		Weeks:        "4",
		Tuition:      100,
		MinimumSkill: "beginner",
	})

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Contains(t, apiErr.Message, missing.Hex())
}

func TestUpdateDoesNotRecompute(t *testing.T) {
	owner := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)

	c := &models.Course{ID: primitive.NewObjectID(), Title: "Old Title", Tuition: 100, Bootcamp: b.ID}
	courses.courses[c.ID] = c

	newTuition := 9999.0
	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	updated, err := svc.Update(context.Background(), owner, c.ID, UpdateInput{Tuition: &newTuition})
	require.NoError(t, err)
	assert.Equal(t, 9999.0, updated.Tuition)
	assert.Empty(t, bootcamps.averages)
	assert.Empty(t, bootcamps.cleared)
}

func TestCreateRejectsInvalidSkillLevel(t *testing.T) {
	owner := publisherUser()
	bootcamps := newFakeBootcampRepo()
	courses := newFakeCourseRepo()
	b := seedBootcamp(bootcamps, owner.ID)

	svc := &DefaultCourseService{Repo: courses, Bootcamps: bootcamps}
	_, err := svc.Create(context.Background(), owner, b.ID, CreateInput{
		Title:        "Bad Skill",
		Description:  "Invalid level",
		Weeks:        "4",
		Tuition:      100,
		MinimumSkill: "wizard",
	})

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}
