package courseRepo

import (
	"context"
	"fmt"
	"time"

	"campfinder/database/query"
	"campfinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCourseRepo implements CourseRepository using MongoDB.
type MongoCourseRepo struct {
	coll *mongo.Collection
}

// NewMongoCourseRepo creates a CourseRepository backed by the given client.
func NewMongoCourseRepo(client *mongo.Client, dbName string) CourseRepository {
	coll := client.Database(dbName).Collection("courses")
	repo := &MongoCourseRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create course indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// List retrieves courses matching the parsed listing options. When a
// populate spec is present the query runs as an aggregation so the parent
// bootcamp summary can be joined in.
func (r *MongoCourseRepo) List(ctx context.Context, opts query.Options) ([]models.Course, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if opts.Populate != nil {
		cursor, err := r.coll.Aggregate(ctx, opts.Pipeline())
		if err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		defer cursor.Close(ctx)
		return decodeCourses(ctx, cursor)
	}

	findOpts := options.Find().
		SetSort(opts.Sort).
		SetSkip(opts.Skip).
		SetLimit(int64(opts.Limit))
	if opts.Projection != nil {
		findOpts.SetProjection(opts.Projection)
	}

	cursor, err := r.coll.Find(ctx, opts.Filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeCourses(ctx, cursor)
}

func decodeCourses(ctx context.Context, cursor *mongo.Cursor) ([]models.Course, error) {
	courses := []models.Course{}
	for cursor.Next(ctx) {
		var c models.Course
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, cursor.Err()
}

// CountAll returns the unfiltered collection count used for pagination.
func (r *MongoCourseRepo) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// ListByBootcamp returns every course under the given bootcamp, unpaginated.
func (r *MongoCourseRepo) ListByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) ([]models.Course, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"bootcamp": bootcamp})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses for bootcamp %s: %w", bootcamp.Hex(), err)
	}
	defer cursor.Close(ctx)
	return decodeCourses(ctx, cursor)
}

// GetByID retrieves a course by id with its bootcamp summary expanded.
// Returns (nil, nil) when absent.
func (r *MongoCourseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"_id": id}},
		{"$lookup": bson.M{
			"from":         "bootcamps",
			"localField":   "bootcamp",
			"foreignField": "_id",
			"as":           "bootcampInfo",
			"pipeline":     []bson.M{{"$project": bson.M{"name": 1, "description": 1}}},
		}},
		{"$unwind": bson.M{"path": "$bootcampInfo", "preserveNullAndEmptyArrays": true}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course with id %s: %w", id.Hex(), err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, cursor.Err()
	}
	var course models.Course
	if err := cursor.Decode(&course); err != nil {
		return nil, fmt.Errorf("failed to decode course: %w", err)
	}
	return &course, nil
}

// Create inserts a new course document.
func (r *MongoCourseRepo) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	course.CreatedAt = time.Now()
	res, err := r.coll.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = oid
	}
	return nil
}

// Update applies the given fields and returns the updated document.
func (r *MongoCourseRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Course, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Course
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes a course document by id.
func (r *MongoCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete course with id %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("course with id %s not found", id.Hex())
	}
	return nil
}

// DeleteByBootcamp removes every course under the given bootcamp. Used by
// the cascade when a bootcamp is deleted.
func (r *MongoCourseRepo) DeleteByBootcamp(ctx context.Context, bootcamp primitive.ObjectID) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	if err != nil {
		return fmt.Errorf("failed to delete courses for bootcamp %s: %w", bootcamp.Hex(), err)
	}
	return nil
}
