package courseRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AverageTuition computes the mean tuition across every course referencing
// the given bootcamp. The second return value reports whether the bootcamp
// still has any courses: when it is false the caller must clear the derived
// field rather than write a value.
func (r *MongoCourseRepo) AverageTuition(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"bootcamp": bootcamp}},
		{"$group": bson.M{"_id": "$bootcamp", "averageCost": bson.M{"$avg": "$tuition"}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("failed to aggregate tuition for bootcamp %s: %w", bootcamp.Hex(), err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		// No courses left; the group stage yields nothing.
		return 0, false, cursor.Err()
	}

	var result struct {
		AverageCost float64 `bson:"averageCost"`
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, false, fmt.Errorf("failed to decode tuition aggregate: %w", err)
	}
	return result.AverageCost, true, nil
}
