package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AverageRating computes the mean rating across every review referencing the
// given bootcamp. The second return value reports whether any reviews remain;
// when it is false the caller must clear the derived field.
func (r *MongoReviewRepo) AverageRating(ctx context.Context, bootcamp primitive.ObjectID) (float64, bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"bootcamp": bootcamp}},
		{"$group": bson.M{"_id": "$bootcamp", "averageRating": bson.M{"$avg": "$rating"}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, false, fmt.Errorf("failed to aggregate rating for bootcamp %s: %w", bootcamp.Hex(), err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return 0, false, cursor.Err()
	}

	var result struct {
		AverageRating float64 `bson:"averageRating"`
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, false, fmt.Errorf("failed to decode rating aggregate: %w", err)
	}
	return result.AverageRating, true, nil
}
