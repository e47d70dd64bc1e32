package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's rating of a bootcamp. At most one review may exist per
// (bootcamp, user) pair; creation and removal trigger a recompute of the
// parent's average rating.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Text         string             `bson:"text" json:"text"`
	Rating       float64            `bson:"rating" json:"rating"`
	Bootcamp     primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	BootcampInfo *BootcampSummary   `bson:"bootcampInfo,omitempty" json:"bootcampInfo,omitempty"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
