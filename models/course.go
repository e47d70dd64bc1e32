package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidSkillLevels is the accepted set for a course's minimum skill.
var ValidSkillLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advance":      true,
}

// Course belongs to exactly one bootcamp. Creating or removing a course
// triggers a recompute of the parent's average cost.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Weeks                string             `bson:"weeks" json:"weeks"`
	Tuition              float64            `bson:"tuition" json:"tuition"`
	MinimumSkill         string             `bson:"minimumSkill" json:"minimumSkill"`
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarshipAvailable"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	BootcampInfo         *BootcampSummary   `bson:"bootcampInfo,omitempty" json:"bootcampInfo,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
