package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidCareers is the set of careers a bootcamp may declare.
var ValidCareers = map[string]bool{
	"Web Development":    true,
	"Mobile Development": true,
	"UI/UX":              true,
	"Data Science":       true,
	"Business":           true,
	"Others":             true,
}

// Location is a GeoJSON point plus the administrative fields the
// geocoder resolved from the submitted address.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formattedAddress,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// Bootcamp is a published bootcamp listing. Address is consumed on write to
// produce Location and never stored. AverageCost and AverageRating are derived
// from child courses and reviews and never accepted from clients.
type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Location      Location           `bson:"location" json:"location"`
	Careers       []string           `bson:"careers" json:"careers"`
	AverageRating *float64           `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	AverageCost   *float64           `bson:"averageCost,omitempty" json:"averageCost,omitempty"`
	Photo         string             `bson:"photo" json:"photo"`
	Housing       bool               `bson:"housing" json:"housing"`
	JobAssistance bool               `bson:"jobAssistance" json:"jobAssistance"`
	JobGuarantee  bool               `bson:"jobGuarantee" json:"jobGuarantee"`
	AcceptGi      bool               `bson:"acceptGi" json:"acceptGi"`
	Publisher     primitive.ObjectID `bson:"publisher" json:"publisher"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// BootcampSummary is the projection embedded when a child resource is
// listed with its parent expanded.
type BootcampSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}

// DefaultPhoto is stored until a publisher uploads one.
const DefaultPhoto = "no-photo.jpg"
