package geocode

import (
	"context"

	"campfinder/models"
)

// Geocoder resolves a free-form address or postal code to a location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.Location, error)
}
