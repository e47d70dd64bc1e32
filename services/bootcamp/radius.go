package bootcamp

import (
	"context"

	"campfinder/models"
	"campfinder/utils"

	"go.uber.org/zap"
)

// Earth radius used to convert a linear distance to radians for the
// spherical radius query.
const (
	earthRadiusMiles = 3963.0
	earthRadiusKm    = 6378.0
)

// WithinRadius finds bootcamps within the given distance of a postal code.
// The zipcode is geocoded to a center point and the distance divided by the
// earth radius in the requested unit; results on the boundary are included.
func (s *DefaultBootcampService) WithinRadius(ctx context.Context, zipcode string, distance float64, unit string) ([]models.Bootcamp, error) {
	if distance <= 0 {
		return nil, utils.NewBadRequest("Distance must be a positive number")
	}

	var radians float64
	switch unit {
	case "mi":
		radians = distance / earthRadiusMiles
	case "km":
		radians = distance / earthRadiusKm
	default:
		return nil, utils.NewBadRequest("Unit must be 'mi' or 'km'")
	}

	loc, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		utils.GetLogger().Error("geocoding failed", zap.String("zipcode", zipcode), zap.Error(err))
		return nil, utils.NewServerError("Could not geocode zipcode")
	}

	bootcamps, err := s.Repo.WithinRadius(ctx, loc.Coordinates[0], loc.Coordinates[1], radians)
	if err != nil {
		return nil, utils.FromStoreError(err, "location")
	}
	return bootcamps, nil
}
