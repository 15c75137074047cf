package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/dehanf/Smart-takeout-system/internal/pkg/errs"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusMeters is the mean Earth radius used by the great-circle
	// distance calculation.
	earthRadiusMeters = 6371000.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via the NewGeoPoint
// constructor to guarantee the coordinates are in range.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a validated WGS84 coordinate pair.
// It is an immutable value object; the zero value is invalid and fails
// validation, so instances must come from the constructor.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(51.5007, -0.1246)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(p) // Output: GeoPoint(51.500700,-0.124600)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// out-of-range values yield a validation error. NaN is rejected.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through the constructor.
// Returns ErrGeoPointIsNotConstructed for zero-value instances.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation of the point.
// Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceTo calculates the great-circle distance in meters between two
// points using the haversine formula. The result is a straight-line
// estimate and is never traffic-aware; callers that need travel time must
// consult a routing provider.
//
// Example:
//
//	shop, _ := kernel.NewGeoPoint(51.5007, -0.1246)
//	customer, _ := kernel.NewGeoPoint(51.5033, -0.1195)
//	meters, err := customer.DistanceTo(shop)
//	// meters ≈ 455
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degToRad(p.latitude)
	lat2 := degToRad(other.latitude)
	dLat := degToRad(other.latitude - p.latitude)
	dLng := degToRad(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// setLatitude sets the latitude with range validation.
// Note: pointer receiver on a value-object type is intentional here; the
// private setters self-encapsulate validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
