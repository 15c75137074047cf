package ports

import (
	"context"
	"errors"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
)

// ErrNoRoute is returned by ETAProvider implementations when the provider
// cannot find a route between the two points. Callers treat it like any
// other transient provider failure.
var ErrNoRoute = errors.New("no route between origin and destination")

// ETAProvider is the contract for a traffic-aware routing query against an
// external provider.
//
// LiveETA returns the current travel duration from origin to destination
// under live conditions: traffic-aware when the provider has traffic data,
// free-flow otherwise. The provider is a paid, rate-sensitive resource;
// callers are responsible for throttling. Implementations must bound each
// call with a short timeout so a slow provider surfaces as an error rather
// than a stall.
type ETAProvider interface {
	LiveETA(ctx context.Context, origin, destination kernel.GeoPoint) (time.Duration, error)
}
