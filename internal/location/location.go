package location

import (
	"context"
	"errors"
	"net/url"

	"dopc/internal/domain"
	"dopc/internal/geo"
	"dopc/internal/validation"
)

// ErrUnavailable is returned when a provider has no location to offer.
var ErrUnavailable = errors.New("customer location unavailable")

// Provider supplies the customer's coordinate for one pricing request.
type Provider interface {
	Locate(ctx context.Context) (geo.Coordinate, error)
}

// Fixed always answers with the same coordinate.
type Fixed geo.Coordinate

func (f Fixed) Locate(ctx context.Context) (geo.Coordinate, error) {
	c := geo.Coordinate(f)
	if !c.Valid() {
		return geo.Coordinate{}, domain.NewErrorf(domain.ErrInvalidInput, "invalid fixed location %v", c)
	}
	return c, nil
}

// Query reads the coordinate from user_lat and user_lon parameters.
type Query url.Values

// FromQuery wraps request query parameters as a Provider.
func FromQuery(q url.Values) Query {
	return Query(q)
}

func (q Query) Locate(ctx context.Context) (geo.Coordinate, error) {
	v := url.Values(q)
	rawLat, rawLon := v.Get("user_lat"), v.Get("user_lon")
	if rawLat == "" || rawLon == "" {
		return geo.Coordinate{}, ErrUnavailable
	}
	lat, err := validation.Latitude(rawLat)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := validation.Longitude(rawLon)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}
