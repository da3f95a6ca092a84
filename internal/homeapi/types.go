package homeapi

import (
	"dopc/internal/geo"
	"dopc/internal/pricing"
)

// StaticData contains only the fields DOPC needs from the static endpoint.
type StaticData struct {
	Location geo.Coordinate `json:"location"`
	// Some venues also publish the order minimum in the static document.
	OrderMinimumNoSurcharge *int `json:"order_minimum_no_surcharge,omitempty"`
}

// DynamicData contains only the fields DOPC needs from the dynamic endpoint.
type DynamicData struct {
	OrderMinimumNoSurcharge *int                    `json:"order_minimum_no_surcharge,omitempty"`
	BasePrice               int                     `json:"base_price"`
	DistanceRanges          []pricing.DistanceRange `json:"distance_ranges"`
}

// Wire schema of the venue documents. Pointers separate a missing field from a zero.

type staticDocument struct {
	VenueRaw *staticVenue `json:"venue_raw" validate:"required"`
}

type staticVenue struct {
	Location      *location            `json:"location" validate:"required"`
	DeliverySpecs *staticDeliverySpecs `json:"delivery_specs"`
}

type location struct {
	// GeoJSON order: [lon, lat]
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
}

type staticDeliverySpecs struct {
	OrderMinimumNoSurcharge *int `json:"order_minimum_no_surcharge" validate:"omitempty,gte=0"`
}

type dynamicDocument struct {
	VenueRaw *dynamicVenue `json:"venue_raw" validate:"required"`
}

type dynamicVenue struct {
	DeliverySpecs *deliverySpecs `json:"delivery_specs" validate:"required"`
}

type deliverySpecs struct {
	OrderMinimumNoSurcharge *int             `json:"order_minimum_no_surcharge" validate:"omitempty,gte=0"`
	DeliveryPricing         *deliveryPricing `json:"delivery_pricing" validate:"required"`
}

type deliveryPricing struct {
	BasePrice      *int            `json:"base_price" validate:"required,gte=0"`
	DistanceRanges []distanceRange `json:"distance_ranges" validate:"required,min=1,dive"`
}

type distanceRange struct {
	Min *int `json:"min" validate:"required,gte=0"`
	Max *int `json:"max" validate:"required,gte=0"`
	A   *int `json:"a" validate:"required"`
	B   *int `json:"b" validate:"required"`
}

func (d staticDocument) toStaticData() StaticData {
	coords := d.VenueRaw.Location.Coordinates
	s := StaticData{Location: geo.FromLonLat(coords[0], coords[1])}
	if d.VenueRaw.DeliverySpecs != nil {
		s.OrderMinimumNoSurcharge = d.VenueRaw.DeliverySpecs.OrderMinimumNoSurcharge
	}
	return s
}

func (d dynamicDocument) toDynamicData() DynamicData {
	specs := d.VenueRaw.DeliverySpecs
	ranges := make([]pricing.DistanceRange, 0, len(specs.DeliveryPricing.DistanceRanges))
	for _, r := range specs.DeliveryPricing.DistanceRanges {
		ranges = append(ranges, pricing.DistanceRange{Min: *r.Min, Max: *r.Max, A: *r.A, B: *r.B})
	}
	return DynamicData{
		OrderMinimumNoSurcharge: specs.OrderMinimumNoSurcharge,
		BasePrice:               *specs.DeliveryPricing.BasePrice,
		DistanceRanges:          ranges,
	}
}
