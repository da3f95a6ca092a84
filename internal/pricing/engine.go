package pricing

import (
	"math"

	"dopc/internal/domain"
	"dopc/internal/geo"
)

// DistanceRange is one tier of a venue's fee schedule.
type DistanceRange struct {
	Min int `json:"min"`
	Max int `json:"max"` // exclusive; 0 means no upper bound
	A   int `json:"a"`
	B   int `json:"b"`
}

// Schedule is a venue's distance-based delivery pricing.
type Schedule struct {
	BasePrice int
	Ranges    []DistanceRange
	// Divisor scales B*distance into minor units. It differs between
	// schedule versions, so it always travels with the schedule.
	Divisor int
}

// Input is everything needed to price one order. Money is in minor units.
type Input struct {
	CartValue               int
	Customer                geo.Coordinate
	Venue                   geo.Coordinate
	Schedule                Schedule
	OrderMinimumNoSurcharge int
}

// Result is the price breakdown of one order.
type Result struct {
	CartValue           int `json:"cart_value"`
	SmallOrderSurcharge int `json:"small_order_surcharge"`
	DeliveryFee         int `json:"delivery_fee"`
	Distance            int `json:"distance"`
	TotalPrice          int `json:"total_price"`
}

// Calculate prices an order. It fails with domain.ErrDeliveryNotPossible when
// the customer is at or beyond the last range's Min or the schedule cannot
// price the distance, and with domain.ErrInvalidInput for out-of-domain input.
func Calculate(in Input) (Result, error) {
	if err := checkInput(in); err != nil {
		return Result{}, err
	}
	if err := in.Schedule.Validate(); err != nil {
		return Result{}, err
	}

	return priceAt(in, geo.Distance(in.Customer, in.Venue))
}

func priceAt(in Input, distance int) (Result, error) {
	surcharge := in.OrderMinimumNoSurcharge - in.CartValue
	if surcharge < 0 {
		surcharge = 0
	}

	rng, ok := in.Schedule.Match(distance)
	if !ok {
		return Result{}, domain.NewErrorf(domain.ErrDeliveryNotPossible, "no distance range covers %d meters", distance)
	}
	perDistance := math.Round(float64(rng.B) * float64(distance) / float64(in.Schedule.Divisor))
	if math.Abs(perDistance) >= math.MaxInt64/2 {
		return Result{}, domain.NewErrorf(domain.ErrDeliveryNotPossible, "distance fee for %d meters is out of range", distance)
	}
	fee, ok := sum(in.Schedule.BasePrice, rng.A, int(perDistance))
	if !ok {
		return Result{}, domain.NewErrorf(domain.ErrDeliveryNotPossible, "delivery fee for %d meters overflows", distance)
	}

	// The fee above may come from the last range, but the last range's Min is
	// still the hard ceiling.
	if limit := in.Schedule.MaxDistance(); distance >= limit {
		return Result{}, domain.NewErrorf(domain.ErrDeliveryNotPossible, "distance %d meters is beyond the delivery limit of %d meters", distance, limit)
	}

	total, ok := sum(in.CartValue, surcharge, fee)
	if !ok {
		return Result{}, domain.NewErrorf(domain.ErrInvalidInput, "total price of cart value %d overflows", in.CartValue)
	}

	return Result{
		CartValue:           in.CartValue,
		SmallOrderSurcharge: surcharge,
		DeliveryFee:         fee,
		Distance:            distance,
		TotalPrice:          total,
	}, nil
}

// sum adds xs, reporting false instead of wrapping around.
func sum(xs ...int) (int, bool) {
	total := 0
	for _, x := range xs {
		if (x > 0 && total > math.MaxInt-x) || (x < 0 && total < math.MinInt-x) {
			return 0, false
		}
		total += x
	}
	return total, true
}

func checkInput(in Input) error {
	if in.CartValue < 0 {
		return domain.NewErrorf(domain.ErrInvalidInput, "cart value must be non-negative, got %d", in.CartValue)
	}
	if !in.Customer.Valid() {
		return domain.NewErrorf(domain.ErrInvalidInput, "invalid customer coordinate %v", in.Customer)
	}
	if !in.Venue.Valid() {
		return domain.NewErrorf(domain.ErrInvalidInput, "invalid venue coordinate %v", in.Venue)
	}
	return nil
}
