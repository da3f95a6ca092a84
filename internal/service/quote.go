package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dopc/internal/domain"
	"dopc/internal/homeapi"
	"dopc/internal/location"
	"dopc/internal/pricing"
)

// QuoteRequest is one customer's request for a delivery price. CartValue is
// in minor units.
type QuoteRequest struct {
	VenueSlug string
	CartValue int
	Location  location.Provider
}

type QuoteService struct {
	venues  homeapi.Client
	divisor int
	log     *zap.Logger
}

// NewQuoteService builds a service pricing with venue schedules from venues.
// divisor is the fee-per-distance divisor of the schedule version served by
// the venue API.
func NewQuoteService(venues homeapi.Client, divisor int, log *zap.Logger) *QuoteService {
	return &QuoteService{venues: venues, divisor: divisor, log: log}
}

func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (pricing.Result, error) {
	if req.VenueSlug == "" {
		return pricing.Result{}, domain.NewErrorf(domain.ErrInvalidInput, "venue slug is required")
	}

	customer, err := req.Location.Locate(ctx)
	if err != nil {
		if errors.Is(err, location.ErrUnavailable) {
			return pricing.Result{}, domain.WrapErrorf(err, domain.ErrInvalidInput, "customer location is required")
		}
		return pricing.Result{}, err
	}

	var (
		static  homeapi.StaticData
		dynamic homeapi.DynamicData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		static, err = s.venues.GetStatic(gctx, req.VenueSlug)
		return err
	})
	g.Go(func() error {
		var err error
		dynamic, err = s.venues.GetDynamic(gctx, req.VenueSlug)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("venue data fetch failed", zap.String("venue", req.VenueSlug), zap.Error(err))
		return pricing.Result{}, err
	}

	minimum, err := orderMinimum(req.VenueSlug, static, dynamic)
	if err != nil {
		return pricing.Result{}, err
	}

	res, err := pricing.Calculate(pricing.Input{
		CartValue: req.CartValue,
		Customer:  customer,
		Venue:     static.Location,
		Schedule: pricing.Schedule{
			BasePrice: dynamic.BasePrice,
			Ranges:    dynamic.DistanceRanges,
			Divisor:   s.divisor,
		},
		OrderMinimumNoSurcharge: minimum,
	})
	if err != nil {
		s.log.Info("quote refused",
			zap.String("venue", req.VenueSlug),
			zap.Int("cart_value", req.CartValue),
			zap.Error(err))
		return pricing.Result{}, err
	}

	s.log.Info("quote computed",
		zap.String("venue", req.VenueSlug),
		zap.Int("cart_value", res.CartValue),
		zap.Int("distance", res.Distance),
		zap.Int("delivery_fee", res.DeliveryFee),
		zap.Int("small_order_surcharge", res.SmallOrderSurcharge),
		zap.Int("total_price", res.TotalPrice))
	return res, nil
}

// orderMinimum prefers the dynamic document, where the venue API publishes
// the order minimum, over the static one.
func orderMinimum(venueSlug string, static homeapi.StaticData, dynamic homeapi.DynamicData) (int, error) {
	switch {
	case dynamic.OrderMinimumNoSurcharge != nil:
		return *dynamic.OrderMinimumNoSurcharge, nil
	case static.OrderMinimumNoSurcharge != nil:
		return *static.OrderMinimumNoSurcharge, nil
	}
	return 0, domain.NewErrorf(domain.ErrMalformedVenueData, "venue %s has no order_minimum_no_surcharge", venueSlug)
}
