package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"dopc/internal/location"
	"dopc/internal/pricing"
	"dopc/internal/service"
	"dopc/internal/validation"
)

type QuoteService interface {
	Quote(ctx context.Context, req service.QuoteRequest) (pricing.Result, error)
}

type priceResponse struct {
	TotalPrice          int          `json:"total_price"`
	SmallOrderSurcharge int          `json:"small_order_surcharge"`
	CartValue           int          `json:"cart_value"`
	Delivery            deliveryPart `json:"delivery"`
}

type deliveryPart struct {
	Fee      int `json:"fee"`
	Distance int `json:"distance"`
}

func newPriceResponse(res pricing.Result) *priceResponse {
	return &priceResponse{
		TotalPrice:          res.TotalPrice,
		SmallOrderSurcharge: res.SmallOrderSurcharge,
		CartValue:           res.CartValue,
		Delivery:            deliveryPart{Fee: res.DeliveryFee, Distance: res.Distance},
	}
}

// priceQuery holds the raw query parameters; cart_value is in minor units.
type priceQuery struct {
	VenueSlug string `validate:"required"`
	CartValue string `validate:"required,number"`
	UserLat   string `validate:"required,latitude"`
	UserLon   string `validate:"required,longitude"`
}

type PriceHandler struct {
	svc      QuoteService
	timeout  time.Duration
	log      *zap.Logger
	metrics  *Metrics
	validate *validator.Validate
	trans    ut.Translator
}

// NewPriceHandler builds the price endpoint. timeout bounds the whole quote,
// venue data fetch included.
func NewPriceHandler(svc QuoteService, timeout time.Duration, log *zap.Logger, m *Metrics) *PriceHandler {
	validate, trans := newValidator()
	return &PriceHandler{svc: svc, timeout: timeout, log: log, metrics: m, validate: validate, trans: trans}
}

func PriceRouter(r chi.Router, h *PriceHandler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/delivery-order-price", h.price)
	})
}

func (h *PriceHandler) price(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := priceQuery{
		VenueSlug: q.Get("venue_slug"),
		CartValue: q.Get("cart_value"),
		UserLat:   q.Get("user_lat"),
		UserLon:   q.Get("user_lon"),
	}
	if err := h.validate.Struct(data); err != nil {
		h.metrics.quotes.WithLabelValues("invalid_input").Inc()
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}
	cartValue, err := validation.CartValueMinor(data.CartValue)
	if err != nil {
		h.metrics.quotes.WithLabelValues("invalid_input").Inc()
		render.Render(w, r, ErrQuote(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.svc.Quote(ctx, service.QuoteRequest{
		VenueSlug: data.VenueSlug,
		CartValue: cartValue,
		Location:  location.FromQuery(q),
	})
	h.metrics.quotes.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		h.log.Debug("quote failed", zap.String("venue", data.VenueSlug), zap.Error(err))
		render.Render(w, r, ErrQuote(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newPriceResponse(res))
}
