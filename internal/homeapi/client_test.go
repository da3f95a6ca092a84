package homeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dopc/internal/domain"
	"dopc/internal/pricing"
)

const staticBody = `{"venue_raw":{"location":{"coordinates":[24.945831,60.192059]}}}`

const dynamicBody = `{
  "venue_raw": {
    "delivery_specs": {
      "order_minimum_no_surcharge": 1000,
      "delivery_pricing": {
        "base_price": 500,
        "distance_ranges": [
          {"min": 0, "max": 2000, "a": 100, "b": 50},
          {"min": 2000, "max": 0, "a": 200, "b": 75}
        ]
      }
    }
  }
}`

func venueServer(t *testing.T, static, dynamic string, status int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/home-assignment-api/v1/venues/home-assignment-venue-helsinki/static", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(static))
	})
	mux.HandleFunc("/home-assignment-api/v1/venues/home-assignment-venue-helsinki/dynamic", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(dynamic))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetStatic(t *testing.T) {
	srv := venueServer(t, staticBody, dynamicBody, http.StatusOK)
	c := New(srv.URL, srv.Client())

	s, err := c.GetStatic(context.Background(), "home-assignment-venue-helsinki")

	require.NoError(t, err)
	assert.Equal(t, 60.192059, s.Location.Lat)
	assert.Equal(t, 24.945831, s.Location.Lon)
	assert.Nil(t, s.OrderMinimumNoSurcharge)
}

func TestClient_GetDynamic(t *testing.T) {
	srv := venueServer(t, staticBody, dynamicBody, http.StatusOK)
	c := New(srv.URL, srv.Client())

	d, err := c.GetDynamic(context.Background(), "home-assignment-venue-helsinki")

	require.NoError(t, err)
	require.NotNil(t, d.OrderMinimumNoSurcharge)
	assert.Equal(t, 1000, *d.OrderMinimumNoSurcharge)
	assert.Equal(t, 500, d.BasePrice)
	assert.Equal(t, []pricing.DistanceRange{
		{Min: 0, Max: 2000, A: 100, B: 50},
		{Min: 2000, Max: 0, A: 200, B: 75},
	}, d.DistanceRanges)
}

func TestClient_MalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		static  string
		dynamic string
		dynCall bool
	}{
		{name: "not json", static: `<html>`},
		{name: "missing venue_raw", static: `{}`},
		{name: "missing location", static: `{"venue_raw":{}}`},
		{name: "one coordinate", static: `{"venue_raw":{"location":{"coordinates":[24.9]}}}`},
		{name: "latitude out of range", static: `{"venue_raw":{"location":{"coordinates":[24.9, 91]}}}`},
		{name: "string coordinate", static: `{"venue_raw":{"location":{"coordinates":["24.9", 60.1]}}}`},
		{name: "missing pricing", dynamic: `{"venue_raw":{"delivery_specs":{}}}`, dynCall: true},
		{name: "empty ranges", dynamic: `{"venue_raw":{"delivery_specs":{"delivery_pricing":{"base_price":1,"distance_ranges":[]}}}}`, dynCall: true},
		{name: "range without max", dynamic: `{"venue_raw":{"delivery_specs":{"delivery_pricing":{"base_price":1,"distance_ranges":[{"min":0,"a":0,"b":0}]}}}}`, dynCall: true},
		{name: "negative base price", dynamic: `{"venue_raw":{"delivery_specs":{"delivery_pricing":{"base_price":-1,"distance_ranges":[{"min":0,"max":0,"a":0,"b":0}]}}}}`, dynCall: true},
		{name: "fractional fee", dynamic: `{"venue_raw":{"delivery_specs":{"delivery_pricing":{"base_price":1.5,"distance_ranges":[{"min":0,"max":0,"a":0,"b":0}]}}}}`, dynCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := venueServer(t, tt.static, tt.dynamic, http.StatusOK)
			c := New(srv.URL, srv.Client())

			var err error
			if tt.dynCall {
				_, err = c.GetDynamic(context.Background(), "home-assignment-venue-helsinki")
			} else {
				_, err = c.GetStatic(context.Background(), "home-assignment-venue-helsinki")
			}
			assert.ErrorIs(t, err, domain.ErrMalformedVenueData)
		})
	}
}

func TestClient_ZeroValuesAreNotMissing(t *testing.T) {
	body := `{"venue_raw":{"delivery_specs":{"order_minimum_no_surcharge":0,"delivery_pricing":{"base_price":0,"distance_ranges":[{"min":0,"max":0,"a":0,"b":0}]}}}}`
	srv := venueServer(t, staticBody, body, http.StatusOK)
	c := New(srv.URL, srv.Client())

	d, err := c.GetDynamic(context.Background(), "home-assignment-venue-helsinki")

	require.NoError(t, err)
	require.NotNil(t, d.OrderMinimumNoSurcharge)
	assert.Equal(t, 0, *d.OrderMinimumNoSurcharge)
	assert.Equal(t, 0, d.BasePrice)
}

func TestClient_UpstreamErrors(t *testing.T) {
	t.Run("unknown venue", func(t *testing.T) {
		srv := venueServer(t, staticBody, dynamicBody, http.StatusOK)
		c := New(srv.URL, srv.Client())
		_, err := c.GetStatic(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrVenueNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		srv := venueServer(t, `boom`, `boom`, http.StatusInternalServerError)
		c := New(srv.URL, srv.Client())
		_, err := c.GetDynamic(context.Background(), "home-assignment-venue-helsinki")
		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)
		c := New(srv.URL, srv.Client())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := c.GetStatic(ctx, "home-assignment-venue-helsinki")
		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
