package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dopc/internal/domain"
	"dopc/internal/pricing"
)

func venueAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/home-assignment-api/v1/venues/home-assignment-venue-helsinki/static", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"venue_raw":{"location":{"coordinates":[24.945831,60.192059]}}}`))
	})
	mux.HandleFunc("/home-assignment-api/v1/venues/home-assignment-venue-helsinki/dynamic", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"venue_raw":{"delivery_specs":{"order_minimum_no_surcharge":1000,"delivery_pricing":{"base_price":500,"distance_ranges":[{"min":0,"max":2000,"a":100,"b":50},{"min":2000,"max":0,"a":200,"b":75}]}}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_PrintsQuote(t *testing.T) {
	srv := venueAPI(t)
	var out bytes.Buffer

	err := run(context.Background(), []string{
		"-env", filepath.Join(t.TempDir(), "missing.env"),
		"-api", srv.URL,
		"-venue", "home-assignment-venue-helsinki",
		"-cart", "20",
		"-lat", "60.192059",
		"-lon", "24.945831",
	}, &out)

	require.NoError(t, err)
	var got pricing.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, pricing.Result{
		CartValue:           2000,
		SmallOrderSurcharge: 0,
		DeliveryFee:         600,
		Distance:            0,
		TotalPrice:          2600,
	}, got)
}

func TestRun_InvalidCart(t *testing.T) {
	srv := venueAPI(t)
	var out bytes.Buffer

	err := run(context.Background(), []string{
		"-env", filepath.Join(t.TempDir(), "missing.env"),
		"-api", srv.URL,
		"-venue", "home-assignment-venue-helsinki",
		"-cart", "-5",
		"-lat", "60.192059",
		"-lon", "24.945831",
	}, &out)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, out.String())
}
