// Command dopc-quote prints one delivery price quote as JSON.
//
//	dopc-quote -venue home-assignment-venue-helsinki -cart 20 -lat 60.17094 -lon 24.93087
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"dopc/internal/config"
	"dopc/internal/homeapi"
	"dopc/internal/location"
	"dopc/internal/logger"
	"dopc/internal/service"
	"dopc/internal/validation"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dopc-quote", flag.ContinueOnError)
	envFile := fs.String("env", ".env", "path of the .env configuration file")
	venue := fs.String("venue", "", "venue slug")
	cart := fs.String("cart", "", "cart value in major currency units, e.g. 12.50")
	lat := fs.String("lat", "", "customer latitude")
	lon := fs.String("lon", "", "customer longitude")
	apiBase := fs.String("api", "", "venue API base url, overrides HOME_ASSIGNMENT_API_BASE")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *apiBase != "" {
		cfg.HomeAPIBase = *apiBase
	}

	cartValue, err := validation.CartValueMajor(*cart)
	if err != nil {
		return err
	}
	customerLat, err := validation.Latitude(*lat)
	if err != nil {
		return err
	}
	customerLon, err := validation.Longitude(*lon)
	if err != nil {
		return err
	}

	appLogger, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	venues := homeapi.New(cfg.HomeAPIBase, &http.Client{Timeout: cfg.HTTPClientTimeout})
	quotes := service.NewQuoteService(venues, cfg.FeeDivisor, appLogger.WithOptions(zap.IncreaseLevel(zap.WarnLevel)))

	ctx, cancel := context.WithTimeout(ctx, cfg.UpstreamTimeout)
	defer cancel()

	res, err := quotes.Quote(ctx, service.QuoteRequest{
		VenueSlug: *venue,
		CartValue: cartValue,
		Location:  location.Fixed{Lat: customerLat, Lon: customerLon},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
