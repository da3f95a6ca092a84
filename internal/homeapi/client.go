package homeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"dopc/internal/domain"
)

// Client defines methods to fetch static and dynamic info.
type Client interface {
	GetStatic(ctx context.Context, venueSlug string) (StaticData, error)
	GetDynamic(ctx context.Context, venueSlug string) (DynamicData, error)
}

type client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

func New(baseURL string, httpClient *http.Client) Client {
	return &client{baseURL: baseURL, http: httpClient, validate: validator.New()}
}

func (c *client) GetStatic(ctx context.Context, venueSlug string) (StaticData, error) {
	var doc staticDocument
	if err := c.fetch(ctx, venueSlug, "static", &doc); err != nil {
		return StaticData{}, err
	}
	s := doc.toStaticData()
	if !s.Location.Valid() {
		return StaticData{}, domain.NewErrorf(domain.ErrMalformedVenueData, "venue %s has invalid location %v", venueSlug, doc.VenueRaw.Location.Coordinates)
	}
	return s, nil
}

func (c *client) GetDynamic(ctx context.Context, venueSlug string) (DynamicData, error) {
	var doc dynamicDocument
	if err := c.fetch(ctx, venueSlug, "dynamic", &doc); err != nil {
		return DynamicData{}, err
	}
	return doc.toDynamicData(), nil
}

// fetch GETs one venue document and decodes and validates it into v.
func (c *client) fetch(ctx context.Context, venueSlug, kind string, v any) error {
	u := fmt.Sprintf("%s/home-assignment-api/v1/venues/%s/%s", c.baseURL, url.PathEscape(venueSlug), kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.WrapErrorf(err, domain.ErrUpstream, "build %s request", kind)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.WrapErrorf(err, domain.ErrUpstream, "%s endpoint unreachable", kind)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NewErrorf(domain.ErrVenueNotFound, "venue %s not found", venueSlug)
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.NewErrorf(domain.ErrUpstream, "%s endpoint %d: %s", kind, resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return domain.WrapErrorf(err, domain.ErrMalformedVenueData, "decode %s response", kind)
	}
	if err := c.validate.Struct(v); err != nil {
		return domain.WrapErrorf(err, domain.ErrMalformedVenueData, "invalid %s response", kind)
	}
	return nil
}
