package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/rahulmehta/fieldcrm-backend/pkg/metrics"
	"github.com/rahulmehta/fieldcrm-backend/pkg/types"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL              = "https://maps.googleapis.com/maps/api/place"
	defaultTimeout              = 10 * time.Second
	defaultSearchRadius         = 5000
	defaultCallInterval         = 200 * time.Millisecond
	responseBodyReadLimit int64 = 1024

	providerLabel = "places"
)

// categoryPlaceTypes maps the business categories the CRM exposes to the
// Google place types searched for each. Unknown categories fall back to a
// plain store search.
var categoryPlaceTypes = map[string][]string{
	"grocery":     {"grocery_or_supermarket", "supermarket"},
	"cafe":        {"cafe", "coffee_shop"},
	"hotel":       {"lodging"},
	"dairy":       {"grocery_or_supermarket", "store"},
	"restaurant":  {"restaurant", "meal_takeaway", "meal_delivery"},
	"bakery":      {"bakery"},
	"pharmacy":    {"pharmacy"},
	"supermarket": {"supermarket", "grocery_or_supermarket"},
	"hostel":      {"lodging"},
	"schools":     {"school", "primary_school", "secondary_school"},
	"colleges":    {"university"},
	"hospitals":   {"hospital", "doctor"},
	"others":      {"store", "establishment"},
}

var fallbackPlaceTypes = []string{"store"}

// PlaceTypesFor returns the Google place types used to search a business category.
func PlaceTypesFor(category string) []string {
	key := strings.ToLower(strings.TrimSpace(category))
	if placeTypes, ok := categoryPlaceTypes[key]; ok {
		return placeTypes
	}
	return fallbackPlaceTypes
}

// Business is a normalized nearby-search result.
type Business struct {
	PlaceID      string
	Name         string
	Address      string
	Location     types.LatLng
	Rating       float64
	TotalRatings int
	BusinessType string
}

// Client wraps the legacy Google Maps Places web service. Calls are paced
// through a shared limiter so a burst of category searches stays inside the
// provider's per-second quota.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	radius     int
	limiter    *rate.Limiter
	metrics    *metrics.OutboundMetrics
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the Places web service base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithSearchRadius overrides the nearby-search radius in meters.
func WithSearchRadius(radius int) Option {
	return func(c *Client) {
		if radius > 0 {
			c.radius = radius
		}
	}
}

// WithCallInterval overrides the minimum spacing between provider calls.
func WithCallInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

// WithMetrics records outbound call metrics.
func WithMetrics(m *metrics.OutboundMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger reports skipped category searches.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// NewClient builds the Places client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		radius:     defaultSearchRadius,
		limiter:    rate.NewLimiter(rate.Every(defaultCallInterval), 1),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// GeocodePincode resolves a pincode to coordinates via a text search for
// "{pincode}, India".
func (c *Client) GeocodePincode(ctx context.Context, pincode string) (types.LatLng, error) {
	if c == nil {
		return types.LatLng{}, pkgerrors.New(pkgerrors.CodeDependency, "places client not configured")
	}

	query := url.Values{}
	query.Set("query", fmt.Sprintf("%s, India", strings.TrimSpace(pincode)))
	query.Set("key", c.apiKey)

	var apiResp struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "textsearch/json", query, "geocode", &apiResp); err != nil {
		return types.LatLng{}, err
	}

	if apiResp.Status != "OK" || len(apiResp.Results) == 0 {
		return types.LatLng{}, pkgerrors.New(pkgerrors.CodeDependency, "Could not resolve location for the given pincode")
	}

	loc := apiResp.Results[0].Geometry.Location
	return types.LatLng{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// SearchNearby finds businesses of the requested categories around the given
// point. One nearby search runs per place type, and results are deduplicated
// by place ID across all searches. A failing place type is logged and
// skipped; an error is returned only when every search fails.
func (c *Client) SearchNearby(ctx context.Context, center types.LatLng, categories []string) ([]Business, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "places client not configured")
	}

	seen := make(map[string]struct{})
	var businesses []Business
	var firstErr error
	succeeded := false

	for _, category := range categories {
		for _, placeType := range PlaceTypesFor(category) {
			results, err := c.nearbySearch(ctx, center, placeType)
			if err != nil {
				// A failed category does not sink the whole search.
				if firstErr == nil {
					firstErr = err
				}
				if c.logg != nil {
					c.logg.Error(c.logg.WithFields(ctx, map[string]any{
						"category":   category,
						"place_type": placeType,
					}), "nearby search failed, skipping category", err)
				}
				continue
			}
			succeeded = true
			for _, business := range results {
				if business.PlaceID == "" {
					continue
				}
				if _, dup := seen[business.PlaceID]; dup {
					continue
				}
				seen[business.PlaceID] = struct{}{}
				business.BusinessType = category
				businesses = append(businesses, business)
			}
		}
	}

	if !succeeded && firstErr != nil {
		return nil, firstErr
	}
	return businesses, nil
}

func (c *Client) nearbySearch(ctx context.Context, center types.LatLng, placeType string) ([]Business, error) {
	query := url.Values{}
	query.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	query.Set("radius", strconv.Itoa(c.radius))
	query.Set("type", placeType)
	query.Set("key", c.apiKey)

	var apiResp struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID  string `json:"place_id"`
			Name     string `json:"name"`
			Vicinity string `json:"vicinity"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			Rating           float64 `json:"rating"`
			UserRatingsTotal int     `json:"user_ratings_total"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "nearbysearch/json", query, "nearby_search", &apiResp); err != nil {
		return nil, err
	}

	// ZERO_RESULTS is a normal outcome for sparse place types.
	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("nearby search failed with status %s", apiResp.Status))
	}

	businesses := make([]Business, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		businesses = append(businesses, Business{
			PlaceID: result.PlaceID,
			Name:    result.Name,
			Address: result.Vicinity,
			Location: types.LatLng{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
			Rating:       result.Rating,
			TotalRatings: result.UserRatingsTotal,
		})
	}
	return businesses, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, operation string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "waiting for places rate limit")
	}

	endpoint := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.baseURL, "/"), strings.TrimLeft(path, "/"), query.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build places request")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.ObserveDuration(providerLabel, operation, time.Since(started))
	if err != nil {
		c.metrics.IncFailure(providerLabel, operation)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute places request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncFailure(providerLabel, operation)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "places request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.IncFailure(providerLabel, operation)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode places response")
	}
	c.metrics.IncSuccess(providerLabel, operation)
	return nil
}
