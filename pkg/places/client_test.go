package places

import (
	"context"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/types"
)

func TestPlaceTypesFor(t *testing.T) {
	cases := []struct {
		category string
		want     []string
	}{
		{"hotel", []string{"lodging"}},
		{"Hotel", []string{"lodging"}},
		{"grocery", []string{"grocery_or_supermarket", "supermarket"}},
		{"restaurant", []string{"restaurant", "meal_takeaway", "meal_delivery"}},
		{"colleges", []string{"university"}},
		{"laundromat", []string{"store"}},
		{"", []string{"store"}},
	}
	for _, tc := range cases {
		if got := PlaceTypesFor(tc.category); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("category %q: expected %v, got %v", tc.category, tc.want, got)
		}
	}
}

func TestGeocodePincode(t *testing.T) {
	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		body := `{"status":"OK","results":[{"geometry":{"location":{"lat":18.93,"lng":72.83}}}]}`
		return jsonResponse(body), nil
	})

	client := newTestClient(t, rt)
	loc, err := client.GeocodePincode(context.Background(), "400001")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if loc.Latitude != 18.93 || loc.Longitude != 72.83 {
		t.Fatalf("unexpected location %+v", loc)
	}
	if !strings.Contains(capturedURL, "textsearch/json") {
		t.Fatalf("expected text search endpoint, got %q", capturedURL)
	}
	if !strings.Contains(capturedURL, "400001%2C+India") {
		t.Fatalf("expected pincode query, got %q", capturedURL)
	}
}

func TestGeocodePincodeUnresolved(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"status":"ZERO_RESULTS","results":[]}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.GeocodePincode(context.Background(), "999999")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSearchNearbyDeduplicatesByPlaceID(t *testing.T) {
	// Both grocery place types return overlapping results.
	var calls int
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		body := `{"status":"OK","results":[
			{"place_id":"p1","name":"Shree Stores","vicinity":"MG Road","geometry":{"location":{"lat":1,"lng":2}},"rating":4.2,"user_ratings_total":120},
			{"place_id":"p2","name":"Daily Needs","vicinity":"Station Road","geometry":{"location":{"lat":3,"lng":4}},"rating":3.9,"user_ratings_total":45}
		]}`
		return jsonResponse(body), nil
	})

	client := newTestClient(t, rt)
	businesses, err := client.SearchNearby(context.Background(), types.LatLng{Latitude: 18.9, Longitude: 72.8}, []string{"grocery"})
	if err != nil {
		t.Fatalf("search nearby: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one call per place type, got %d", calls)
	}
	if len(businesses) != 2 {
		t.Fatalf("expected deduplicated results, got %d", len(businesses))
	}
	for _, business := range businesses {
		if business.BusinessType != "grocery" {
			t.Fatalf("expected category tagged on result, got %q", business.BusinessType)
		}
	}
}

func TestSearchNearbyZeroResultsIsEmpty(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"status":"ZERO_RESULTS","results":[]}`), nil
	})

	client := newTestClient(t, rt)
	businesses, err := client.SearchNearby(context.Background(), types.LatLng{}, []string{"colleges"})
	if err != nil {
		t.Fatalf("search nearby: %v", err)
	}
	if len(businesses) != 0 {
		t.Fatalf("expected no results, got %d", len(businesses))
	}
}

func TestSearchNearbyProviderError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"status":"OVER_QUERY_LIMIT","results":[]}`), nil
	})

	client := newTestClient(t, rt)
	_, err := client.SearchNearby(context.Background(), types.LatLng{}, []string{"bakery"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSearchNearbySkipsFailedCategory(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("type") == "bakery" {
			return jsonResponse(`{"status":"OVER_QUERY_LIMIT","results":[]}`), nil
		}
		body := `{"status":"OK","results":[
			{"place_id":"u1","name":"City College","vicinity":"College Road","geometry":{"location":{"lat":1,"lng":2}},"rating":4.0,"user_ratings_total":80}
		]}`
		return jsonResponse(body), nil
	})

	client := newTestClient(t, rt)
	businesses, err := client.SearchNearby(context.Background(), types.LatLng{}, []string{"bakery", "colleges"})
	if err != nil {
		t.Fatalf("search nearby: %v", err)
	}
	if len(businesses) != 1 {
		t.Fatalf("expected surviving category results, got %d", len(businesses))
	}
	if businesses[0].BusinessType != "colleges" {
		t.Fatalf("unexpected category %q", businesses[0].BusinessType)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient("test-key",
		WithBaseURL("http://places.test"),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithCallInterval(time.Microsecond),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
