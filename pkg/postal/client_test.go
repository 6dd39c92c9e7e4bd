package postal

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
)

func TestLookupSuccess(t *testing.T) {
	const expectedURL = "http://postal.test/pincode/400001"
	respBody := `[{"Status":"Success","PostOffice":[
		{"Name":"Bazargate","Circle":"Maharashtra","District":"Mumbai","Division":"Mumbai City","State":"Maharashtra","Country":"India"},
		{"Name":"Stock Exchange","Circle":"Maharashtra","District":"Mumbai","Division":"Mumbai City","State":"Maharashtra","Country":"India"},
		{"Name":"Bazargate","Circle":"Maharashtra","District":"Mumbai","Division":"Mumbai City","State":"Maharashtra","Country":"India"}
	]}]`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client := NewClient(WithBaseURL("http://postal.test"), WithHTTPClient(&http.Client{Transport: rt}))

	result, err := client.Lookup(context.Background(), "400001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if !result.Found {
		t.Fatal("expected pincode to resolve")
	}
	if result.Country != "India" || result.State != "Maharashtra" || result.District != "Mumbai" {
		t.Fatalf("unexpected location %+v", result)
	}
	if result.City != "Mumbai City" {
		t.Fatalf("expected division as city, got %q", result.City)
	}
	if len(result.Areas) != 2 {
		t.Fatalf("expected duplicate post offices collapsed, got %v", result.Areas)
	}
}

func TestLookupFallsBackToCircleAndDivision(t *testing.T) {
	respBody := `[{"Status":"Success","PostOffice":[
		{"Name":"Fort","Circle":"Maharashtra","District":"","Division":"Mumbai City","State":"","Country":"India"}
	]}]`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})
	client := NewClient(WithBaseURL("http://postal.test"), WithHTTPClient(&http.Client{Transport: rt}))

	result, err := client.Lookup(context.Background(), "400001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.State != "Maharashtra" {
		t.Fatalf("expected circle fallback for state, got %q", result.State)
	}
	if result.City != "Mumbai City" {
		t.Fatalf("expected division fallback for city, got %q", result.City)
	}
}

func TestLookupDefaultsAndCityFallback(t *testing.T) {
	respBody := `[{"Status":"Success","PostOffice":[
		{"Name":"Civil Lines","Circle":"Madhya Pradesh","District":"Jabalpur","Division":"","State":"Madhya Pradesh","Country":""}
	]}]`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})
	client := NewClient(WithBaseURL("http://postal.test"), WithHTTPClient(&http.Client{Transport: rt}))

	result, err := client.Lookup(context.Background(), "482001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.Country != "India" {
		t.Fatalf("expected default country, got %q", result.Country)
	}
	if result.City != "Jabalpur" {
		t.Fatalf("expected district fallback for city, got %q", result.City)
	}
}

func TestLookupUnknownPincodeIsNotAnError(t *testing.T) {
	respBody := `[{"Status":"Error","PostOffice":null}]`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})
	client := NewClient(WithBaseURL("http://postal.test"), WithHTTPClient(&http.Client{Transport: rt}))

	result, err := client.Lookup(context.Background(), "999999")
	if err != nil {
		t.Fatalf("unknown pincode should not be a transport error: %v", err)
	}
	if result.Found {
		t.Fatal("expected Found=false for unknown pincode")
	}
}

func TestLookupRejectsMalformedPincode(t *testing.T) {
	client := NewClient()
	for _, pincode := range []string{"", "1234", "12345a", "1234567", "abcdef"} {
		_, err := client.Lookup(context.Background(), pincode)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("pincode %q: expected validation error, got %v", pincode, err)
		}
	}
}

func TestLookupUpstreamFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream broke")),
			Header:     http.Header{},
		}, nil
	})
	client := NewClient(WithBaseURL("http://postal.test"), WithHTTPClient(&http.Client{Transport: rt}))

	_, err := client.Lookup(context.Background(), "400001")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
