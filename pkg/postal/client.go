package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/metrics"
)

const (
	defaultBaseURL             = "https://api.postalpincode.in"
	defaultTimeout             = 5 * time.Second
	responseBodyReadLimit int64 = 1024

	providerLabel = "postal"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// IsValidPincode reports whether the value is a six digit Indian PIN code.
func IsValidPincode(pincode string) bool {
	return pincodePattern.MatchString(pincode)
}

// Client wraps the India Post pincode lookup API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.OutboundMetrics
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

// WithBaseURL overrides the lookup base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMetrics records outbound call metrics.
func WithMetrics(m *metrics.OutboundMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the postal lookup client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// LookupResult holds the location details resolved for a pincode. Found is
// false when the provider knows no post office for the code, which callers
// treat as a normal outcome rather than a provider failure.
type LookupResult struct {
	Found    bool
	Pincode  string
	Country  string
	State    string
	District string
	City     string
	Areas    []string
}

// Lookup resolves a six digit pincode to its country, state, district, city,
// and the post office area names it covers.
func (c *Client) Lookup(ctx context.Context, pincode string) (*LookupResult, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "postal client not configured")
	}
	trimmed := strings.TrimSpace(pincode)
	if !IsValidPincode(trimmed) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid pincode format. Must be 6 digits.")
	}

	url := fmt.Sprintf("%s/pincode/%s", strings.TrimRight(c.baseURL, "/"), trimmed)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build pincode lookup request")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.ObserveDuration(providerLabel, "lookup", time.Since(started))
	if err != nil {
		c.metrics.IncFailure(providerLabel, "lookup")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute pincode lookup request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncFailure(providerLabel, "lookup")
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "pincode lookup request failed")
	}

	var apiResp []struct {
		Status     string `json:"Status"`
		PostOffice []struct {
			Name     string `json:"Name"`
			Circle   string `json:"Circle"`
			District string `json:"District"`
			Division string `json:"Division"`
			State    string `json:"State"`
			Country  string `json:"Country"`
		} `json:"PostOffice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.metrics.IncFailure(providerLabel, "lookup")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pincode lookup response")
	}
	c.metrics.IncSuccess(providerLabel, "lookup")

	if len(apiResp) == 0 || apiResp[0].Status != "Success" || len(apiResp[0].PostOffice) == 0 {
		return &LookupResult{Found: false, Pincode: trimmed}, nil
	}

	offices := apiResp[0].PostOffice
	first := offices[0]

	result := &LookupResult{
		Found:    true,
		Pincode:  trimmed,
		Country:  firstNonEmpty(first.Country, "India"),
		State:    firstNonEmpty(first.State, first.Circle),
		District: first.District,
		City:     firstNonEmpty(first.Division, first.District),
		Areas:    make([]string, 0, len(offices)),
	}

	seen := make(map[string]struct{}, len(offices))
	for _, office := range offices {
		name := strings.TrimSpace(office.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result.Areas = append(result.Areas, name)
	}

	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
