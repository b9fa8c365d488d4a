// Package tmb provides a client for the TMB (Transports Metropolitans de
// Barcelona) journey planner API.
package tmb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/betterway/betterway/internal/planner"
	"github.com/betterway/betterway/internal/provider/resilience"
)

const (
	// ProviderName identifies this planner provider.
	ProviderName = "tmb"

	// DefaultBaseURL is the TMB API base URL.
	DefaultBaseURL = "https://api.tmb.cat/v1"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// Default transport modes requested from the planner.
var defaultModes = []string{"TRANSIT", "WALK"}

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the TMB client.
type ClientConfig struct {
	// AppID is the TMB API application ID (required).
	AppID string

	// AppKey is the TMB API application key (required).
	AppKey string

	// BaseURL is the API base URL (optional, defaults to the TMB API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Now returns the current time; overridable in tests. Defaults to time.Now.
	Now func() time.Time

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a TMB journey planner API client.
type Client struct {
	appID      string
	appKey     string
	baseURL    string
	httpClient HTTPDoer
	now        func() time.Time
	logger     zerolog.Logger
}

// NewClient creates a new TMB planner client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		clientCfg.Registry = cfg.Registry
		httpClient = resilience.NewClient(clientCfg)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        now,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Plan retrieves candidate itineraries between two points.
func (c *Client) Plan(ctx context.Context, req planner.PlanRequest) (*planner.JourneyPlan, error) {
	if err := validateCoordinate(req.Origin); err != nil {
		return nil, &planner.Error{
			Provider: ProviderName,
			Code:     "INVALID_ORIGIN",
			Message:  "invalid origin coordinates",
			Err:      planner.ErrInvalidCoordinates,
		}
	}
	if err := validateCoordinate(req.Destination); err != nil {
		return nil, &planner.Error{
			Provider: ProviderName,
			Code:     "INVALID_DESTINATION",
			Message:  "invalid destination coordinates",
			Err:      planner.ErrInvalidCoordinates,
		}
	}

	departure := req.Departure
	if departure.IsZero() {
		departure = c.now()
	}

	modes := req.Modes
	if len(modes) == 0 {
		modes = defaultModes
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("fromPlace", fmt.Sprintf("%f,%f", req.Origin.Lat, req.Origin.Lon))
	params.Set("toPlace", fmt.Sprintf("%f,%f", req.Destination.Lat, req.Destination.Lon))
	params.Set("date", departure.Format("2006-01-02"))
	params.Set("time", departure.Format("15:04"))
	params.Set("mode", strings.Join(modes, ","))
	params.Set("showIntermediateStops", "true")

	endpoint := c.baseURL + "/planner/plan?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Float64("origin_lat", req.Origin.Lat).
		Float64("origin_lon", req.Origin.Lon).
		Float64("dest_lat", req.Destination.Lat).
		Float64("dest_lon", req.Destination.Lon).
		Str("modes", strings.Join(modes, ",")).
		Msg("requesting journey plan from TMB")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &planner.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach planner provider",
			Err:      planner.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp.StatusCode)
	}

	var plan planner.JourneyPlan
	if err := json.Unmarshal(respBody, &plan); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	itineraries := 0
	if plan.Plan != nil {
		itineraries = len(plan.Plan.Itineraries)
	}
	c.logger.Debug().
		Int("itinerary_count", itineraries).
		Msg("received journey plan from TMB")

	return &plan, nil
}

// handleErrorResponse maps TMB error responses to domain errors.
func (c *Client) handleErrorResponse(statusCode int) error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &planner.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      planner.ErrRateLimitExceeded,
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &planner.Error{
			Provider: ProviderName,
			Code:     "UNAUTHORIZED",
			Message:  "API access denied - check app_id/app_key configuration",
			Err:      planner.ErrUnauthorized,
		}
	default:
		if statusCode >= 500 {
			return &planner.Error{
				Provider: ProviderName,
				Code:     fmt.Sprintf("SERVER_%d", statusCode),
				Message:  "planner provider is temporarily unavailable",
				Err:      planner.ErrProviderUnavailable,
			}
		}
		return &planner.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  fmt.Sprintf("planner provider returned status %d", statusCode),
			Err:      planner.ErrProviderUnavailable,
		}
	}
}

// validateCoordinate checks if a coordinate is within valid ranges.
func validateCoordinate(c planner.Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}
