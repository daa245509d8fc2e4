package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrEmptyResponse is returned when the upstream answers with a well-formed
// but empty batch. Callers treat it like any other fetch failure.
var ErrEmptyResponse = errors.New("forecast: upstream returned no observations")

// Client fetches the raw hourly observation batch for one place.
type Client interface {
	Fetch(ctx context.Context, place string) ([]Observation, error)
}

// HTTPClient talks to the upstream forecast API with a token-bucket rate
// limit, retries with exponential backoff, and a circuit breaker.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewHTTPClient creates a client for the API at baseURL. rps may be
// fractional for less than one request per second.
func NewHTTPClient(client *http.Client, baseURL string, rps float64, burst int) *HTTPClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "forecast-upstream",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &HTTPClient{
		baseURL: baseURL,
		client:  client,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Fetch retrieves the observation batch for place.
func (c *HTTPClient) Fetch(ctx context.Context, place string) ([]Observation, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("forecast api url is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("place", place)

		u := fmt.Sprintf("%s/?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doWithResilience(ctx, c.client, c.backoff, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var observations []Observation
	if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
		return nil, fmt.Errorf("failed to decode observations: %w", err)
	}
	if len(observations) == 0 {
		return nil, ErrEmptyResponse
	}

	return observations, nil
}

var _ Client = (*HTTPClient)(nil)
