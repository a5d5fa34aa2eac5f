package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmorel/goflick/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	baseURL      = "https://api.themoviedb.org/3"
	imageBaseURL = "https://image.tmdb.org/t/p/w500"
	youtubeURL   = "https://www.youtube.com/watch?v="

	// Credentials longer than this are v4 access tokens sent as a bearer
	// header; shorter ones are v3 keys sent as an api_key query parameter.
	bearerKeyLength = 40
)

// ErrMissingCredential is returned when no catalog credential is configured
var ErrMissingCredential = errors.New("TMDB_API_KEY is not set")

// RequestError wraps a catalog request failure after retries are exhausted
// or a non-retryable response was received
type RequestError struct {
	StatusCode int // last HTTP status, 0 for transport failures
	Err        error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("TMDB request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// RetryPolicy controls how transient catalog failures are retried.
// It is stateless and applied per request.
type RetryPolicy struct {
	MaxRetries        uint64 // additional attempts after the first
	BaseDelay         time.Duration
	RetryableStatuses map[int]bool
}

// DefaultRetryPolicy retries transient server errors up to 3 more times with
// exponential backoff starting at one second
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		RetryableStatuses: map[int]bool{
			http.StatusBadGateway:         true,
			http.StatusServiceUnavailable: true,
			http.StatusGatewayTimeout:     true,
		},
	}
}

// Client handles communication with the TMDB catalog API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	logger     *logrus.Logger
}

// NewClient creates a new catalog client. A missing credential is not an
// error here: it surfaces as ErrMissingCredential on first use.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(cfg.TMDBAPIKey),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		retry:      DefaultRetryPolicy(),
		logger:     logger,
	}
}

// usesBearerAuth reports whether the credential is a v4 access token
func (c *Client) usesBearerAuth() bool {
	return len(c.apiKey) > bearerKeyLength
}

// get performs an authenticated GET against the catalog API and decodes the
// JSON response into result. Transient server errors (502, 503, 504) and
// transport failures are retried per the client's retry policy; any other
// failure is permanent.
func (c *Client) get(path string, params url.Values, result interface{}) error {
	if c.apiKey == "" {
		return ErrMissingCredential
	}

	if params == nil {
		params = url.Values{}
	}
	if !c.usesBearerAuth() {
		params.Set("api_key", c.apiKey)
	}

	fullURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	c.logger.WithFields(logrus.Fields{
		"path":   path,
		"bearer": c.usesBearerAuth(),
	}).Debug("Making TMDB API request")

	var body []byte
	var lastStatus int

	operation := func() error {
		req, err := http.NewRequest(http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if c.usesBearerAuth() {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastStatus = 0
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()
		lastStatus = resp.StatusCode

		if c.retry.RetryableStatuses[resp.StatusCode] {
			return fmt.Errorf("TMDB API returned status %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("TMDB API returned status %d: %s", resp.StatusCode, string(bodyBytes)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retry.BaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	if err := backoff.Retry(operation, backoff.WithMaxRetries(bo, c.retry.MaxRetries)); err != nil {
		c.logger.WithError(err).WithField("path", path).Error("TMDB request failed")
		return &RequestError{StatusCode: lastStatus, Err: err}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
