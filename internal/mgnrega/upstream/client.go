package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Mayank06R/our-voice-rights/internal/mgnrega/models"
	dErrors "github.com/Mayank06R/our-voice-rights/pkg/domain-errors"
)

// Client fetches raw monthly records from the data.gov.in resource API.
type Client struct {
	baseURL    string
	apiKey     string
	resourceID string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New constructs an upstream client. The default HTTP client carries a
// deployment-level timeout so a hung upstream call cannot block a
// request or an ingestion run forever.
func New(baseURL, apiKey, resourceID string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if resourceID == "" {
		return nil, fmt.Errorf("upstream resource ID is required")
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		resourceID: resourceID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the upstream response wrapper. Records is a pointer so a
// payload without the records field can be told apart from an empty one.
type envelope struct {
	Records *[]models.RawRecord `json:"records"`
}

// Fetch requests up to limit raw rows. Zero matching records is a valid
// empty result, not an error. The limit bounds requested rows, not how
// many belong to any particular state.
func (c *Client) Fetch(ctx context.Context, limit int) ([]models.RawRecord, error) {
	q := url.Values{}
	q.Set("api-key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", fmt.Sprintf("%d", limit))

	endpoint := fmt.Sprintf("%s/resource/%s?%s", c.baseURL, c.resourceID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to build upstream request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("upstream returned status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to decode upstream payload")
	}
	if env.Records == nil {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "upstream payload missing records field")
	}

	return *env.Records, nil
}
