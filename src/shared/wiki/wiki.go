package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const SourceName = "Wikipedia"

// Client fetches ground-truth summaries from the Wikipedia REST API.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
}

type summaryResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://en.wikipedia.org/api/rest_v1"
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Summary returns the page extract for a topic. The second return is
// false when the page is missing, a disambiguation page, or the API is
// unreachable; callers fall back to their own reference text.
func (c *Client) Summary(ctx context.Context, topic string) (string, bool) {
	if topic == "" {
		return "", false
	}
	if cached, found := c.cache.Get(topic); found {
		extract := cached.(string)
		return extract, extract != ""
	}

	extract, err := c.fetchSummary(ctx, topic)
	if err != nil {
		// Negative results are not cached so a transient outage does
		// not pin the fallback text for ten minutes.
		return "", false
	}
	c.cache.Set(topic, extract, gocache.DefaultExpiration)
	return extract, extract != ""
}

func (c *Client) fetchSummary(ctx context.Context, topic string) (string, error) {
	u := fmt.Sprintf("%s/page/summary/%s", c.baseURL, url.PathEscape(topic))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia: status %d for %q", resp.StatusCode, topic)
	}

	var result summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Type == "disambiguation" {
		// Ambiguous topics carry no usable ground truth.
		return "", nil
	}
	return result.Extract, nil
}
