// Package valapi loads the public reference catalogs (agents,
// competitive tiers, seasons) the match view resolves ids against.
package valapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://valorant-api.com/v1"

// Client fetches reference data from the public catalog API. When a
// cache is attached, successful responses are stored and served back if
// the network is unavailable on a later launch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *CatalogCache
}

// NewClient creates a catalog client. cache may be nil.
func NewClient(cache *CatalogCache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		cache:      cache,
	}
}

func (c *Client) fetch(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request %s: unexpected status %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// getJSON fetches path and decodes it into out, writing through to the
// cache. On network failure the last cached payload is used instead.
func (c *Client) getJSON(path string, out interface{}) error {
	body, err := c.fetch(path)
	if err == nil {
		if c.cache != nil {
			_ = c.cache.Put(path, body)
		}
		return json.Unmarshal(body, out)
	}

	if c.cache != nil {
		if cached, cacheErr := c.cache.Get(path); cacheErr == nil {
			return json.Unmarshal(cached, out)
		}
	}
	return err
}
