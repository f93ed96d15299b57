// Package pvp talks to the remote player endpoints (glz and pd hosts)
// using the tokens obtained from the local client.
package pvp

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"haunt/internal/local"
)

// Client issues authenticated requests against the remote match, name
// and MMR endpoints.
type Client struct {
	httpClient *http.Client

	// Host builders, overridable in tests.
	glzBase func(session local.SessionInfo) string
	pdBase  func(session local.SessionInfo) string
}

// NewClient creates a remote API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		glzBase: func(session local.SessionInfo) string {
			return fmt.Sprintf("https://glz-%s-1.%s.a.pvp.net", session.Region, session.Shard)
		},
		pdBase: func(session local.SessionInfo) string {
			return fmt.Sprintf("https://pd.%s.a.pvp.net", session.Shard)
		},
	}
}

// do issues a request with the bearer token and entitlements JWT
// headers every remote endpoint requires.
func (c *Client) do(method, url string, entitlements local.Entitlements, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+entitlements.AccessToken)
	req.Header.Set("X-Riot-Entitlements-JWT", entitlements.JWT)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.httpClient.Do(req)
}
