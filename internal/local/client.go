package local

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the Riot Client's local HTTPS API. The local API uses
// a self-signed certificate, so verification is disabled, and every
// request carries basic auth with the fixed "riot" username and the
// lockfile password.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
}

// NewClient builds a client for the local API described by the lockfile.
func NewClient(lockfile Lockfile) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // local API uses a self-signed cert
				},
			},
			Timeout: 5 * time.Second,
		},
		baseURL:    fmt.Sprintf("https://127.0.0.1:%d", lockfile.Port),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte("riot:"+lockfile.Password)),
	}
}

// get performs an authenticated GET against the local API.
func (c *Client) get(endpoint string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.authHeader)
	return c.httpClient.Do(req)
}
