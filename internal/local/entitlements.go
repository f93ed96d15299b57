package local

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Entitlements holds the tokens needed for remote pvp endpoints. The
// local API's field names are confusing: "accessToken" is the bearer
// token and "token" is the entitlements JWT.
type Entitlements struct {
	AccessToken string `json:"accessToken"`
	JWT         string `json:"token"`
}

// Entitlements exchanges the lockfile credentials for remote API tokens.
func (c *Client) Entitlements() (Entitlements, error) {
	resp, err := c.get("/entitlements/v1/token")
	if err != nil {
		return Entitlements{}, fmt.Errorf("entitlements request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Entitlements{}, fmt.Errorf("entitlements request: unexpected status %d", resp.StatusCode)
	}

	var ents Entitlements
	if err := json.NewDecoder(resp.Body).Decode(&ents); err != nil {
		return Entitlements{}, fmt.Errorf("decode entitlements: %w", err)
	}
	return ents, nil
}
