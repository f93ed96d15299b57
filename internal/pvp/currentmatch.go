package pvp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"haunt/internal/local"
)

// ErrNotInMatch is the normal outcome when the player is neither in a
// running game nor in a pre-game lobby. It is not a fault.
var ErrNotInMatch = errors.New("player is not in a match")

type currentMatchResponse struct {
	MatchID string `json:"MatchID"`
}

// CurrentMatchID returns the id of the match the player is currently
// in. The running-game endpoint is checked first and short-circuits;
// any failure there falls back to the pre-game lobby endpoint. Both
// failing means the player simply is not in a match.
func (c *Client) CurrentMatchID(session local.SessionInfo, entitlements local.Entitlements) (string, error) {
	endpoints := []string{
		fmt.Sprintf("%s/core-game/v1/players/%s", c.glzBase(session), session.PUUID),
		fmt.Sprintf("%s/pregame/v1/players/%s", c.glzBase(session), session.PUUID),
	}

	for _, endpoint := range endpoints {
		matchID, err := c.fetchMatchID(endpoint, entitlements)
		if err == nil && matchID != "" {
			return matchID, nil
		}
	}
	return "", ErrNotInMatch
}

func (c *Client) fetchMatchID(endpoint string, entitlements local.Entitlements) (string, error) {
	resp, err := c.do(http.MethodGet, endpoint, entitlements, nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("current match lookup: unexpected status %d", resp.StatusCode)
	}

	var current currentMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return "", fmt.Errorf("decode current match: %w", err)
	}
	return current.MatchID, nil
}
