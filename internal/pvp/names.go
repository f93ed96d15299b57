package pvp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"haunt/internal/local"
)

type nameServiceEntry struct {
	Subject  string `json:"Subject"`
	GameName string `json:"GameName"`
	TagLine  string `json:"TagLine"`
}

// PlayerNames resolves display names for a batch of player ids. The
// result maps puuid to "Name #TAG".
func (c *Client) PlayerNames(session local.SessionInfo, entitlements local.Entitlements, puuids []string) (map[string]string, error) {
	endpoint := fmt.Sprintf("%s/name-service/v2/players", c.pdBase(session))

	body, err := json.Marshal(puuids)
	if err != nil {
		return nil, fmt.Errorf("encode name request: %w", err)
	}

	resp, err := c.do(http.MethodPut, endpoint, entitlements, bytes.NewReader(body), nil)
	if err != nil {
		return nil, fmt.Errorf("name service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("name service request: unexpected status %d", resp.StatusCode)
	}

	var entries []nameServiceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode name service response: %w", err)
	}

	names := make(map[string]string, len(entries))
	for _, entry := range entries {
		names[entry.Subject] = fmt.Sprintf("%s #%s", entry.GameName, entry.TagLine)
	}
	return names, nil
}
