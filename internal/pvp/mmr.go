package pvp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"haunt/internal/local"
	"haunt/internal/valapi"
)

// Static client-platform blob the MMR endpoint expects; base64 of the
// standard Windows platform descriptor.
const clientPlatform = "ew0KCSJwbGF0Zm9ybVR5cGUiOiAiUEMiLA0KCSJwbGF0Zm9ybU9TIjogIldpbmRvd3MiLA0KCSJwbGF0Zm9ybU9TVmVyc2lvbiI6ICIxMC4wLjE5MDQyLjEuMjU2LjY0Yml0IiwNCgkicGxhdGZvcm1DaGlwc2V0IjogIlVua25vd24iDQp9"

// ErrNoCompetitiveHistory means the player's MMR record carries no
// competitive queue entry at all.
var ErrNoCompetitiveHistory = errors.New("no competitive history for player")

type mmrResponse struct {
	QueueSkills map[string]queueSkill `json:"QueueSkills"`
}

type queueSkill struct {
	SeasonalInfoBySeasonID map[string]seasonalInfo `json:"SeasonalInfoBySeasonID"`
}

type seasonalInfo struct {
	SeasonID        string `json:"SeasonID"`
	CompetitiveTier int    `json:"CompetitiveTier"`
}

// ActRank is a player's recorded competitive tier for one act.
type ActRank struct {
	SeasonID  string
	EpisodeID string // tier-table key for the act's episode
	Tier      int
}

// PlayerHistory fetches a player's competitive tier for each of the
// given acts, in act order. Acts without a recorded entry are simply
// absent from the result.
func (c *Client) PlayerHistory(session local.SessionInfo, entitlements local.Entitlements, puuid string, acts []valapi.Season) ([]ActRank, error) {
	endpoint := fmt.Sprintf("%s/mmr/v1/players/%s", c.pdBase(session), puuid)

	headers := map[string]string{
		"X-Riot-ClientPlatform": clientPlatform,
		"X-Riot-ClientVersion":  session.Version,
	}

	resp, err := c.do(http.MethodGet, endpoint, entitlements, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("mmr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mmr request: unexpected status %d", resp.StatusCode)
	}

	var mmr mmrResponse
	if err := json.NewDecoder(resp.Body).Decode(&mmr); err != nil {
		return nil, fmt.Errorf("decode mmr response: %w", err)
	}

	competitive, ok := mmr.QueueSkills["competitive"]
	if !ok {
		return nil, ErrNoCompetitiveHistory
	}

	var history []ActRank
	for _, act := range acts {
		info, ok := competitive.SeasonalInfoBySeasonID[act.SeasonUUID]
		if !ok {
			continue
		}
		history = append(history, ActRank{
			SeasonID:  info.SeasonID,
			EpisodeID: act.CompetitiveTiersUUID,
			Tier:      info.CompetitiveTier,
		})
	}
	return history, nil
}
