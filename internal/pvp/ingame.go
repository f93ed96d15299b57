package pvp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"haunt/internal/local"
)

// Raw running-game schema: a flat player list, every player with a
// locked agent.
type ingameMatchResponse struct {
	MapID   string         `json:"MapID"`
	ModeID  string         `json:"ModeID"`
	Players []ingamePlayer `json:"Players"`
}

type ingamePlayer struct {
	Subject        string         `json:"Subject"`
	TeamID         string         `json:"TeamID"`
	CharacterID    string         `json:"CharacterID"`
	PlayerIdentity playerIdentity `json:"PlayerIdentity"`
	IsCoach        bool           `json:"IsCoach"`
}

// playerIdentity is shared between the two raw schemas.
type playerIdentity struct {
	PlayerCardID           string `json:"PlayerCardID"`
	PlayerTitleID          string `json:"PlayerTitleID"`
	AccountLevel           int    `json:"AccountLevel"`
	PreferredLevelBorderID string `json:"PreferredLevelBorderID"`
	Incognito              bool   `json:"Incognito"`
	HideAccountLevel       bool   `json:"HideAccountLevel"`
}

func (c *Client) ingameMatch(session local.SessionInfo, entitlements local.Entitlements, matchID string) (*MatchData, error) {
	endpoint := fmt.Sprintf("%s/core-game/v1/matches/%s", c.glzBase(session), matchID)

	resp, err := c.do(http.MethodGet, endpoint, entitlements, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ingame match fetch: unexpected status %d", resp.StatusCode)
	}

	var raw ingameMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode ingame match: %w", err)
	}
	return normalizeIngame(raw), nil
}

func normalizeIngame(raw ingameMatchResponse) *MatchData {
	data := &MatchData{
		InGame: true,
		Map:    raw.MapID,
		Mode:   raw.ModeID,
	}

	for _, p := range raw.Players {
		// coaches are not playing entries
		if p.IsCoach {
			continue
		}
		data.Players = append(data.Players, Player{
			PUUID:            p.Subject,
			Team:             p.TeamID,
			Character:        Character{Kind: CharacterLocked, ID: p.CharacterID},
			CardID:           p.PlayerIdentity.PlayerCardID,
			TitleID:          p.PlayerIdentity.PlayerTitleID,
			AccountLevel:     p.PlayerIdentity.AccountLevel,
			BorderID:         p.PlayerIdentity.PreferredLevelBorderID,
			Incognito:        p.PlayerIdentity.Incognito,
			HideAccountLevel: p.PlayerIdentity.HideAccountLevel,
		})
	}
	return data
}
