package pvp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"haunt/internal/local"
)

// Raw pre-game schema: players grouped per team, each with an explicit
// selection state instead of a locked agent.
type pregameMatchResponse struct {
	MapID string        `json:"MapID"`
	Mode  string        `json:"Mode"`
	Teams []pregameTeam `json:"Teams"`
}

type pregameTeam struct {
	TeamID  string          `json:"TeamID"`
	Players []pregamePlayer `json:"Players"`
}

type pregamePlayer struct {
	Subject                 string         `json:"Subject"`
	CharacterSelectionState string         `json:"CharacterSelectionState"`
	CharacterID             string         `json:"CharacterID"`
	PlayerIdentity          playerIdentity `json:"PlayerIdentity"`
	IsCaptain               bool           `json:"IsCaptain"`
}

func (c *Client) pregameMatch(session local.SessionInfo, entitlements local.Entitlements, matchID string) (*MatchData, error) {
	endpoint := fmt.Sprintf("%s/pregame/v1/matches/%s", c.glzBase(session), matchID)

	resp, err := c.do(http.MethodGet, endpoint, entitlements, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pregame match fetch: unexpected status %d", resp.StatusCode)
	}

	var raw pregameMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode pregame match: %w", err)
	}
	return normalizePregame(raw), nil
}

func normalizePregame(raw pregameMatchResponse) *MatchData {
	data := &MatchData{
		InGame: false,
		Map:    raw.MapID,
		Mode:   raw.Mode,
	}

	for _, team := range raw.Teams {
		for _, p := range team.Players {
			// captains are not playing entries
			if p.IsCaptain {
				continue
			}
			data.Players = append(data.Players, Player{
				PUUID:            p.Subject,
				Team:             team.TeamID,
				Character:        selectionToCharacter(p.CharacterSelectionState, p.CharacterID),
				CardID:           p.PlayerIdentity.PlayerCardID,
				TitleID:          p.PlayerIdentity.PlayerTitleID,
				AccountLevel:     p.PlayerIdentity.AccountLevel,
				BorderID:         p.PlayerIdentity.PreferredLevelBorderID,
				Incognito:        p.PlayerIdentity.Incognito,
				HideAccountLevel: p.PlayerIdentity.HideAccountLevel,
			})
		}
	}
	return data
}

func selectionToCharacter(state, characterID string) Character {
	switch strings.ToLower(state) {
	case "locked":
		return Character{Kind: CharacterLocked, ID: characterID}
	case "selected":
		return Character{Kind: CharacterHovered, ID: characterID}
	default:
		return Character{Kind: CharacterNone}
	}
}
