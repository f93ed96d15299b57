package local

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type presenceResponse struct {
	Presences []presence `json:"presences"`
}

type presence struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"game_name"`
	GameTag  string `json:"game_tag"`
	Product  string `json:"product"`
	Private  string `json:"private"`
}

// Player is a locally-observed presence entry for someone in or around
// the user's game, with the private payload already decoded.
type Player struct {
	PUUID    string
	GameName string
	GameTag  string
	Private  PrivatePresence
}

// PrivatePresence is the base64-encoded JSON blob each Valorant presence
// carries.
type PrivatePresence struct {
	IsValid                bool   `json:"isValid"`
	MatchMap               string `json:"matchMap"`
	PartyID                string `json:"partyId"`
	PlayerCardID           string `json:"playerCardId"`
	PlayerTitleID          string `json:"playerTitleId"`
	PreferredLevelBorderID string `json:"preferredLevelBorderId"`
	AccountLevel           int    `json:"accountLevel"`
	CompetitiveTier        int    `json:"competitiveTier"`
	QueueID                string `json:"queueId"`
}

// Presences returns the Valorant players visible to the local chat
// service. Entries for other products or without a private payload are
// dropped; entries whose private payload fails to decode are skipped
// rather than failing the whole call.
func (c *Client) Presences() ([]Player, error) {
	resp, err := c.get("/chat/v4/presences")
	if err != nil {
		return nil, fmt.Errorf("presences request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("presences request: unexpected status %d", resp.StatusCode)
	}

	var response presenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode presences: %w", err)
	}

	var players []Player
	for _, p := range response.Presences {
		if p.Product != "valorant" || p.Private == "" {
			continue
		}

		private, err := decodePrivate(p.Private)
		if err != nil {
			continue
		}

		players = append(players, Player{
			PUUID:    p.PUUID,
			GameName: p.GameName,
			GameTag:  p.GameTag,
			Private:  private,
		})
	}
	return players, nil
}

func decodePrivate(encoded string) (PrivatePresence, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return PrivatePresence{}, fmt.Errorf("decode private presence: %w", err)
	}

	var private PrivatePresence
	if err := json.Unmarshal(decoded, &private); err != nil {
		return PrivatePresence{}, fmt.Errorf("parse private presence: %w", err)
	}
	return private, nil
}

// MatchInfo is the map and gamemode the local player's presence reports,
// used for the status display.
type MatchInfo struct {
	Gamemode string
	Map      string
}

// MatchInfoFor derives display-ready match info from a player's presence.
func MatchInfoFor(player Player) MatchInfo {
	mapName := mapNameFromPath(player.Private.MatchMap)

	gamemode := gamemodeName(player.Private.QueueID)
	if mapName == "The Range" {
		gamemode = "The Range"
	}

	return MatchInfo{Gamemode: gamemode, Map: mapName}
}

// mapNameFromPath turns an asset path like
// "/Game/Maps/Duality/Duality" into a display name.
func mapNameFromPath(path string) string {
	parts := strings.Split(path, "/")
	switch last := parts[len(parts)-1]; last {
	case "Bind", "Haven", "Split", "Ascent", "Icebox", "Breeze", "Fracture":
		return last
	case "Range":
		return "The Range"
	default:
		return "Unknown"
	}
}

func gamemodeName(queueID string) string {
	switch queueID {
	case "competitive":
		return "Competitive"
	case "unrated":
		return "Unrated"
	case "newmap":
		return "New Map"
	default:
		return titleCase(queueID)
	}
}

// titleCase uppercases the first letter of each word for queue ids we
// don't special-case, e.g. "spikerush" -> "Spikerush".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PartyGroups buckets players by their party id.
func PartyGroups(players []Player) map[string][]Player {
	groups := make(map[string][]Player)
	for _, p := range players {
		groups[p.Private.PartyID] = append(groups[p.Private.PartyID], p)
	}
	return groups
}
