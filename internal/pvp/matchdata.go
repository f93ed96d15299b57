package pvp

import (
	"fmt"

	"haunt/internal/local"
)

// CharacterKind is the selection state of a player's agent.
type CharacterKind int

const (
	CharacterNone CharacterKind = iota
	CharacterHovered
	CharacterLocked
)

// Character is a player's agent pick. ID is empty when Kind is
// CharacterNone.
type Character struct {
	Kind CharacterKind
	ID   string
}

// Player is a participant record common to both raw match schemas.
// PartyID is filled in later from local presence data.
type Player struct {
	PUUID            string
	Team             string
	Character        Character
	CardID           string
	TitleID          string
	AccountLevel     int
	BorderID         string
	Incognito        bool
	HideAccountLevel bool
	PartyID          string
}

// MatchData is the normalized raw match: the running-game and pre-game
// schemas both collapse into this shape.
type MatchData struct {
	InGame bool
	Map    string
	Mode   string
	Players []Player
}

// MatchData fetches the raw match by id, preferring the running-game
// endpoint and falling back to pre-game when it fails.
func (c *Client) MatchData(session local.SessionInfo, entitlements local.Entitlements, matchID string) (*MatchData, error) {
	data, ingameErr := c.ingameMatch(session, entitlements, matchID)
	if ingameErr == nil {
		return data, nil
	}

	data, pregameErr := c.pregameMatch(session, entitlements, matchID)
	if pregameErr == nil {
		return data, nil
	}

	return nil, fmt.Errorf("match data unavailable: ingame: %v; pregame: %w", ingameErr, pregameErr)
}
