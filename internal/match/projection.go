// Package match assembles the consolidated match view from the raw
// match data, local presences, name service and MMR history.
package match

import (
	"haunt/internal/valapi"
)

// Projection is the display-ready match view handed to the frontend.
type Projection struct {
	InGame  bool          `json:"ingame"`
	Map     string        `json:"map"`
	Mode    string        `json:"mode"`
	Players []Participant `json:"players"`
}

// Participant is one player's display-ready row. Name and AccountLevel
// already reflect the player's privacy flags; the flags themselves are
// not carried here.
type Participant struct {
	ID           string        `json:"uuid"`
	Name         string        `json:"name"`
	Team         string        `json:"team"`
	Character    *valapi.Agent `json:"character,omitempty"`
	CardID       string        `json:"cardId"`
	TitleID      string        `json:"titleId"`
	AccountLevel *int          `json:"accountLevel,omitempty"`
	BorderID     string        `json:"borderId"`
	PartyID      string        `json:"partyId"`
	RankHistory  []SeasonRank  `json:"rankHistory"`
}

// SeasonRank is a resolved competitive placement for one act.
type SeasonRank struct {
	SeasonID  string `json:"seasonId"`
	EpisodeID string `json:"episodeId"`
	Tier      int    `json:"tier"`
	TierName  string `json:"tierName"`
	LargeIcon string `json:"largeIcon,omitempty"`
}

// Clone returns a deep copy, safe to hand out while the original keeps
// being mutated by quick refreshes.
func (p *Projection) Clone() *Projection {
	out := &Projection{
		InGame: p.InGame,
		Map:    p.Map,
		Mode:   p.Mode,
	}
	if p.Players == nil {
		return out
	}

	out.Players = make([]Participant, len(p.Players))
	for i, player := range p.Players {
		cloned := player
		if player.Character != nil {
			character := *player.Character
			cloned.Character = &character
		}
		if player.AccountLevel != nil {
			level := *player.AccountLevel
			cloned.AccountLevel = &level
		}
		if player.RankHistory != nil {
			cloned.RankHistory = make([]SeasonRank, len(player.RankHistory))
			copy(cloned.RankHistory, player.RankHistory)
		}
		out.Players[i] = cloned
	}
	return out
}
