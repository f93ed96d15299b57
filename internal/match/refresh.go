package match

import (
	"haunt/internal/pvp"
)

// ApplyRefresh merges freshly fetched raw match data into a cached
// projection in place, touching only the volatile fields: the agent
// pick and party id of participants that already exist in the cache,
// plus the ingame flag. Names, identity attributes and rank history are
// left untouched. Participants that disappeared from the fresh data are
// kept as-is; participants new in the fresh data are ignored (only a
// full load adds players).
//
// The caller must hold the match-cache lock for the whole call so two
// concurrent refreshes can't interleave partial updates.
func (a *Aggregator) ApplyRefresh(cached *Projection, data *pvp.MatchData) {
	cached.InGame = data.InGame

	fresh := make(map[string]pvp.Player, len(data.Players))
	for _, p := range data.Players {
		fresh[p.PUUID] = p
	}

	for i := range cached.Players {
		updated, ok := fresh[cached.Players[i].ID]
		if !ok {
			continue
		}
		cached.Players[i].Character = a.resolveCharacter(updated.Character)
		cached.Players[i].PartyID = updated.PartyID
	}
}
