package match

import (
	"errors"
	"fmt"
	"log/slog"

	"haunt/internal/local"
	"haunt/internal/pvp"
	"haunt/internal/valapi"
)

// placeholderName stands in for an incognito player with no agent
// chosen yet.
const placeholderName = "Player"

// unrankedName is used when a tier index has no catalog entry.
const unrankedName = "Unranked"

var (
	// ErrMatchData means neither the running-game nor the pre-game
	// endpoint produced usable match data.
	ErrMatchData = errors.New("match data unavailable")
	// ErrNameResolution means the batch name lookup failed outright.
	// Names are essential, so this fails the whole aggregation.
	ErrNameResolution = errors.New("name resolution failed")
	// ErrNoCachedMatch means a quick refresh was requested without a
	// prior full load. Callers should fall back to a full load.
	ErrNoCachedMatch = errors.New("no cached match")
)

// Source is the slice of the remote API the aggregator consumes.
// *pvp.Client satisfies it.
type Source interface {
	MatchData(session local.SessionInfo, entitlements local.Entitlements, matchID string) (*pvp.MatchData, error)
	PlayerNames(session local.SessionInfo, entitlements local.Entitlements, puuids []string) (map[string]string, error)
	PlayerHistory(session local.SessionInfo, entitlements local.Entitlements, puuid string, acts []valapi.Season) ([]pvp.ActRank, error)
}

// AgentResolver resolves agent ids against the prefetched agent catalog.
type AgentResolver interface {
	Get(uuid string) (valapi.Agent, bool)
}

// TierResolver resolves (episode, tier) pairs against the prefetched
// competitive-tier catalog.
type TierResolver interface {
	Resolve(episodeID string, tier int) (valapi.Rank, bool)
}

// Aggregator merges raw match data, presences, names, MMR history and
// the reference catalogs into a Projection.
type Aggregator struct {
	Source Source
	Agents AgentResolver
	Tiers  TierResolver
	Log    *slog.Logger
}

func (a *Aggregator) log() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}

// FetchRaw loads the raw match by id and merges in party ids from the
// local presences. Presence misses are non-fatal; the player just keeps
// an empty party id.
func (a *Aggregator) FetchRaw(session local.SessionInfo, entitlements local.Entitlements, matchID string, presences []local.Player) (*pvp.MatchData, error) {
	data, err := a.Source.MatchData(session, entitlements, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchData, err)
	}

	byPUUID := make(map[string]local.Player, len(presences))
	for _, p := range presences {
		byPUUID[p.PUUID] = p
	}

	for i := range data.Players {
		presence, ok := byPUUID[data.Players[i].PUUID]
		if !ok {
			a.log().Debug("no presence for player", "puuid", data.Players[i].PUUID)
			continue
		}
		data.Players[i].PartyID = presence.Private.PartyID
	}
	return data, nil
}

// Aggregate produces a complete Projection for the match. MMR history
// is best-effort per player; name resolution is required.
func (a *Aggregator) Aggregate(session local.SessionInfo, entitlements local.Entitlements, matchID string, presences []local.Player, acts []valapi.Season) (*Projection, error) {
	data, err := a.FetchRaw(session, entitlements, matchID, presences)
	if err != nil {
		return nil, err
	}

	puuids := make([]string, len(data.Players))
	for i, p := range data.Players {
		puuids[i] = p.PUUID
	}

	names, err := a.Source.PlayerNames(session, entitlements, puuids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNameResolution, err)
	}

	projection := &Projection{
		InGame: data.InGame,
		Map:    data.Map,
		Mode:   data.Mode,
	}

	for _, p := range data.Players {
		history, err := a.Source.PlayerHistory(session, entitlements, p.PUUID, acts)
		if err != nil {
			a.log().Warn("unable to load rank history, using empty history", "puuid", p.PUUID, "error", err)
			history = nil
		}

		projection.Players = append(projection.Players, a.buildParticipant(p, names[p.PUUID], history))
	}
	return projection, nil
}

// buildParticipant resolves one raw player against the catalogs and
// applies the privacy rules.
func (a *Aggregator) buildParticipant(p pvp.Player, name string, history []pvp.ActRank) Participant {
	character := a.resolveCharacter(p.Character)

	participant := Participant{
		ID:          p.PUUID,
		Name:        visibleName(name, p.Incognito, character),
		Team:        p.Team,
		Character:   character,
		CardID:      p.CardID,
		TitleID:     p.TitleID,
		BorderID:    p.BorderID,
		PartyID:     p.PartyID,
		RankHistory: a.resolveHistory(history),
	}

	if !p.HideAccountLevel {
		level := p.AccountLevel
		participant.AccountLevel = &level
	}
	return participant
}

// resolveCharacter maps a raw character pick to its catalog entry. No
// pick, or an id the catalog doesn't know, resolves to no character.
func (a *Aggregator) resolveCharacter(character pvp.Character) *valapi.Agent {
	if character.Kind == pvp.CharacterNone {
		return nil
	}
	agent, ok := a.Agents.Get(character.ID)
	if !ok {
		return nil
	}
	return &agent
}

// visibleName applies the incognito rule: incognito players show as
// their agent, or a generic placeholder before they picked one.
func visibleName(name string, incognito bool, character *valapi.Agent) string {
	if !incognito {
		return name
	}
	if character != nil {
		return character.DisplayName
	}
	return placeholderName
}

func (a *Aggregator) resolveHistory(history []pvp.ActRank) []SeasonRank {
	var ranks []SeasonRank
	for _, entry := range history {
		rank := SeasonRank{
			SeasonID:  entry.SeasonID,
			EpisodeID: entry.EpisodeID,
			Tier:      entry.Tier,
			TierName:  unrankedName,
		}
		if resolved, ok := a.Tiers.Resolve(entry.EpisodeID, entry.Tier); ok {
			rank.TierName = resolved.Name
			rank.LargeIcon = resolved.LargeIcon
		}
		ranks = append(ranks, rank)
	}
	return ranks
}
