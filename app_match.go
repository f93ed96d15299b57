package main

import (
	"errors"
	"time"

	"haunt/internal/local"
	"haunt/internal/match"
	"haunt/internal/pvp"
	"haunt/internal/valapi"
)

// Failure reasons reported to the frontend by the match operations.
const (
	ReasonNotLoggedIn = "notLoggedIn"
	ReasonNotInMatch  = "notInMatch"
	ReasonPresences   = "presences"
	ReasonSeasons     = "seasons"
	ReasonMatchData   = "matchData"
	ReasonNames       = "names"
	ReasonNoCache     = "noCache"
)

// rankHistoryActs is the rank-history window: the current act plus the
// three before it.
const rankHistoryActs = 4

// MatchResult is the outcome of LoadMatch and QuickUpdateMatch.
type MatchResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`

	Match    *match.Projection `json:"match,omitempty"`
	Gamemode string            `json:"gamemode,omitempty"`
	MapName  string            `json:"mapName,omitempty"`
}

func matchFailure(reason string) MatchResult {
	return MatchResult{Reason: reason}
}

// matchContext is everything both match operations need up front.
type matchContext struct {
	lockfile     local.Lockfile
	entitlements local.Entitlements
	session      local.SessionInfo
	matchID      string
	players      []local.Player
	info         local.MatchInfo
}

// prepareMatch re-validates the login (the user may have switched
// accounts since Login ran) and locates the player's current match.
func (a *App) prepareMatch() (matchContext, *MatchResult) {
	lockfile, ok := a.store.Lockfile()
	if !ok {
		a.log.Error("no lockfile config set, was a match command called before login?")
		fail := matchFailure(ReasonNotLoggedIn)
		return matchContext{}, &fail
	}
	entitlements, ok := a.store.Entitlements()
	if !ok {
		a.log.Error("no entitlements config set, was a match command called before login?")
		fail := matchFailure(ReasonNotLoggedIn)
		return matchContext{}, &fail
	}
	sess, ok := a.store.Session()
	if !ok {
		a.log.Error("no session config set, was a match command called before login?")
		fail := matchFailure(ReasonNotLoggedIn)
		return matchContext{}, &fail
	}

	a.log.Info("ensuring the same user is still logged in")

	players, err := local.NewClient(lockfile).Presences()
	if err != nil {
		a.log.Error("unable to load presences", "error", err)
		fail := matchFailure(ReasonPresences)
		return matchContext{}, &fail
	}

	self, ok := findPlayer(players, sess.PUUID)
	if !ok {
		a.log.Error("user not in presences, they probably switched accounts since login")
		fail := matchFailure(ReasonNotLoggedIn)
		return matchContext{}, &fail
	}

	a.log.Info("checking if player is in a match")

	matchID, err := a.pvpClient.CurrentMatchID(sess, entitlements)
	if err != nil {
		if !errors.Is(err, pvp.ErrNotInMatch) {
			a.log.Error("match lookup failed", "error", err)
		}
		a.log.Info("player is not in a match")
		fail := matchFailure(ReasonNotInMatch)
		return matchContext{}, &fail
	}

	a.log.Info("player is in a match")
	a.log.Debug("located match", "matchID", matchID)

	return matchContext{
		lockfile:     lockfile,
		entitlements: entitlements,
		session:      sess,
		matchID:      matchID,
		players:      players,
		info:         local.MatchInfoFor(self),
	}, nil
}

// LoadMatch runs the full aggregation: raw match data, presences,
// names, rank history and catalog resolution, then replaces the cached
// projection wholesale.
func (a *App) LoadMatch() MatchResult {
	mc, fail := a.prepareMatch()
	if fail != nil {
		return *fail
	}

	a.logParties(mc.players)

	seasons, err := a.catalogs.Seasons()
	if err != nil {
		a.log.Error("unable to load seasons", "error", err)
		return matchFailure(ReasonSeasons)
	}
	acts := valapi.RecentActs(seasons, time.Now(), rankHistoryActs)

	projection, err := a.aggregator.Aggregate(mc.session, mc.entitlements, mc.matchID, mc.players, acts)
	if err != nil {
		a.log.Error("aggregation failed", "error", err)
		switch {
		case errors.Is(err, match.ErrNameResolution):
			return matchFailure(ReasonNames)
		default:
			return matchFailure(ReasonMatchData)
		}
	}

	a.store.SetMatch(projection)

	snapshot, _ := a.store.MatchSnapshot()
	return MatchResult{
		OK:       true,
		Match:    snapshot,
		Gamemode: mc.info.Gamemode,
		MapName:  mc.info.Map,
	}
}

// QuickUpdateMatch refreshes only the volatile fields (agent picks and
// party ids) of the cached projection. Without a cached projection it
// reports noCache so the frontend falls back to a full load.
func (a *App) QuickUpdateMatch() MatchResult {
	mc, fail := a.prepareMatch()
	if fail != nil {
		return *fail
	}

	// Fetch before taking the cache lock; the merge itself does no I/O.
	data, err := a.aggregator.FetchRaw(mc.session, mc.entitlements, mc.matchID, mc.players)
	if err != nil {
		a.log.Error("unable to load match data", "error", err)
		return matchFailure(ReasonMatchData)
	}

	err = a.store.UpdateMatch(func(cached *match.Projection) {
		a.aggregator.ApplyRefresh(cached, data)
	})
	if err != nil {
		a.log.Info("no cached match, returning to full load")
		return matchFailure(ReasonNoCache)
	}

	snapshot, _ := a.store.MatchSnapshot()
	return MatchResult{
		OK:       true,
		Match:    snapshot,
		Gamemode: mc.info.Gamemode,
		MapName:  mc.info.Map,
	}
}

// logParties dumps the party grouping at debug level.
func (a *App) logParties(players []local.Player) {
	for partyID, members := range local.PartyGroups(players) {
		names := make([]string, len(members))
		for i, m := range members {
			names[i] = m.GameName
		}
		a.log.Debug("party", "id", partyID, "members", names)
	}
}
