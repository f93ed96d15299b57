package main

import (
	"strconv"

	"haunt/internal/local"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Login stages, reported to the frontend when a bootstrap step fails.
const (
	StageLockfile     = "lockfile"
	StageEntitlements = "entitlements"
	StageSession      = "session"
)

// LoginResult is the outcome of the session bootstrap. On failure,
// FailedStage names the stage that broke; earlier stages stay committed
// so a retry doesn't redo them.
type LoginResult struct {
	OK          bool   `json:"ok"`
	FailedStage string `json:"failedStage,omitempty"`

	Username     string `json:"username,omitempty"`
	Tag          string `json:"tag,omitempty"`
	UUID         string `json:"uuid,omitempty"`
	AccountLevel int    `json:"accountLevel,omitempty"`
	Rank         string `json:"rank,omitempty"`
}

func loginFailure(stage string) LoginResult {
	return LoginResult{FailedStage: stage}
}

// Login runs the session bootstrap: lockfile, entitlements, session.
// Each step commits its field to the shared store before the next one
// runs; the first failure aborts and names its stage.
func (a *App) Login() LoginResult {
	a.log.Info("loading lockfile")

	lockfile, err := local.LoadLockfile(a.settings.LockfilePath)
	if err != nil {
		a.log.Error("unable to load lockfile, Valorant is probably not running", "error", err)
		return loginFailure(StageLockfile)
	}
	a.store.SetLockfile(lockfile)

	client := local.NewClient(lockfile)

	a.log.Info("loading entitlements")

	entitlements, err := client.Entitlements()
	if err != nil {
		a.log.Error("unable to load entitlements", "error", err)
		return loginFailure(StageEntitlements)
	}
	a.store.SetEntitlements(entitlements)

	a.log.Info("loading session")

	sess, err := client.Session()
	if err != nil {
		a.log.Error("unable to load session, Valorant is probably not logged in", "error", err)
		return loginFailure(StageSession)
	}

	// The MMR endpoint wants the client version in a header. Best
	// effort: a failed lookup just leaves the version empty.
	if version, err := a.catalogs.ClientVersion(); err != nil {
		a.log.Warn("unable to resolve client version", "error", err)
	} else {
		sess.Version = version
	}
	a.store.SetSession(sess)

	a.log.Info("looking up player presence")

	players, err := client.Presences()
	if err != nil {
		a.log.Error("unable to load presences", "error", err)
		return loginFailure(StageSession)
	}

	self, ok := findPlayer(players, sess.PUUID)
	if !ok {
		a.log.Error("player not found in presences, probably not logged in")
		return loginFailure(StageSession)
	}

	a.log.Info("logged in", "player", self.GameName)

	// Presence events let the frontend refresh without polling.
	if !a.presences.IsConnected() {
		if err := a.presences.Connect(lockfile); err != nil {
			a.log.Warn("presence stream unavailable", "error", err)
		}
	}

	runtime.EventsEmit(a.ctx, "login:status", map[string]interface{}{
		"loggedIn": true,
		"username": self.GameName,
	})

	return LoginResult{
		OK:           true,
		Username:     self.GameName,
		Tag:          self.GameTag,
		UUID:         self.PUUID,
		AccountLevel: self.Private.AccountLevel,
		Rank:         strconv.Itoa(self.Private.CompetitiveTier),
	}
}

func findPlayer(players []local.Player, puuid string) (local.Player, bool) {
	for _, p := range players {
		if p.PUUID == puuid {
			return p, true
		}
	}
	return local.Player{}, false
}
