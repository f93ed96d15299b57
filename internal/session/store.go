// Package session holds the process-wide session state shared by all
// command invocations.
package session

import (
	"sync"

	"haunt/internal/local"
	"haunt/internal/match"
)

// Store is the single shared session state. Each field has its own
// lock: operations take only the locks they need and never hold one
// across network I/O, so a slow remote call can't stall an unrelated
// command. A failed stage leaves earlier fields intact, which lets a
// retry pick up where the last attempt got to.
type Store struct {
	lockfileMu sync.Mutex
	lockfile   *local.Lockfile

	entitlementsMu sync.Mutex
	entitlements   *local.Entitlements

	sessionMu sync.Mutex
	session   *local.SessionInfo

	matchMu sync.Mutex
	match   *match.Projection
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// SetLockfile commits a freshly parsed lockfile.
func (s *Store) SetLockfile(lockfile local.Lockfile) {
	s.lockfileMu.Lock()
	defer s.lockfileMu.Unlock()
	s.lockfile = &lockfile
}

// Lockfile reads the committed lockfile, if any.
func (s *Store) Lockfile() (local.Lockfile, bool) {
	s.lockfileMu.Lock()
	defer s.lockfileMu.Unlock()
	if s.lockfile == nil {
		return local.Lockfile{}, false
	}
	return *s.lockfile, true
}

// SetEntitlements commits the entitlement tokens.
func (s *Store) SetEntitlements(entitlements local.Entitlements) {
	s.entitlementsMu.Lock()
	defer s.entitlementsMu.Unlock()
	s.entitlements = &entitlements
}

// Entitlements reads the committed entitlement tokens, if any.
func (s *Store) Entitlements() (local.Entitlements, bool) {
	s.entitlementsMu.Lock()
	defer s.entitlementsMu.Unlock()
	if s.entitlements == nil {
		return local.Entitlements{}, false
	}
	return *s.entitlements, true
}

// SetSession commits the play-session descriptor.
func (s *Store) SetSession(session local.SessionInfo) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.session = &session
}

// Session reads the committed play-session descriptor, if any.
func (s *Store) Session() (local.SessionInfo, bool) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	if s.session == nil {
		return local.SessionInfo{}, false
	}
	return *s.session, true
}

// SetMatch replaces the cached match projection wholesale. Only called
// after a complete aggregation.
func (s *Store) SetMatch(projection *match.Projection) {
	s.matchMu.Lock()
	defer s.matchMu.Unlock()
	s.match = projection
}

// MatchSnapshot returns a deep copy of the cached projection.
func (s *Store) MatchSnapshot() (*match.Projection, bool) {
	s.matchMu.Lock()
	defer s.matchMu.Unlock()
	if s.match == nil {
		return nil, false
	}
	return s.match.Clone(), true
}

// UpdateMatch runs fn on the cached projection while holding the match
// lock for the full duration, so in-place merges never interleave. fn
// must not do any I/O. Returns ErrNoCachedMatch when no full load has
// happened yet.
func (s *Store) UpdateMatch(fn func(*match.Projection)) error {
	s.matchMu.Lock()
	defer s.matchMu.Unlock()
	if s.match == nil {
		return match.ErrNoCachedMatch
	}
	fn(s.match)
	return nil
}
