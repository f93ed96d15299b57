package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"haunt/internal/config"
)

// testApp builds an app whose lockfile points at a fixture server
// standing in for the local client API.
func testApp(t *testing.T, handler http.Handler) *App {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "lockfile")
	content := fmt.Sprintf("Riot Client:123:%s:pwd:https", u.Port())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApp(config.Settings{LockfilePath: path}, log, nil)
}

func TestLoginEntitlementsFailureKeepsLockfile(t *testing.T) {
	app := testApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/entitlements/v1/token" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))

	result := app.Login()

	if result.OK {
		t.Fatal("Login reported success with entitlements failing")
	}
	if result.FailedStage != StageEntitlements {
		t.Errorf("FailedStage = %q, want %q", result.FailedStage, StageEntitlements)
	}

	// the lockfile stage committed before the failure; a retry keeps it
	if _, ok := app.store.Lockfile(); !ok {
		t.Error("lockfile not committed to the store")
	}
	if _, ok := app.store.Entitlements(); ok {
		t.Error("entitlements committed despite the failure")
	}
}

func TestLoginMissingLockfile(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := NewApp(config.Settings{
		LockfilePath: filepath.Join(t.TempDir(), "absent"),
	}, log, nil)

	result := app.Login()

	if result.OK {
		t.Fatal("Login reported success without a lockfile")
	}
	if result.FailedStage != StageLockfile {
		t.Errorf("FailedStage = %q, want %q", result.FailedStage, StageLockfile)
	}
	if _, ok := app.store.Lockfile(); ok {
		t.Error("lockfile committed despite the failure")
	}
}
