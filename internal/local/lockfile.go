package local

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrLockfileUnavailable means the lockfile could not be read, which in
// practice means the Riot Client is not running.
var ErrLockfileUnavailable = errors.New("lockfile unavailable")

// Lockfile holds the connection details the Riot Client writes to its
// lockfile on startup.
type Lockfile struct {
	Name     string
	PID      int
	Port     int
	Password string
	Protocol string
}

// DefaultLockfilePath returns the standard lockfile location under the
// user's local app data directory.
func DefaultLockfilePath() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "Riot Games", "Riot Client", "Config", "lockfile")
}

// ParseLockfile parses the colon-delimited lockfile content:
// name:pid:port:password:protocol. Anything with the wrong field count
// or a non-numeric pid/port is rejected outright.
func ParseLockfile(content string) (Lockfile, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 5 {
		return Lockfile{}, fmt.Errorf("invalid lockfile format: expected 5 fields, got %d", len(parts))
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return Lockfile{}, fmt.Errorf("invalid lockfile pid %q: %w", parts[1], err)
	}

	port, err := strconv.Atoi(parts[2])
	if err != nil {
		return Lockfile{}, fmt.Errorf("invalid lockfile port %q: %w", parts[2], err)
	}

	return Lockfile{
		Name:     parts[0],
		PID:      pid,
		Port:     port,
		Password: parts[3],
		Protocol: parts[4],
	}, nil
}

// LoadLockfile reads and parses the lockfile at path. An empty path
// falls back to the default location.
func LoadLockfile(path string) (Lockfile, error) {
	if path == "" {
		path = DefaultLockfilePath()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Lockfile{}, ErrLockfileUnavailable
	}

	cfg, err := ParseLockfile(string(content))
	if err != nil {
		return Lockfile{}, err
	}
	return cfg, nil
}
