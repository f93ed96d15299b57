package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// SessionInfo describes the player's active Valorant session, derived
// from the launch arguments the Riot Client passed to the game.
type SessionInfo struct {
	PUUID  string
	Region string
	Shard  string
	// Version is the game client version, filled in separately from the
	// remote version lookup. It may stay empty if that lookup fails.
	Version string
}

type externalSession struct {
	LaunchConfiguration struct {
		Arguments []string `json:"arguments"`
	} `json:"launchConfiguration"`
	ProductID string `json:"productId"`
}

var errNoValorantSession = errors.New("no valorant session found")

// Session queries the external-sessions endpoint and derives the puuid,
// region and shard from the Valorant entry's launch arguments. The
// endpoint may list several sessions (league, the riot client itself),
// so only the entry with the valorant product id counts.
func (c *Client) Session() (SessionInfo, error) {
	resp, err := c.get("/product-session/v1/external-sessions")
	if err != nil {
		return SessionInfo{}, fmt.Errorf("sessions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SessionInfo{}, fmt.Errorf("sessions request: unexpected status %d", resp.StatusCode)
	}

	var sessions map[string]externalSession
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return SessionInfo{}, fmt.Errorf("decode sessions: %w", err)
	}

	for _, s := range sessions {
		if s.ProductID == "valorant" {
			return sessionFromArguments(s.LaunchConfiguration.Arguments)
		}
	}
	return SessionInfo{}, errNoValorantSession
}

// sessionFromArguments extracts the -ares-deployment and -subject launch
// arguments. The deployment value names both region and shard.
func sessionFromArguments(arguments []string) (SessionInfo, error) {
	deployment, err := argValue(arguments, "-ares-deployment=")
	if err != nil {
		return SessionInfo{}, err
	}
	puuid, err := argValue(arguments, "-subject=")
	if err != nil {
		return SessionInfo{}, err
	}

	return SessionInfo{
		PUUID:  puuid,
		Region: regionFromDeployment(deployment),
		Shard:  shardFromDeployment(deployment),
	}, nil
}

// argValue finds the argument with the given prefix and returns its
// value. Values may carry a &-suffix on some deployments, so both = and
// & act as separators.
func argValue(arguments []string, prefix string) (string, error) {
	for _, arg := range arguments {
		if !strings.HasPrefix(arg, prefix) {
			continue
		}
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == '=' || r == '&'
		})
		if len(fields) < 2 {
			return "", fmt.Errorf("malformed launch argument %q", arg)
		}
		return fields[1], nil
	}
	return "", fmt.Errorf("launch argument %q not found", prefix)
}

func regionFromDeployment(deployment string) string {
	switch deployment {
	case "latam", "br", "eu", "ap", "kr":
		return deployment
	default:
		return "na"
	}
}

func shardFromDeployment(deployment string) string {
	switch deployment {
	case "pbe", "eu", "ap", "kr":
		return deployment
	default:
		// latam and br play on the na shard
		return "na"
	}
}
