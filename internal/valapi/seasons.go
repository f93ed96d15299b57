package valapi

import (
	"sort"
	"strings"
	"time"
)

// Season is a competitive season entry. Acts are the playable seasons;
// the surrounding episodes appear in the same list but carry no per-act
// rank history of their own.
type Season struct {
	UUID                 string    `json:"uuid"`
	SeasonUUID           string    `json:"seasonUuid"`
	CompetitiveTiersUUID string    `json:"competitiveTiersUuid"`
	AssetPath            string    `json:"assetPath"`
	StartTime            time.Time `json:"startTime"`
}

// Seasons fetches the full competitive season list.
func (c *Client) Seasons() ([]Season, error) {
	var response struct {
		Data []Season `json:"data"`
	}
	if err := c.getJSON("/seasons/competitive", &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// PastActs filters seasons down to acts that have already started,
// ordered most recent first. The act currently in progress is included,
// since its start time is in the past.
func PastActs(seasons []Season, now time.Time) []Season {
	var acts []Season
	for _, s := range seasons {
		if strings.Contains(s.AssetPath, "Act") && s.StartTime.Before(now) {
			acts = append(acts, s)
		}
	}

	sort.Slice(acts, func(i, j int) bool {
		return acts[i].StartTime.After(acts[j].StartTime)
	})
	return acts
}

// RecentActs returns the current act plus the most recent completed
// acts, n entries in total. The rank-history window is the current act
// and the three acts before it.
func RecentActs(seasons []Season, now time.Time, n int) []Season {
	acts := PastActs(seasons, now)
	if len(acts) > n {
		acts = acts[:n]
	}
	return acts
}
