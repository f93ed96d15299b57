package valapi

import (
	"sync"
)

type tierResponse struct {
	Data []tierEpisode `json:"data"`
}

type tierEpisode struct {
	UUID  string `json:"uuid"`
	Tiers []struct {
		Tier      int    `json:"tier"`
		TierName  string `json:"tierName"`
		LargeIcon string `json:"largeIcon"`
	} `json:"tiers"`
}

// Rank is a resolved competitive tier.
type Rank struct {
	Name      string
	LargeIcon string
}

// TierCatalog resolves (episode, tier index) pairs to rank names. Tier
// tables are versioned per episode, which is why the episode id is part
// of the key.
type TierCatalog struct {
	client   *Client
	mu       sync.RWMutex
	episodes map[string]map[int]Rank
	loaded   bool
}

// NewTierCatalog creates an empty catalog backed by client.
func NewTierCatalog(client *Client) *TierCatalog {
	return &TierCatalog{
		client:   client,
		episodes: make(map[string]map[int]Rank),
	}
}

// Load fetches all competitive tier tables.
func (c *TierCatalog) Load() error {
	var response tierResponse
	if err := c.client.getJSON("/competitivetiers", &response); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, episode := range response.Data {
		ranks := make(map[int]Rank, len(episode.Tiers))
		for _, t := range episode.Tiers {
			ranks[t.Tier] = Rank{Name: t.TierName, LargeIcon: t.LargeIcon}
		}
		c.episodes[episode.UUID] = ranks
	}
	c.loaded = true
	return nil
}

// Resolve returns the rank for a tier index within an episode.
func (c *TierCatalog) Resolve(episodeID string, tier int) (Rank, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ranks, ok := c.episodes[episodeID]
	if !ok {
		return Rank{}, false
	}
	rank, ok := ranks[tier]
	return rank, ok
}

// IsLoaded reports whether Load has succeeded.
func (c *TierCatalog) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
