package valapi

import (
	"sync"
)

// Agent is a playable character from the agent catalog.
type Agent struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	DisplayIcon string `json:"displayIcon"`
}

// AgentCatalog maps agent ids to display data. It is loaded once at
// startup and read-only afterward.
type AgentCatalog struct {
	client *Client
	mu     sync.RWMutex
	agents map[string]Agent
	loaded bool
}

// NewAgentCatalog creates an empty catalog backed by client.
func NewAgentCatalog(client *Client) *AgentCatalog {
	return &AgentCatalog{
		client: client,
		agents: make(map[string]Agent),
	}
}

// Load fetches the playable agents.
func (c *AgentCatalog) Load() error {
	var response struct {
		Data []Agent `json:"data"`
	}
	if err := c.client.getJSON("/agents?isPlayableCharacter=true", &response); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, agent := range response.Data {
		c.agents[agent.UUID] = agent
	}
	c.loaded = true
	return nil
}

// Get returns the agent for an id.
func (c *AgentCatalog) Get(uuid string) (Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	agent, ok := c.agents[uuid]
	return agent, ok
}

// IsLoaded reports whether Load has succeeded.
func (c *AgentCatalog) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
