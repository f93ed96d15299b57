package valapi

// ClientVersion looks up the current game client version. The MMR
// endpoint requires it as a header, so the session bootstrap calls this
// best-effort.
func (c *Client) ClientVersion() (string, error) {
	var response struct {
		Data struct {
			RiotClientVersion string `json:"riotClientVersion"`
		} `json:"data"`
	}
	if err := c.getJSON("/version", &response); err != nil {
		return "", err
	}
	return response.Data.RiotClientVersion, nil
}
