package client

import "context"

// Health checks the liveness of the API
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doRequest(ctx, "GET", "/healthz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ready checks that the API and its backing stores are reachable
func (c *Client) Ready(ctx context.Context) (map[string]string, error) {
	var status map[string]string
	if err := c.doRequest(ctx, "GET", "/readyz", nil, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// Ping is a simple connectivity test
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}
