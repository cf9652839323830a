package client

import (
	"context"
	"net/url"
)

// TierService handles plan and usage API calls
type TierService struct {
	client *Client
}

// Plans lists the subscription catalog
func (s *TierService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, "GET", apiPrefix+"/tier/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Status returns the caller's plan and usage for the current period
func (s *TierService) Status(ctx context.Context) (*TierStatus, error) {
	var st TierStatus
	if err := s.client.doRequest(ctx, "GET", apiPrefix+"/tier", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// CanUse reports whether one more use of feature fits the caller's plan
func (s *TierService) CanUse(ctx context.Context, feature string) (bool, error) {
	var resp struct {
		Feature string `json:"feature"`
		Allowed bool   `json:"allowed"`
	}
	if err := s.client.doRequest(ctx, "GET", apiPrefix+"/tier/features/"+url.PathEscape(feature), nil, &resp); err != nil {
		return false, err
	}
	return resp.Allowed, nil
}

// Stats returns the dashboard summary
func (c *Client) Stats(ctx context.Context) (*DashboardStats, error) {
	var st DashboardStats
	if err := c.doRequest(ctx, "GET", apiPrefix+"/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
