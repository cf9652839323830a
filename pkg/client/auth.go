package client

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token        string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// User represents a user in the system
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Role         string `json:"role"`
	Tier         string `json:"tier"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp LoginResponse
	if err := c.doRequest(ctx, "POST", apiPrefix+"/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doRequest(ctx, "POST", apiPrefix+"/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// GetCurrentUser retrieves the currently authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "GET", apiPrefix+"/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout logs out the current user
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", apiPrefix+"/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// RefreshToken exchanges a refresh token for a new token pair
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	req := map[string]string{
		"refreshToken": refreshToken,
	}

	var resp LoginResponse
	if err := c.doRequest(ctx, "POST", apiPrefix+"/auth/refresh", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}
