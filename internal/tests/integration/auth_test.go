package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/pkg/client"
)

func TestAuth_RegisterLoginMe(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	a.register(t, "owner@example.com")

	c := client.NewClient(client.Config{BaseURL: a.server.URL})
	resp, err := c.Login(ctx, "owner@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "free", resp.User.Tier)

	me, err := c.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", me.Email)
	assert.Equal(t, "Test Owner", me.Name)
	assert.Equal(t, "user", me.Role)
}

func TestAuth_DuplicateRegistration(t *testing.T) {
	a := newApp(t)
	a.register(t, "owner@example.com")

	c := client.NewClient(client.Config{BaseURL: a.server.URL})
	_, err := c.Register(context.Background(), client.RegisterRequest{Email: "owner@example.com", Password: "another-password"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestAuth_WrongPassword(t *testing.T) {
	a := newApp(t)
	a.register(t, "owner@example.com")

	c := client.NewClient(client.Config{BaseURL: a.server.URL})
	_, err := c.Login(context.Background(), "owner@example.com", "wrong-password")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Empty(t, c.GetToken())
}

func TestAuth_RefreshIssuesWorkingToken(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	a.register(t, "owner@example.com")

	c := client.NewClient(client.Config{BaseURL: a.server.URL})
	login, err := c.Login(ctx, "owner@example.com", "correct-horse-battery")
	require.NoError(t, err)

	fresh := client.NewClient(client.Config{BaseURL: a.server.URL})
	_, err = fresh.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)

	me, err := fresh.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", me.Email)
}

func TestAuth_TokensAreNotInterchangeable(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	a.register(t, "owner@example.com")

	c := client.NewClient(client.Config{BaseURL: a.server.URL})
	login, err := c.Login(ctx, "owner@example.com", "correct-horse-battery")
	require.NoError(t, err)

	resp := a.do(t, http.MethodGet, "/api/v1/auth/me", login.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "refresh token must not authorize API calls")

	resp = a.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": login.Token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "access token must not be exchanged for a new pair")

	resp = a.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": login.RefreshToken})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_ProtectedRoutesNeedToken(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodGet, "/api/v1/invoices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/v1/tier/plans", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	a := newApp(t)
	c := a.register(t, "owner@example.com")

	resp := a.do(t, http.MethodGet, "/api/v1/admin/users", c.GetToken(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	a.promote(t, "owner@example.com")
	resp = a.do(t, http.MethodGet, "/api/v1/admin/users", c.GetToken(), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
