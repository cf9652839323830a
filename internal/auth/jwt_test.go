package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestParseClaims_TokenTypes(t *testing.T) {
	tokens, err := MintTokens(7, "owner@example.com", testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("mint tokens: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		want    TokenType
		wantErr bool
	}{
		{name: "access as access", token: tokens.AccessToken, want: TokenAccess},
		{name: "refresh as refresh", token: tokens.RefreshToken, want: TokenRefresh},
		{name: "refresh as access", token: tokens.RefreshToken, want: TokenAccess, wantErr: true},
		{name: "access as refresh", token: tokens.AccessToken, want: TokenRefresh, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseClaims(tt.token, testSecret, tt.want)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.UserID != 7 || claims.Email != "owner@example.com" || claims.Type != tt.want {
				t.Errorf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestParseClaims_Rejects(t *testing.T) {
	tokens, err := MintTokens(7, "owner@example.com", testSecret, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("mint tokens: %v", err)
	}

	if _, err := ParseClaims(tokens.AccessToken, testSecret, TokenAccess); err == nil {
		t.Error("expired access token should be rejected")
	}
	if _, err := ParseClaims(tokens.RefreshToken, "other-secret", TokenRefresh); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}
