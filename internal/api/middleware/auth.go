package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/auth"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
)

// AccessTokenCookie carries the access token for browser clients
const AccessTokenCookie = "accessToken"

// tokenFromRequest reads a bearer token, falling back to the access cookie
func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// WithUser returns ctx carrying the authenticated user
func WithUser(ctx context.Context, userID int64, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UserEmailKey, email)
}

// AuthMiddleware returns a middleware that validates JWT tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.NotAuthenticated())
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret, auth.TokenAccess)
			if err != nil || claims.UserID == 0 {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			AddLogField(w, "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Email)))
		})
	}
}

// RequireAdmin rejects users without the admin role. It must run after AuthMiddleware.
func RequireAdmin(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r)
			if !ok {
				utils.WriteError(w, errors.NotAuthenticated())
				return
			}
			u, err := users.GetByID(r.Context(), userID)
			if err != nil || !u.IsAdmin() {
				utils.WriteError(w, errors.Forbidden("Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	return userID, ok && userID != 0
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	return email, ok
}
