package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/bizdesk/internal/api/dto"
	"github.com/pratik-mahalle/bizdesk/internal/api/middleware"
	"github.com/pratik-mahalle/bizdesk/internal/auth"
	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/utils"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
)

const refreshTokenCookie = "refreshToken"

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	authenticated, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		writeServiceError(w, err)
		return
	}

	h.issueTokens(w, http.StatusOK, authenticated)
}

// Register handles user registration
// @Summary User registration
// @Description Register a new account on the free plan
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User successfully registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	created, err := h.userService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.issueTokens(w, http.StatusCreated, created)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token; the cookie is used when omitted"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, h.validator, &req) {
		return
	}
	if req.RefreshToken == "" {
		if c, err := r.Cookie(refreshTokenCookie); err == nil {
			req.RefreshToken = c.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.Unauthorized("Refresh token required"))
		return
	}

	claims, err := auth.ParseClaims(req.RefreshToken, h.config.Auth.JWTSecret, auth.TokenRefresh)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
		return
	}

	h.issueTokens(w, http.StatusOK, u)
}

// Logout clears the session cookies
// @Summary Logout
// @Tags Auth
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Secure:   h.config.IsProduction(),
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1,
		})
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(u))
}

// UpdateProfile changes the authenticated user's display fields
// @Summary Update profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	u, err := h.userService.UpdateProfile(r.Context(), userID, user.Profile{
		Name:         req.Name,
		BusinessName: req.BusinessName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToUserDTO(u))
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, status int, u *user.User) {
	tokens, err := auth.MintTokens(
		u.ID,
		u.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tokens.AccessToken,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    tokens.RefreshToken,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		Path:     "/api/v1/auth",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})

	h.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Issued session tokens")

	utils.WriteSuccess(w, status, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.ToUserDTO(u),
	})
}
