package handlers

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/middleware"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/boldenardo/astrotarot-hub-sub001/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

const minPasswordLength = 6

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	log          zerolog.Logger
}

func NewAuthHandler(
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
		log:          log,
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		c.BadRequest("invalid email")
		return
	}
	if len(req.Password) < minPasswordLength {
		c.BadRequest("password must be at least 6 characters")
		return
	}

	params := services.RegisterParams{
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		BirthTime:     req.BirthTime,
		BirthLocation: req.BirthLocation,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		d, err := time.Parse(time.DateOnly, *req.BirthDate)
		if err != nil {
			c.BadRequest("birth_date must be YYYY-MM-DD")
			return
		}
		params.BirthDate = &d
	}
	if req.BirthTime != nil && *req.BirthTime != "" {
		if _, err := time.Parse("15:04", *req.BirthTime); err != nil {
			c.BadRequest("birth_time must be HH:MM")
			return
		}
	}

	user, err := h.userService.Register(c.Request.Context(), params)
	if errors.Is(err, services.ErrEmailTaken) {
		c.BadRequest("email already registered")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create user")
		internalError(c, "failed to create user")
		return
	}

	tokens, ok := h.issueTokens(c, user)
	if !ok {
		return
	}

	_ = c.JSON(201, dto.AuthResponse{
		User:          dto.NewUserResponse(user),
		TokenResponse: tokens,
	})
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Unauthorized("invalid credentials")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to authenticate")
		internalError(c, "failed to authenticate")
		return
	}

	tokens, ok := h.issueTokens(c, user)
	if !ok {
		return
	}

	_ = c.JSON(200, dto.AuthResponse{
		User:          dto.NewUserResponse(user),
		TokenResponse: tokens,
	})
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx := c.Request.Context()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to revoke old refresh token")
		internalError(c, "failed to revoke old token")
		return
	}

	tokens, ok := h.issueTokens(c, user)
	if !ok {
		return
	}

	_ = c.JSON(200, tokens)
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		tokenHash := services.HashToken(req.RefreshToken)
		if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), tokenHash); err != nil {
			// The client drops its tokens either way; an unrevoked one still expires.
			h.log.Warn().Err(err).Msg("failed to revoke refresh token on logout")
		}
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to revoke all refresh tokens")
		internalError(c, "failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions logged out"})
}

// issueTokens signs a new pair and persists the refresh token hash. It writes
// the error response itself and reports false when the caller should stop.
func (h *AuthHandler) issueTokens(c *drift.Context, user *models.User) (dto.TokenResponse, bool) {
	tokenPair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to sign token pair")
		internalError(c, "failed to generate tokens")
		return dto.TokenResponse{}, false
	}

	tokenHash := services.HashToken(tokenPair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(c.Request.Context(), user.ID, tokenHash, expiresAt); err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to store refresh token")
		internalError(c, "failed to store refresh token")
		return dto.TokenResponse{}, false
	}

	return dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, true
}
