package handlers

import (
	"errors"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/middleware"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/boldenardo/astrotarot-hub-sub001/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService UserServiceInterface
	log         zerolog.Logger
}

func NewUserHandler(userService UserServiceInterface, log zerolog.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		c.NotFound("user not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load user")
		internalError(c, "failed to load user")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, req.Name)
	if errors.Is(err, services.ErrUserNotFound) {
		c.NotFound("user not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update user")
		internalError(c, "failed to update user")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}
