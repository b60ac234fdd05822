package handlers

import (
	"errors"
	"net/http"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/middleware"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/boldenardo/astrotarot-hub-sub001/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

// HistoryErrorMessage is the only detail a client sees when the history query fails.
const HistoryErrorMessage = "Erro ao buscar histórico"

// NoReadingsLeftMessage tells a caller with an empty allowance how to get more readings.
const NoReadingsLeftMessage = "Você não tem leituras disponíveis. Assine o plano Premium ou compre uma leitura avulsa."

type ReadingHandler struct {
	readingService ReadingServiceInterface
	userService    UserServiceInterface
	log            zerolog.Logger
}

func NewReadingHandler(readingService ReadingServiceInterface, userService UserServiceInterface, log zerolog.Logger) *ReadingHandler {
	return &ReadingHandler{
		readingService: readingService,
		userService:    userService,
		log:            log,
	}
}

// ListMine serves the caller's reading history.
func (h *ReadingHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	readings, err := h.readingService.ListRecent(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list readings")
		internalError(c, HistoryErrorMessage)
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewReadingHistoryResponse(readings))
}

func (h *ReadingHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	readingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid reading id")
		return
	}

	reading, err := h.readingService.GetForOwner(c.Request.Context(), readingID, userID)
	if errors.Is(err, services.ErrReadingNotFound) {
		c.NotFound("reading not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Str("reading_id", readingID.String()).Msg("failed to load reading")
		internalError(c, "failed to load reading")
		return
	}

	_ = c.JSON(http.StatusOK, dto.NewReadingResponse(reading))
}

func (h *ReadingHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateReadingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if !req.DeckType.Valid() {
		c.BadRequest("deck_type must be NORMAL or EGIPCIO")
		return
	}
	if !req.SpreadType.Valid() {
		c.BadRequest("spread_type must be SINGLE, THREE_CARD or CELTIC_CROSS")
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.GetByID(ctx, userID)
	if errors.Is(err, services.ErrUserNotFound) {
		c.NotFound("user not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load user for reading")
		internalError(c, "failed to create reading")
		return
	}

	if !user.CanMakeReading() {
		paymentRequired(c)
		return
	}

	reading, err := h.readingService.Create(ctx, userID, req.DeckType, req.SpreadType, services.ReadingAccessFor(user))
	if errors.Is(err, services.ErrNoReadingsLeft) {
		paymentRequired(c)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create reading")
		internalError(c, "failed to create reading")
		return
	}

	_ = c.JSON(http.StatusCreated, dto.CreateReadingResponse{
		Reading:      dto.NewReadingResponse(reading),
		NeedsPayment: !reading.IsPremium,
	})
}

func paymentRequired(c *drift.Context) {
	_ = c.JSON(http.StatusForbidden, dto.PaymentRequiredResponse{
		Error:        NoReadingsLeftMessage,
		NeedsPayment: true,
	})
}
