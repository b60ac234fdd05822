package dto

import (
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/google/uuid"
)

// ReadingResponse is the client-facing projection of a reading. It never carries
// the owner reference.
type ReadingResponse struct {
	ID             uuid.UUID         `json:"id"`
	DeckType       models.DeckType   `json:"deck_type"`
	SpreadType     models.SpreadType `json:"spread_type"`
	Cards          []models.Card     `json:"cards"`
	Interpretation *string           `json:"interpretation,omitempty"`
	IsPremium      bool              `json:"is_premium"`
	CreatedAt      time.Time         `json:"created_at"`
}

type ReadingHistoryResponse struct {
	Readings []ReadingResponse `json:"readings"`
}

type CreateReadingRequest struct {
	DeckType   models.DeckType   `json:"deck_type"`
	SpreadType models.SpreadType `json:"spread_type"`
}

type CreateReadingResponse struct {
	Reading      ReadingResponse `json:"reading"`
	NeedsPayment bool            `json:"needs_payment"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// PaymentRequiredResponse is returned when the caller has no readings left to spend.
type PaymentRequiredResponse struct {
	Error        string `json:"error"`
	NeedsPayment bool   `json:"needs_payment"`
	ReadingsLeft int    `json:"readings_left"`
}

func NewReadingResponse(r *models.Reading) ReadingResponse {
	cards := r.Cards
	if cards == nil {
		cards = []models.Card{}
	}
	return ReadingResponse{
		ID:             r.ID,
		DeckType:       r.DeckType,
		SpreadType:     r.SpreadType,
		Cards:          cards,
		Interpretation: r.Interpretation,
		IsPremium:      r.IsPremium,
		CreatedAt:      r.CreatedAt,
	}
}

// NewReadingHistoryResponse always yields a non-nil slice so an empty history
// serializes as [].
func NewReadingHistoryResponse(readings []models.Reading) ReadingHistoryResponse {
	out := make([]ReadingResponse, len(readings))
	for i := range readings {
		out[i] = NewReadingResponse(&readings[i])
	}
	return ReadingHistoryResponse{Readings: out}
}
