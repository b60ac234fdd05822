package models

import (
	"time"

	"github.com/google/uuid"
)

type DeckType string

const (
	DeckNormal   DeckType = "NORMAL"
	DeckEgyptian DeckType = "EGIPCIO"
)

func (d DeckType) Valid() bool {
	return d == DeckNormal || d == DeckEgyptian
}

type SpreadType string

const (
	SpreadSingle      SpreadType = "SINGLE"
	SpreadThreeCard   SpreadType = "THREE_CARD"
	SpreadCelticCross SpreadType = "CELTIC_CROSS"
)

func (s SpreadType) Valid() bool {
	switch s {
	case SpreadSingle, SpreadThreeCard, SpreadCelticCross:
		return true
	}
	return false
}

// Card is one drawn card as persisted in tarot_readings.cards.
type Card struct {
	CardName     string   `json:"cardName"`
	CardNameEn   string   `json:"cardNameEn"`
	Position     int      `json:"position"`
	PositionName string   `json:"positionName"`
	Upright      bool     `json:"upright"`
	Keywords     []string `json:"keywords"`
	ImageURL     string   `json:"imageUrl"`
}

// Reading is a stored tarot draw. OwnerID is only populated on insert paths;
// listing queries never select it.
type Reading struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"-"`
	DeckType       DeckType   `json:"deck_type"`
	SpreadType     SpreadType `json:"spread_type"`
	Cards          []Card     `json:"cards"`
	Interpretation *string    `json:"interpretation,omitempty"`
	IsPremium      bool       `json:"is_premium"`
	CreatedAt      time.Time  `json:"created_at"`
}
