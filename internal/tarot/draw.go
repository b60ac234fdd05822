package tarot

import (
	"math/rand/v2"
	"sync"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
)

// Drawer shuffles a deck and lays out a spread. Safe for concurrent use.
type Drawer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDrawer(rng *rand.Rand) *Drawer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Drawer{rng: rng}
}

func (d *Drawer) Draw(deckType models.DeckType, spreadType models.SpreadType) ([]models.Card, error) {
	deck, err := Deck(deckType)
	if err != nil {
		return nil, err
	}
	positions, err := Positions(spreadType)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	cards := make([]models.Card, len(positions))
	for i, label := range positions {
		a := deck[i]
		cards[i] = models.Card{
			CardName:     a.Name,
			CardNameEn:   a.NameEn,
			Position:     i + 1,
			PositionName: label,
			Upright:      d.rng.IntN(2) == 0,
			Keywords:     a.Keywords,
			ImageURL:     a.ImageURL,
		}
	}
	return cards, nil
}
