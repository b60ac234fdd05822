package tarot

import (
	"math/rand/v2"
	"testing"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck(t *testing.T) {
	normal, err := Deck(models.DeckNormal)
	require.NoError(t, err)
	egyptian, err := Deck(models.DeckEgyptian)
	require.NoError(t, err)

	assert.Len(t, normal, 22)
	assert.Len(t, egyptian, 22)
	assert.Equal(t, "O Louco", normal[0].Name)
	assert.Equal(t, "O Crocodilo", egyptian[0].Name)
	assert.Equal(t, normal[0].NameEn, egyptian[0].NameEn)
	assert.Equal(t, "/cards/rider-waite/00-fool.jpg", normal[0].ImageURL)
	assert.Equal(t, "/cards/egipcio/21-world.jpg", egyptian[21].ImageURL)

	_, err = Deck("TAROT_DE_MARSELHA")
	assert.Error(t, err)
}

func TestDeck_ReturnsCopy(t *testing.T) {
	first, err := Deck(models.DeckNormal)
	require.NoError(t, err)
	first[0].Keywords[0] = "changed"

	second, err := Deck(models.DeckNormal)
	require.NoError(t, err)
	assert.Equal(t, "novos começos", second[0].Keywords[0])
}

func TestPositions(t *testing.T) {
	testCases := []struct {
		spread models.SpreadType
		count  int
	}{
		{models.SpreadSingle, 1},
		{models.SpreadThreeCard, 3},
		{models.SpreadCelticCross, 10},
	}

	for _, tc := range testCases {
		t.Run(string(tc.spread), func(t *testing.T) {
			p, err := Positions(tc.spread)
			require.NoError(t, err)
			assert.Len(t, p, tc.count)
		})
	}

	_, err := Positions("FIVE_CARD")
	assert.Error(t, err)
}

func TestDrawer_Draw(t *testing.T) {
	d := NewDrawer(rand.New(rand.NewPCG(1, 2)))

	cards, err := d.Draw(models.DeckNormal, models.SpreadCelticCross)
	require.NoError(t, err)
	require.Len(t, cards, 10)

	seen := make(map[string]bool)
	for i, c := range cards {
		assert.Equal(t, i+1, c.Position)
		assert.NotEmpty(t, c.PositionName)
		assert.NotEmpty(t, c.Keywords)
		assert.False(t, seen[c.CardNameEn], "card drawn twice: %s", c.CardNameEn)
		seen[c.CardNameEn] = true
	}
	assert.Equal(t, "Situação Atual", cards[0].PositionName)
	assert.Equal(t, "Resultado", cards[9].PositionName)
}

func TestDrawer_DeterministicWithSeed(t *testing.T) {
	a, err := NewDrawer(rand.New(rand.NewPCG(7, 7))).Draw(models.DeckEgyptian, models.SpreadThreeCard)
	require.NoError(t, err)
	b, err := NewDrawer(rand.New(rand.NewPCG(7, 7))).Draw(models.DeckEgyptian, models.SpreadThreeCard)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDrawer_InvalidInput(t *testing.T) {
	d := NewDrawer(nil)

	_, err := d.Draw("BOGUS", models.SpreadSingle)
	assert.Error(t, err)

	_, err = d.Draw(models.DeckNormal, "BOGUS")
	assert.Error(t, err)
}

func TestTeaser(t *testing.T) {
	cards := []models.Card{{
		CardName:     "A Estrela",
		PositionName: "Passado",
		Upright:      false,
		Keywords:     []string{"esperança", "inspiração"},
	}}

	teaser := Teaser(cards)

	assert.Contains(t, teaser, "A carta A Estrela apareceu invertida na posição Passado")
	assert.Contains(t, teaser, "esperança, inspiração")
	assert.Contains(t, teaser, "[Premium:")
	assert.Empty(t, Teaser(nil))
}
