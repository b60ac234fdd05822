// Package tarot holds the card catalog and the draw rules used when a reading is created.
package tarot

import (
	"fmt"
	"strings"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
)

// Arcana is a catalog entry before it is placed in a spread.
type Arcana struct {
	Name     string
	NameEn   string
	Keywords []string
	ImageURL string
}

type arcanum struct {
	slug     string
	nameEn   string
	normal   string
	egyptian string
	keywords []string
}

var majorArcana = []arcanum{
	{"fool", "The Fool", "O Louco", "O Crocodilo", []string{"novos começos", "espontaneidade", "fé"}},
	{"magician", "The Magician", "O Mago", "O Mago", []string{"vontade", "habilidade", "manifestação"}},
	{"high-priestess", "The High Priestess", "A Sacerdotisa", "A Porta do Santuário", []string{"intuição", "mistério", "sabedoria oculta"}},
	{"empress", "The Empress", "A Imperatriz", "Ísis Urânia", []string{"fertilidade", "abundância", "natureza"}},
	{"emperor", "The Emperor", "O Imperador", "A Pedra Cúbica", []string{"autoridade", "estrutura", "estabilidade"}},
	{"hierophant", "The Hierophant", "O Hierofante", "O Mestre dos Arcanos", []string{"tradição", "ensinamento", "espiritualidade"}},
	{"lovers", "The Lovers", "Os Enamorados", "Os Dois Caminhos", []string{"amor", "escolha", "união"}},
	{"chariot", "The Chariot", "O Carro", "O Carro de Osíris", []string{"vitória", "determinação", "controle"}},
	{"justice", "Justice", "A Justiça", "Themis", []string{"equilíbrio", "verdade", "causa e efeito"}},
	{"hermit", "The Hermit", "O Eremita", "A Lâmpada Velada", []string{"introspecção", "prudência", "busca interior"}},
	{"wheel-of-fortune", "Wheel of Fortune", "A Roda da Fortuna", "A Esfinge", []string{"ciclos", "destino", "mudança"}},
	{"strength", "Strength", "A Força", "O Leão Domado", []string{"coragem", "paciência", "domínio de si"}},
	{"hanged-man", "The Hanged Man", "O Enforcado", "O Sacrifício", []string{"entrega", "nova perspectiva", "pausa"}},
	{"death", "Death", "A Morte", "A Ceifadora", []string{"transformação", "encerramento", "renovação"}},
	{"temperance", "Temperance", "A Temperança", "O Gênio Solar", []string{"moderação", "harmonia", "cura"}},
	{"devil", "The Devil", "O Diabo", "Tífon", []string{"apego", "tentação", "sombra"}},
	{"tower", "The Tower", "A Torre", "A Torre Fulminada", []string{"ruptura", "revelação", "libertação"}},
	{"star", "The Star", "A Estrela", "A Estrela dos Magos", []string{"esperança", "inspiração", "serenidade"}},
	{"moon", "The Moon", "A Lua", "O Crepúsculo", []string{"ilusão", "sonhos", "inconsciente"}},
	{"sun", "The Sun", "O Sol", "A Luz Resplandecente", []string{"alegria", "sucesso", "vitalidade"}},
	{"judgement", "Judgement", "O Julgamento", "O Despertar dos Mortos", []string{"renascimento", "chamado", "absolvição"}},
	{"world", "The World", "O Mundo", "A Coroa dos Magos", []string{"realização", "completude", "integração"}},
}

// Deck returns a fresh copy of the catalog for the given deck type.
func Deck(deckType models.DeckType) ([]Arcana, error) {
	var folder string
	switch deckType {
	case models.DeckNormal:
		folder = "rider-waite"
	case models.DeckEgyptian:
		folder = "egipcio"
	default:
		return nil, fmt.Errorf("unknown deck type %q", deckType)
	}

	cards := make([]Arcana, len(majorArcana))
	for i, a := range majorArcana {
		name := a.normal
		if deckType == models.DeckEgyptian {
			name = a.egyptian
		}
		cards[i] = Arcana{
			Name:     name,
			NameEn:   a.nameEn,
			Keywords: append([]string(nil), a.keywords...),
			ImageURL: fmt.Sprintf("/cards/%s/%02d-%s.jpg", folder, i, a.slug),
		}
	}
	return cards, nil
}

var spreads = map[models.SpreadType][]string{
	models.SpreadSingle:    {"Mensagem do Dia"},
	models.SpreadThreeCard: {"Passado", "Presente", "Futuro"},
	models.SpreadCelticCross: {
		"Situação Atual",
		"Desafio",
		"Base",
		"Passado Recente",
		"Coroa",
		"Futuro Próximo",
		"Você",
		"Ambiente",
		"Esperanças e Medos",
		"Resultado",
	},
}

// Positions returns the ordered position labels of a spread.
func Positions(spreadType models.SpreadType) ([]string, error) {
	p, ok := spreads[spreadType]
	if !ok {
		return nil, fmt.Errorf("unknown spread type %q", spreadType)
	}
	return append([]string(nil), p...), nil
}

// Teaser is the partial interpretation stored on non-premium readings.
func Teaser(cards []models.Card) string {
	if len(cards) == 0 {
		return ""
	}
	c := cards[0]
	orientation := "em pé"
	if !c.Upright {
		orientation = "invertida"
	}
	return fmt.Sprintf(
		"A carta %s apareceu %s na posição %s. Esta carta simboliza %s... "+
			"[Premium: desbloqueie a interpretação completa com análise astrológica personalizada]",
		c.CardName, orientation, c.PositionName, strings.Join(c.Keywords, ", "),
	)
}
