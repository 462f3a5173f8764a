package game

import (
	"math/rand"
	"time"

	"memory-arcade-core/models"
)

// Card is one face-down tile in a session. The ID is the card's position in
// the deal and is stable for the session's lifetime; exactly two cards share
// each PairID. A card is never matched while unflipped.
type Card struct {
	ID       int    `json:"id"`
	PairID   int    `json:"pair_id"`
	ImageKey string `json:"image_key"`
	Flipped  bool   `json:"flipped"`
	Matched  bool   `json:"matched"`
}

// NewDeck builds a shuffled paired deck for a theme and grid. Themes with
// fewer distinct images than the board needs reuse images across pairs; the
// PairID, not the image, is what match comparison uses, so duplicate images
// stay distinct pairs.
func NewDeck(theme models.Theme, grid models.GridSize, rng *rand.Rand) []Card {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pairs := grid.Pairs()
	cards := make([]Card, 0, grid.TotalCards())
	for p := 0; p < pairs; p++ {
		img := theme.ImageKey(p)
		cards = append(cards,
			Card{PairID: p, ImageKey: img},
			Card{PairID: p, ImageKey: img},
		)
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	for i := range cards {
		cards[i].ID = i
	}
	return cards
}
