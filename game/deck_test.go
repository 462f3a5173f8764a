package game

import (
	"math/rand"
	"testing"

	"memory-arcade-core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck_PairInvariant(t *testing.T) {
	for _, grid := range models.Grids {
		t.Run(grid.Name, func(t *testing.T) {
			deck := NewDeck(models.Themes[0], grid, nil)

			require.Len(t, deck, grid.TotalCards())
			assert.Zero(t, len(deck)%2, "deck size must be even")

			counts := map[int]int{}
			for i, c := range deck {
				assert.Equal(t, i, c.ID, "card id is its position")
				assert.False(t, c.Flipped)
				assert.False(t, c.Matched)
				counts[c.PairID]++
			}
			require.Len(t, counts, grid.Pairs())
			for pairID, n := range counts {
				assert.Equalf(t, 2, n, "pair %d must appear exactly twice", pairID)
			}
		})
	}
}

func TestNewDeck_ReusesImagesWhenThemeIsSmall(t *testing.T) {
	theme := models.NewTheme("Tiny Theme", 4)
	deck := NewDeck(theme, models.Grid6x6, nil) // 18 pairs from 4 images

	images := map[string]bool{}
	for _, c := range deck {
		images[c.ImageKey] = true
	}
	assert.Len(t, images, 4, "only the theme's distinct images are used")

	// Reused images must still be distinct pairs.
	byPair := map[int]string{}
	for _, c := range deck {
		if prev, ok := byPair[c.PairID]; ok {
			assert.Equal(t, prev, c.ImageKey, "both cards of a pair share an image")
		}
		byPair[c.PairID] = c.ImageKey
	}
	assert.Len(t, byPair, 18)
}

func TestNewDeck_SeededShuffleIsDeterministic(t *testing.T) {
	a := NewDeck(models.Themes[0], models.Grid4x4, rand.New(rand.NewSource(7)))
	b := NewDeck(models.Themes[0], models.Grid4x4, rand.New(rand.NewSource(7)))
	require.Equal(t, a, b)

	c := NewDeck(models.Themes[0], models.Grid4x4, rand.New(rand.NewSource(8)))
	assert.NotEqual(t, a, c, "different seeds should (practically always) differ")
}
