package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSizes(t *testing.T) {
	for _, g := range Grids {
		assert.Zerof(t, g.TotalCards()%2, "%s must hold an even number of cards", g.Name)
		assert.Equal(t, g.TotalCards()/2, g.Pairs())
	}

	g, ok := GridByName("4x3")
	require.True(t, ok)
	assert.Equal(t, 12, g.TotalCards())
	assert.Equal(t, 6, g.Pairs())

	_, ok = GridByName("7x7")
	assert.False(t, ok)
}

func TestThemeAssetKeys(t *testing.T) {
	th := NewTheme("Ocean Life", 18)
	assert.Equal(t, "ocean-life", th.AssetKey)
	assert.Equal(t, "ocean-life-00", th.ImageKey(0))
	assert.Equal(t, "ocean-life-17", th.ImageKey(17))
	assert.Equal(t, "ocean-life-00", th.ImageKey(18), "images wrap when a board needs more pairs")

	found, ok := ThemeByName("ocean life")
	require.True(t, ok, "lookup is slug-normalized")
	assert.Equal(t, th.AssetKey, found.AssetKey)
}

func TestAchievementCatalog(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range AchievementCatalog {
		assert.NotEmpty(t, a.Name)
		assert.False(t, seen[a.Code], "codes are unique")
		seen[a.Code] = true
	}

	at, ok := AchievementByCode(AchFirstWin)
	require.True(t, ok)
	assert.Equal(t, "First Victory", at.Name)

	_, ok = AchievementByCode("NOPE")
	assert.False(t, ok)
}
