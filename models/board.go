package models

import (
	"fmt"

	"github.com/gosimple/slug"
)

// GridSize describes the card layout of a board. TotalCards is always even.
type GridSize struct {
	Name string
	Cols int
	Rows int
}

func (g GridSize) TotalCards() int { return g.Cols * g.Rows }
func (g GridSize) Pairs() int      { return g.TotalCards() / 2 }

var (
	Grid4x3 = GridSize{Name: "4x3", Cols: 4, Rows: 3}
	Grid4x4 = GridSize{Name: "4x4", Cols: 4, Rows: 4}
	Grid5x4 = GridSize{Name: "5x4", Cols: 5, Rows: 4}
	Grid6x5 = GridSize{Name: "6x5", Cols: 6, Rows: 5}
	Grid6x6 = GridSize{Name: "6x6", Cols: 6, Rows: 6}
)

var Grids = []GridSize{Grid4x3, Grid4x4, Grid5x4, Grid6x5, Grid6x6}

// GridByName looks a grid up by its "CxR" name.
func GridByName(name string) (GridSize, bool) {
	for _, g := range Grids {
		if g.Name == name {
			return g, true
		}
	}
	return GridSize{}, false
}

// Difficulty tunes time limits and score parameters.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyConfig: scoring and clock parameters per difficulty.
type DifficultyConfig struct {
	TimeLimit     int // seconds; 0 = untimed (count-up clock)
	BaseMatchXP   int // base score per matched pair
	MaxTimeBonus  int // per-match bonus at t=0, decays to 0 at BonusWindow
	BonusWindow   int // seconds over which the per-match time bonus decays
	FastThreshold int // "3 stars" completion-time threshold, seconds
}

var DifficultySettings = map[Difficulty]DifficultyConfig{
	DifficultyEasy:   {TimeLimit: 0, BaseMatchXP: 100, MaxTimeBonus: 50, BonusWindow: 120, FastThreshold: 60},
	DifficultyMedium: {TimeLimit: 180, BaseMatchXP: 100, MaxTimeBonus: 75, BonusWindow: 90, FastThreshold: 45},
	DifficultyHard:   {TimeLimit: 120, BaseMatchXP: 100, MaxTimeBonus: 100, BonusWindow: 60, FastThreshold: 30},
}

// Theme is a static catalog entry. AssetKey is the slugged directory name the
// presentation layer resolves card images under; Images is how many distinct
// images the theme ships. Decks reuse images when a board needs more pairs
// than the theme has images.
type Theme struct {
	Name     string
	AssetKey string
	Images   int
}

// ImageKey returns the stable asset identifier for the theme's i-th image.
func (t Theme) ImageKey(i int) string {
	return fmt.Sprintf("%s-%02d", t.AssetKey, i%t.Images)
}

func NewTheme(name string, images int) Theme {
	return Theme{Name: name, AssetKey: slug.Make(name), Images: images}
}

var Themes = []Theme{
	NewTheme("Ocean Life", 18),
	NewTheme("Jungle Animals", 18),
	NewTheme("Outer Space", 15),
	NewTheme("Sweet Treats", 12),
	NewTheme("World Flags", 24),
}

// ThemeByName looks a theme up by display name or asset key.
func ThemeByName(name string) (Theme, bool) {
	key := slug.Make(name)
	for _, t := range Themes {
		if t.AssetKey == key {
			return t, true
		}
	}
	return Theme{}, false
}
