package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestResolveStyle(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := ResolveStyle(Theme{})
		assert.Equal(t, EffectiveStyle{
			PrimaryColor:    "#dc2626",
			ButtonColor:     "#ef4444",
			BackgroundColor: "#ffffff",
			TextColor:       "#000000",
			BorderRadiusPx:  8,
			FontFamily:      "Inter, sans-serif",
		}, s)
	})

	t.Run("ClampRadius", func(t *testing.T) {
		assert.Equal(t, 20, ResolveStyle(Theme{BorderRadiusPx: intPtr(25)}).BorderRadiusPx)
		assert.Equal(t, 0, ResolveStyle(Theme{BorderRadiusPx: intPtr(-1)}).BorderRadiusPx)
		assert.Equal(t, 0, ResolveStyle(Theme{BorderRadiusPx: intPtr(0)}).BorderRadiusPx)
	})

	t.Run("KeepsValidColors", func(t *testing.T) {
		s := ResolveStyle(Theme{
			PrimaryColor:    "#16a34a",
			ButtonColor:     "#FFF",
			BackgroundColor: "AliceBlue",
			TextColor:       "#11223344",
		})
		assert.Equal(t, "#16a34a", s.PrimaryColor)
		assert.Equal(t, "#FFF", s.ButtonColor)
		assert.Equal(t, "AliceBlue", s.BackgroundColor)
		assert.Equal(t, "#11223344", s.TextColor)
	})

	t.Run("InvalidColorsFallBack", func(t *testing.T) {
		s := ResolveStyle(Theme{
			PrimaryColor:    "#12",
			ButtonColor:     "reddish",
			BackgroundColor: "   ",
			TextColor:       "#gggggg",
		})
		assert.Equal(t, DefaultPrimaryColor, s.PrimaryColor)
		assert.Equal(t, DefaultButtonColor, s.ButtonColor)
		assert.Equal(t, DefaultBackgroundColor, s.BackgroundColor)
		assert.Equal(t, DefaultTextColor, s.TextColor)
	})

	t.Run("FontPassThrough", func(t *testing.T) {
		assert.Equal(t, "Comic Sans MS", ResolveStyle(Theme{FontFamily: "Comic Sans MS"}).FontFamily)
		assert.False(t, IsKnownFont("Comic Sans MS"))
		assert.True(t, IsKnownFont("Poppins, sans-serif"))
	})
}

func TestFindColorPreset(t *testing.T) {
	p, ok := FindColorPreset("Verde")
	assert.True(t, ok)
	assert.Equal(t, "#16a34a", p.Primary)
	assert.Equal(t, "#22c55e", p.Button)

	_, ok = FindColorPreset("")
	assert.False(t, ok)
}
