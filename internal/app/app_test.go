package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zambashope/moz-checkout/config"
	"github.com/zambashope/moz-checkout/internal/core/domain"
)

func TestCatalogFromConfig(t *testing.T) {
	ps, err := catalogFromConfig([]config.CatalogProduct{
		{ProductID: "1", Title: "Curso", Description: "Aulas", Price: "150.50",
			CoverImage: "c.png"},
		{ProductID: "2", Title: "Ebook", Description: "PDF", Price: "20"},
		{ProductID: "3", Title: "Brinde", Description: "Grátis", Price: "0"},
	})
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "150.50", ps[0].Price.StringFixed(2))
	assert.True(t, ps[0].HasCoverImage())
	assert.False(t, ps[1].HasCoverImage())
}

func TestCatalogFromConfigRejects(t *testing.T) {
	valid := config.CatalogProduct{
		ProductID: "1", Title: "Curso", Description: "Aulas", Price: "10",
	}

	tests := []struct {
		name    string
		modify  func(*config.CatalogProduct)
		invalid bool
	}{
		{"BadPrice", func(p *config.CatalogProduct) { p.Price = "abc" }, false},
		{"NegativePrice", func(p *config.CatalogProduct) { p.Price = "-1" }, true},
		{"TooPrecise", func(p *config.CatalogProduct) { p.Price = "9.999" }, true},
		{"EmptyTitle", func(p *config.CatalogProduct) { p.Title = " " }, true},
		{"EmptyDescription", func(p *config.CatalogProduct) { p.Description = "" }, true},
		{"EmptyID", func(p *config.CatalogProduct) { p.ProductID = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			_, err := catalogFromConfig([]config.CatalogProduct{p})
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, domain.ErrInvalidProduct)
			}
		})
	}

	t.Run("DuplicateID", func(t *testing.T) {
		_, err := catalogFromConfig([]config.CatalogProduct{valid, valid})
		assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	})

	t.Run("TrailingZerosAllowed", func(t *testing.T) {
		p := valid
		p.Price = "9.900"
		_, err := catalogFromConfig([]config.CatalogProduct{p})
		assert.NoError(t, err)
	})
}
