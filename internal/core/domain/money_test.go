package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceFormatter(t *testing.T) {
	f := DefaultPriceFormatter()

	got := f.Format(decimal.RequireFromString("1234.5"))
	assert.Contains(t, got, "MZN")
	assert.Contains(t, got, "1.234,50")

	got = f.Format(decimal.RequireFromString("99.999"))
	assert.Contains(t, got, "100,00")

	got = NewPriceFormatter("not a locale", "").Format(decimal.NewFromInt(7))
	assert.Contains(t, got, "MZN")
	assert.Contains(t, got, "7,00")
}
