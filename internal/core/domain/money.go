package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "pt-BR"
	DefaultCurrency = "MZN"
)

// A PriceFormatter renders amounts for display only.
//
// Grouping follows the locale, the currency is printed as its ISO code.
type PriceFormatter struct {
	printer  *message.Printer
	currency string
}

func NewPriceFormatter(locale, currency string) PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return PriceFormatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

func DefaultPriceFormatter() PriceFormatter {
	return NewPriceFormatter(DefaultLocale, DefaultCurrency)
}

func (f PriceFormatter) Format(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	return f.currency + " " + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}
