package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// A PreviewModel is everything a display surface needs to render the
// checkout page. It is read-only.
type PreviewModel struct {
	Product        Product
	Title          string
	Description    string
	CustomMessage  string
	CollectPhone   bool
	CollectEmail   bool
	FormattedPrice string
	Total          decimal.Decimal
	FormattedTotal string
	Upsells        []PreviewOffer
	Downsells      []PreviewOffer
	Style          EffectiveStyle
}

type PreviewOffer struct {
	Product        Product
	FormattedPrice string
}

type PreviewBuilder struct {
	formatter PriceFormatter
}

func NewPreviewBuilder(f PriceFormatter) PreviewBuilder {
	return PreviewBuilder{formatter: f}
}

// BuildPreview builds a preview with the default price formatter.
func BuildPreview(cfg CheckoutConfiguration, catalog []Product) (PreviewModel, bool) {
	return NewPreviewBuilder(DefaultPriceFormatter()).Build(cfg, catalog)
}

// Build returns false when the selected product is not in the catalog,
// meaning there is nothing to preview.
//
// Empty title and description fall back to the product's own. Offers are
// shown as separate add-ons and are not added to the total.
func (b PreviewBuilder) Build(
	cfg CheckoutConfiguration, catalog []Product,
) (PreviewModel, bool) {
	if !cfg.HasSelection() {
		return PreviewModel{}, false
	}
	product, ok := FindProduct(catalog, cfg.SelectedProductID)
	if !ok {
		return PreviewModel{}, false
	}

	m := PreviewModel{
		Product:        product,
		Title:          fallback(cfg.Title, product.Title),
		Description:    fallback(cfg.Description, product.Description),
		CustomMessage:  strings.TrimSpace(cfg.CustomMessage),
		CollectPhone:   cfg.CollectPhone,
		CollectEmail:   cfg.CollectEmail,
		FormattedPrice: b.formatter.Format(product.Price),
		Total:          product.Price,
		FormattedTotal: b.formatter.Format(product.Price),
		Upsells:        b.offers(cfg.Upsells),
		Downsells:      b.offers(cfg.Downsells),
		Style:          ResolveStyle(cfg.Theme),
	}
	return m, true
}

func (b PreviewBuilder) offers(ps []Product) []PreviewOffer {
	out := make([]PreviewOffer, len(ps))
	for i, p := range ps {
		out[i] = PreviewOffer{Product: p, FormattedPrice: b.formatter.Format(p.Price)}
	}
	return out
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
