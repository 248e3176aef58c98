package httphandler

import "github.com/zambashope/moz-checkout/internal/core/domain"

func toProductDTO(p domain.Product, f domain.PriceFormatter) Product {
	return Product{
		ProductID:      p.ProductID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price.StringFixed(2),
		FormattedPrice: f.Format(p.Price),
		CoverImage:     p.CoverImage,
	}
}

// toProductsDTO never returns nil, so empty lists encode as [].
func toProductsDTO(ps []domain.Product, f domain.PriceFormatter) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p, f))
	}
	return out
}

func toCheckoutDTO(
	cfg domain.CheckoutConfiguration, ready bool, f domain.PriceFormatter,
) Checkout {
	return Checkout{
		CheckoutID:        cfg.CheckoutID,
		OwnerID:           cfg.OwnerID,
		SelectedProductID: cfg.SelectedProductID,
		Title:             cfg.Title,
		Description:       cfg.Description,
		CustomMessage:     cfg.CustomMessage,
		CollectPhone:      cfg.CollectPhone,
		CollectEmail:      cfg.CollectEmail,
		Upsells:           toProductsDTO(cfg.Upsells, f),
		Downsells:         toProductsDTO(cfg.Downsells, f),
		Theme:             Theme(cfg.Theme),
		SaveReady:         ready,
	}
}

func toPreviewDTO(m domain.PreviewModel, f domain.PriceFormatter) Preview {
	p := Preview{
		Product:        toProductDTO(m.Product, f),
		HasCoverImage:  m.Product.HasCoverImage(),
		Title:          m.Title,
		Description:    m.Description,
		CustomMessage:  m.CustomMessage,
		CollectPhone:   m.CollectPhone,
		CollectEmail:   m.CollectEmail,
		Total:          m.Total.StringFixed(2),
		FormattedTotal: m.FormattedTotal,
		Upsells:        make([]Product, 0, len(m.Upsells)),
		Downsells:      make([]Product, 0, len(m.Downsells)),
		Style:          toStyleDTO(m.Style),
	}
	p.Product.FormattedPrice = m.FormattedPrice
	for _, o := range m.Upsells {
		dto := toProductDTO(o.Product, f)
		dto.FormattedPrice = o.FormattedPrice
		p.Upsells = append(p.Upsells, dto)
	}
	for _, o := range m.Downsells {
		dto := toProductDTO(o.Product, f)
		dto.FormattedPrice = o.FormattedPrice
		p.Downsells = append(p.Downsells, dto)
	}
	return p
}

func toStyleDTO(s domain.EffectiveStyle) Style {
	return Style{
		PrimaryColor:    s.PrimaryColor,
		ButtonColor:     s.ButtonColor,
		BackgroundColor: s.BackgroundColor,
		TextColor:       s.TextColor,
		BorderRadiusPx:  s.BorderRadiusPx,
		FontFamily:      s.FontFamily,
		KnownFont:       domain.IsKnownFont(s.FontFamily),
	}
}
