package httphandler

type (
	Product struct {
		ProductID      string `json:"product_id"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		Price          string `json:"price"`
		FormattedPrice string `json:"formatted_price"`
		CoverImage     string `json:"cover_image,omitempty"`
	}

	Theme struct {
		PrimaryColor    string `json:"primary_color,omitempty"`
		ButtonColor     string `json:"button_color,omitempty"`
		BackgroundColor string `json:"background_color,omitempty"`
		TextColor       string `json:"text_color,omitempty"`
		BorderRadiusPx  *int   `json:"border_radius_px,omitempty"`
		FontFamily      string `json:"font_family,omitempty"`
	}

	Style struct {
		PrimaryColor    string `json:"primary_color"`
		ButtonColor     string `json:"button_color"`
		BackgroundColor string `json:"background_color"`
		TextColor       string `json:"text_color"`
		BorderRadiusPx  int    `json:"border_radius_px"`
		FontFamily      string `json:"font_family"`
		KnownFont       bool   `json:"known_font"`
	}

	Checkout struct {
		CheckoutID        string    `json:"checkout_id"`
		OwnerID           string    `json:"owner_id"`
		SelectedProductID string    `json:"selected_product_id,omitempty"`
		Title             string    `json:"title"`
		Description       string    `json:"description"`
		CustomMessage     string    `json:"custom_message"`
		CollectPhone      bool      `json:"collect_phone"`
		CollectEmail      bool      `json:"collect_email"`
		Upsells           []Product `json:"upsells"`
		Downsells         []Product `json:"downsells"`
		Theme             Theme     `json:"theme"`
		SaveReady         bool      `json:"save_ready"`
	}

	Offers struct {
		Upsells   []Product `json:"upsells"`
		Downsells []Product `json:"downsells"`
	}

	Preview struct {
		Product        Product   `json:"product"`
		HasCoverImage  bool      `json:"has_cover_image"`
		Title          string    `json:"title"`
		Description    string    `json:"description"`
		CustomMessage  string    `json:"custom_message,omitempty"`
		CollectPhone   bool      `json:"collect_phone"`
		CollectEmail   bool      `json:"collect_email"`
		Total          string    `json:"total"`
		FormattedTotal string    `json:"formatted_total"`
		Upsells        []Product `json:"upsells"`
		Downsells      []Product `json:"downsells"`
		Style          Style     `json:"style"`
	}

	ThemeOptions struct {
		Presets []ColorPreset `json:"presets"`
		Fonts   []FontOption  `json:"fonts"`
	}

	ColorPreset struct {
		Name    string `json:"name"`
		Primary string `json:"primary"`
		Button  string `json:"button"`
	}

	FontOption struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
)

// Requests.
type (
	StartCheckoutRequest struct {
		MerchantID string `json:"merchant_id"`
	}

	StartCheckoutResponse struct {
		CheckoutID string `json:"checkout_id"`
	}

	ProductRequest struct {
		ProductID string `json:"product_id"`
	}

	FieldRequest struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	}

	PresetRequest struct {
		Name string `json:"name"`
	}
)

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
