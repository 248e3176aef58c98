package schema

import "time"

const CheckoutSchemaTextV1 = `{
	"type": "record",
	"namespace": "checkouts",
	"name": "checkout_saved",
	"fields": [
		{"name": "checkout_id", "type": "string"},
		{"name": "owner_id", "type": "string"},
		{"name": "selected_product_id", "type": "string"},
		{"name": "title", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "custom_message", "type": "string"},
		{"name": "collect_phone", "type": "boolean"},
		{"name": "collect_email", "type": "boolean"},
		{"name": "upsells", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "offer",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "title", "type": "string"},
					{"name": "price", "type": "string"}
				]
			}
		}},
		{"name": "downsells", "type": {"type": "array", "items": "offer"}},
		{"name": "theme", "type": {
			"type": "record",
			"name": "theme",
			"fields": [
				{"name": "primary_color", "type": "string"},
				{"name": "button_color", "type": "string"},
				{"name": "background_color", "type": "string"},
				{"name": "text_color", "type": "string"},
				{"name": "border_radius_px", "type": ["null", "int"], "default": null},
				{"name": "font_family", "type": "string"}
			]
		}},
		{"name": "saved_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	CheckoutV1 struct {
		CheckoutID        string    `avro:"checkout_id"`
		OwnerID           string    `avro:"owner_id"`
		SelectedProductID string    `avro:"selected_product_id"`
		Title             string    `avro:"title"`
		Description       string    `avro:"description"`
		CustomMessage     string    `avro:"custom_message"`
		CollectPhone      bool      `avro:"collect_phone"`
		CollectEmail      bool      `avro:"collect_email"`
		Upsells           []OfferV1 `avro:"upsells"`
		Downsells         []OfferV1 `avro:"downsells"`
		Theme             ThemeV1   `avro:"theme"`
		SavedAt           time.Time `avro:"saved_at"`
	}

	// OfferV1 carries the price as a decimal string.
	OfferV1 struct {
		ProductID string `avro:"product_id"`
		Title     string `avro:"title"`
		Price     string `avro:"price"`
	}

	ThemeV1 struct {
		PrimaryColor    string `avro:"primary_color"`
		ButtonColor     string `avro:"button_color"`
		BackgroundColor string `avro:"background_color"`
		TextColor       string `avro:"text_color"`
		BorderRadiusPx  *int   `avro:"border_radius_px"`
		FontFamily      string `avro:"font_family"`
	}
)
