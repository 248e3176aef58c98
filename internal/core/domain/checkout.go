package domain

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

type Field string

const (
	FieldTitle         Field = "title"
	FieldDescription   Field = "description"
	FieldCustomMessage Field = "customMessage"
	FieldCollectPhone  Field = "collectPhone"
	FieldCollectEmail  Field = "collectEmail"
)

type ThemeField string

const (
	ThemePrimaryColor    ThemeField = "primaryColor"
	ThemeButtonColor     ThemeField = "buttonColor"
	ThemeBackgroundColor ThemeField = "backgroundColor"
	ThemeTextColor       ThemeField = "textColor"
	ThemeBorderRadiusPx  ThemeField = "borderRadiusPx"
	ThemeFontFamily      ThemeField = "fontFamily"
)

// A CheckoutConfiguration is the state of one checkout page being edited.
//
// An empty SelectedProductID means no product is chosen.
type CheckoutConfiguration struct {
	CheckoutID        string
	OwnerID           string
	SelectedProductID string
	Title             string
	Description       string
	CustomMessage     string
	CollectPhone      bool
	CollectEmail      bool
	Upsells           []Product
	Downsells         []Product
	Theme             Theme
}

func (c CheckoutConfiguration) HasSelection() bool {
	return c.SelectedProductID != ""
}

// Clone returns a deep copy sharing no mutable state with c.
func (c CheckoutConfiguration) Clone() CheckoutConfiguration {
	c.Upsells = copyProducts(c.Upsells)
	c.Downsells = copyProducts(c.Downsells)
	c.Theme = c.Theme.clone()
	return c
}

// A ConfigStore owns one CheckoutConfiguration and keeps its invariants
// after every mutation:
//   - upsells and downsells are disjoint and never contain the selection;
//   - upsells are priced strictly above the selection, downsells strictly below;
//   - no offer list holds a product twice;
//   - the border radius stays within [MinBorderRadiusPx, MaxBorderRadiusPx].
//
// A ConfigStore has a single writer and is not safe for concurrent use.
type ConfigStore struct {
	cfg      CheckoutConfiguration
	selected *Product
}

func NewConfigStore(checkoutID, ownerID string) *ConfigStore {
	return &ConfigStore{
		cfg: CheckoutConfiguration{
			CheckoutID:   checkoutID,
			OwnerID:      ownerID,
			CollectPhone: true,
			CollectEmail: false,
		},
	}
}

// Selected returns the selected product, nil when nothing is selected.
func (s *ConfigStore) Selected() *Product {
	if s.selected == nil {
		return nil
	}
	p := *s.selected
	return &p
}

// SelectProduct makes p the base product. Offers that are no longer on the
// right side of the new price are dropped and returned.
func (s *ConfigStore) SelectProduct(p Product) (dropped []Product) {
	s.selected = &p
	s.cfg.SelectedProductID = p.ProductID

	var droppedUps, droppedDowns []Product
	s.cfg.Upsells, droppedUps = keepEligible(s.cfg.Upsells, p, isUpsellPrice)
	s.cfg.Downsells, droppedDowns = keepEligible(s.cfg.Downsells, p, isDownsellPrice)
	return append(droppedUps, droppedDowns...)
}

// ClearSelection unselects the product. Offers cannot be interpreted
// without a base price, so they are dropped too.
func (s *ConfigStore) ClearSelection() {
	s.selected = nil
	s.cfg.SelectedProductID = ""
	s.cfg.Upsells = nil
	s.cfg.Downsells = nil
}

func (s *ConfigStore) AddUpsell(p Product) error {
	if err := s.checkOffer(Upsell, p, isUpsellPrice); err != nil {
		return err
	}
	s.cfg.Upsells = append(s.cfg.Upsells, p)
	return nil
}

func (s *ConfigStore) AddDownsell(p Product) error {
	if err := s.checkOffer(Downsell, p, isDownsellPrice); err != nil {
		return err
	}
	s.cfg.Downsells = append(s.cfg.Downsells, p)
	return nil
}

func (s *ConfigStore) checkOffer(kind OfferKind, p Product, rule priceRule) error {
	switch {
	case s.selected == nil:
		return invalidOffer(kind, p.ProductID, "no product selected")
	case p.ProductID == s.selected.ProductID:
		return invalidOffer(kind, p.ProductID, "product is the selected product")
	case containsProduct(s.cfg.Upsells, p.ProductID):
		return invalidOffer(kind, p.ProductID, "product is already an upsell")
	case containsProduct(s.cfg.Downsells, p.ProductID):
		return invalidOffer(kind, p.ProductID, "product is already a downsell")
	case !rule(p, *s.selected):
		if kind == Upsell {
			return invalidOffer(kind, p.ProductID,
				fmt.Sprintf("price %s is not greater than %s",
					p.Price.StringFixed(2), s.selected.Price.StringFixed(2)))
		}
		return invalidOffer(kind, p.ProductID,
			fmt.Sprintf("price %s is not less than %s",
				p.Price.StringFixed(2), s.selected.Price.StringFixed(2)))
	}
	return nil
}

// RemoveUpsell is a no-op when the product is not an upsell.
func (s *ConfigStore) RemoveUpsell(productID string) {
	s.cfg.Upsells = removeProduct(s.cfg.Upsells, productID)
}

// RemoveDownsell is a no-op when the product is not a downsell.
func (s *ConfigStore) RemoveDownsell(productID string) {
	s.cfg.Downsells = removeProduct(s.cfg.Downsells, productID)
}

func removeProduct(ps []Product, productID string) []Product {
	out := ps[:0:0]
	for _, p := range ps {
		if p.ProductID != productID {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SetField updates one copy or collection field. Values are coerced to the
// field type; nothing else is validated.
func (s *ConfigStore) SetField(name Field, value any) error {
	const op = "ConfigStore.SetField"

	switch name {
	case FieldTitle, FieldDescription, FieldCustomMessage:
		v, err := toText(value)
		if err != nil {
			return fmt.Errorf("%s: %s: %w: %w", op, name, ErrInvalidFieldValue, err)
		}
		switch name {
		case FieldTitle:
			s.cfg.Title = v
		case FieldDescription:
			s.cfg.Description = v
		default:
			s.cfg.CustomMessage = v
		}
	case FieldCollectPhone, FieldCollectEmail:
		v, err := toFlag(value)
		if err != nil {
			return fmt.Errorf("%s: %s: %w: %w", op, name, ErrInvalidFieldValue, err)
		}
		if name == FieldCollectPhone {
			s.cfg.CollectPhone = v
		} else {
			s.cfg.CollectEmail = v
		}
	default:
		return fmt.Errorf("%s: %q: %w", op, name, ErrUnknownField)
	}
	return nil
}

// SetThemeField updates one theme field. Colors are stored as given, the
// border radius is clamped into range.
func (s *ConfigStore) SetThemeField(name ThemeField, value any) error {
	const op = "ConfigStore.SetThemeField"

	switch name {
	case ThemePrimaryColor, ThemeButtonColor, ThemeBackgroundColor,
		ThemeTextColor, ThemeFontFamily, ThemeBorderRadiusPx:
	default:
		return fmt.Errorf("%s: %q: %w", op, name, ErrUnknownField)
	}

	if name == ThemeBorderRadiusPx {
		px, err := toPixels(value)
		if err != nil {
			return fmt.Errorf("%s: %s: %w: %w", op, name, ErrInvalidFieldValue, err)
		}
		px = ClampBorderRadius(px)
		s.cfg.Theme.BorderRadiusPx = &px
		return nil
	}

	v, err := toText(value)
	if err != nil {
		return fmt.Errorf("%s: %s: %w: %w", op, name, ErrInvalidFieldValue, err)
	}

	switch name {
	case ThemePrimaryColor:
		s.cfg.Theme.PrimaryColor = v
	case ThemeButtonColor:
		s.cfg.Theme.ButtonColor = v
	case ThemeBackgroundColor:
		s.cfg.Theme.BackgroundColor = v
	case ThemeTextColor:
		s.cfg.Theme.TextColor = v
	case ThemeFontFamily:
		s.cfg.Theme.FontFamily = v
	}
	return nil
}

type valueKind int

const (
	kindNil valueKind = iota
	kindBool
	kindInteger
	kindFloat
	kindOther
)

func kindOf(v any) valueKind {
	if v == nil {
		return kindNil
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return kindInteger
	case reflect.Float32, reflect.Float64:
		return kindFloat
	default:
		return kindOther
	}
}

func wrongType(v any) error {
	return fmt.Errorf("unexpected type %T", v)
}

// toText accepts strings only.
func toText(v any) (string, error) {
	if kindOf(v) != kindOther {
		return "", wrongType(v)
	}
	return cast.ToStringE(v)
}

// toFlag accepts booleans and boolean strings.
func toFlag(v any) (bool, error) {
	switch kindOf(v) {
	case kindNil, kindInteger, kindFloat:
		return false, wrongType(v)
	}
	return cast.ToBoolE(v)
}

// toPixels accepts integral numbers and integer strings.
func toPixels(v any) (int, error) {
	switch kindOf(v) {
	case kindNil, kindBool:
		return 0, wrongType(v)
	case kindFloat:
		f := cast.ToFloat64(v)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
	}
	return cast.ToIntE(v)
}

// ApplyPreset sets the primary and button colors from a named preset.
func (s *ConfigStore) ApplyPreset(name string) error {
	preset, ok := FindColorPreset(name)
	if !ok {
		return fmt.Errorf("ConfigStore.ApplyPreset: %q: %w", name, ErrUnknownPreset)
	}
	s.cfg.Theme.PrimaryColor = preset.Primary
	s.cfg.Theme.ButtonColor = preset.Button
	return nil
}

// EligibleOffers lists the catalog products that can still be attached.
func (s *ConfigStore) EligibleOffers(catalog []Product) (upsells, downsells []Product) {
	upsells = EligibleUpsells(catalog, s.selected, s.cfg.Upsells)
	downsells = EligibleDownsells(catalog, s.selected, s.cfg.Downsells)
	return upsells, downsells
}

func (s *ConfigStore) IsSaveReady() bool {
	return s.cfg.HasSelection() && strings.TrimSpace(s.cfg.Title) != ""
}

// Snapshot returns a copy of the configuration that later mutations
// do not affect.
func (s *ConfigStore) Snapshot() CheckoutConfiguration {
	return s.cfg.Clone()
}
