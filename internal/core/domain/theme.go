package domain

import (
	"regexp"
	"strings"

	"golang.org/x/image/colornames"
)

const (
	DefaultPrimaryColor    = "#dc2626"
	DefaultButtonColor     = "#ef4444"
	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#000000"
	DefaultBorderRadiusPx  = 8
	DefaultFontFamily      = "Inter, sans-serif"

	MinBorderRadiusPx = 0
	MaxBorderRadiusPx = 20
)

// A Theme holds the visual settings as the merchant entered them.
//
// Empty strings and a nil radius mean "unset".
type Theme struct {
	PrimaryColor    string
	ButtonColor     string
	BackgroundColor string
	TextColor       string
	BorderRadiusPx  *int
	FontFamily      string
}

func (t Theme) clone() Theme {
	if t.BorderRadiusPx != nil {
		r := *t.BorderRadiusPx
		t.BorderRadiusPx = &r
	}
	return t
}

// An EffectiveStyle is a fully resolved theme, every field is set.
type EffectiveStyle struct {
	PrimaryColor    string
	ButtonColor     string
	BackgroundColor string
	TextColor       string
	BorderRadiusPx  int
	FontFamily      string
}

// ResolveStyle fills unset or unusable theme values with defaults.
// It never fails.
func ResolveStyle(t Theme) EffectiveStyle {
	s := EffectiveStyle{
		PrimaryColor:    resolveColor(t.PrimaryColor, DefaultPrimaryColor),
		ButtonColor:     resolveColor(t.ButtonColor, DefaultButtonColor),
		BackgroundColor: resolveColor(t.BackgroundColor, DefaultBackgroundColor),
		TextColor:       resolveColor(t.TextColor, DefaultTextColor),
		BorderRadiusPx:  DefaultBorderRadiusPx,
		FontFamily:      DefaultFontFamily,
	}
	if t.BorderRadiusPx != nil {
		s.BorderRadiusPx = ClampBorderRadius(*t.BorderRadiusPx)
	}
	if font := strings.TrimSpace(t.FontFamily); font != "" {
		s.FontFamily = font
	}
	return s
}

func ClampBorderRadius(px int) int {
	return min(max(px, MinBorderRadiusPx), MaxBorderRadiusPx)
}

var hexColorRe = regexp.MustCompile(
	`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`,
)

// IsColor reports whether v is a hex color or a CSS named color.
func IsColor(v string) bool {
	if hexColorRe.MatchString(v) {
		return true
	}
	_, ok := colornames.Map[strings.ToLower(v)]
	return ok
}

func resolveColor(v, fallback string) string {
	v = strings.TrimSpace(v)
	if !IsColor(v) {
		return fallback
	}
	return v
}

type ColorPreset struct {
	Name    string
	Primary string
	Button  string
}

var ColorPresets = []ColorPreset{
	{Name: "Vermelho", Primary: "#dc2626", Button: "#ef4444"},
	{Name: "Verde", Primary: "#16a34a", Button: "#22c55e"},
	{Name: "Azul", Primary: "#2563eb", Button: "#3b82f6"},
	{Name: "Roxo", Primary: "#7c3aed", Button: "#8b5cf6"},
	{Name: "Laranja", Primary: "#ea580c", Button: "#f97316"},
}

func FindColorPreset(name string) (ColorPreset, bool) {
	for _, p := range ColorPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ColorPreset{}, false
}

type FontOption struct {
	Name  string
	Value string
}

// FontOptions are offered by the editor. Any other family passes through.
var FontOptions = []FontOption{
	{Name: "Inter", Value: "Inter, sans-serif"},
	{Name: "Roboto", Value: "Roboto, sans-serif"},
	{Name: "Poppins", Value: "Poppins, sans-serif"},
	{Name: "Montserrat", Value: "Montserrat, sans-serif"},
}

func IsKnownFont(family string) bool {
	for _, f := range FontOptions {
		if f.Value == family {
			return true
		}
	}
	return false
}
