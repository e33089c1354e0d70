package quill

import (
	"fmt"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
)

// Style holds the fill/stroke channels applied to newly created entities and
// mirrored onto the overlay. Colors are hex strings ("#000" or "#1a2b3c");
// the empty string or "none" means the channel is unset.
type Style struct {
	FillColor   string
	StrokeColor string
	StrokeWidth float64
}

// DefaultStyle is solid black fill with no stroke.
var DefaultStyle = Style{FillColor: "#000", StrokeColor: "none"}

// ParseColor parses a 3- or 6-digit hex color string. "none" and "" parse to
// a fully transparent color without error.
func ParseColor(s string) (Color, error) {
	if s == "" || s == "none" {
		return Color{}, nil
	}
	if len(s) == 4 && s[0] == '#' {
		// Expand #rgb to #rrggbb for the parser.
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("quill: parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// styleChannel maps one overlay style property to its value in a Style.
// Vendor-duplicated properties are plain extra rows in this table rather than
// repeated assignments at every call site.
type styleChannel struct {
	name  string
	value func(Style) string
}

var overlayStyleChannels = []styleChannel{
	{"color", func(s Style) string { return s.FillColor }},
	{"fill", func(s Style) string { return s.FillColor }},
	{"stroke", func(s Style) string { return s.StrokeColor }},
	{"stroke-width", func(s Style) string { return formatWidth(s.StrokeWidth) }},
	{"-webkit-text-fill-color", func(s Style) string { return s.FillColor }},
	{"-webkit-text-stroke-color", func(s Style) string { return s.StrokeColor }},
	{"-webkit-text-stroke-width", func(s Style) string { return formatWidth(s.StrokeWidth) }},
}

func formatWidth(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// applyStyle mirrors s onto the overlay, one channel at a time.
func applyStyle(o Overlay, s Style) {
	for _, ch := range overlayStyleChannels {
		o.SetChannel(ch.name, ch.value(s))
	}
}

// LoadStylePresets parses named style presets from a JSON document:
//
//	{"presets": {"note": {"fill": "#000", "stroke": "none", "strokeWidth": 0}}}
//
// Unknown keys are ignored; missing channels fall back to DefaultStyle.
func LoadStylePresets(data []byte) (map[string]Style, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("quill: parse style presets: invalid JSON")
	}
	presets := gjson.GetBytes(data, "presets")
	if !presets.Exists() {
		return nil, fmt.Errorf("quill: parse style presets: missing \"presets\" object")
	}
	out := make(map[string]Style)
	presets.ForEach(func(key, val gjson.Result) bool {
		s := DefaultStyle
		if fill := val.Get("fill"); fill.Exists() {
			s.FillColor = fill.String()
		}
		if stroke := val.Get("stroke"); stroke.Exists() {
			s.StrokeColor = stroke.String()
		}
		if w := val.Get("strokeWidth"); w.Exists() {
			s.StrokeWidth = w.Float()
		}
		out[key.String()] = s
		return true
	})
	return out, nil
}
