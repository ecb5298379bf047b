// Package palette maps category sets to colours.
//
// Palette lookup is a pure function of the palette name and the number of
// categories; it knows nothing about any particular renderer. Named palettes
// come from a small built-in table (tab10, tab20, and the gonum plotutil
// sets) and from ColorBrewer via gonum.org/v1/plot/palette/brewer. When
// there are more categories than colours the palette wraps around.
package palette

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotutil"

	"github.com/matzehuels/nafig/pkg/errors"
)

// Default is the palette used when none is configured.
const Default = "tab10"

var builtin = map[string][]string{
	"tab10": {
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	},
	"tab20": {
		"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
		"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
		"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
		"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
	},
}

var plotutilSets = map[string][]color.Color{
	"soft": plotutil.SoftColors,
	"dark": plotutil.DarkColors,
}

// brewer names are case-sensitive upstream; accept any case for the
// qualitative sets that make sense for categories.
var brewerNames = map[string]string{
	"accent":  "Accent",
	"dark2":   "Dark2",
	"paired":  "Paired",
	"pastel1": "Pastel1",
	"pastel2": "Pastel2",
	"set1":    "Set1",
	"set2":    "Set2",
	"set3":    "Set3",
}

// Swatch pairs a category with its colour.
type Swatch struct {
	Category string     `json:"category"`
	Color    color.RGBA `json:"-"`
	Hex      string     `json:"color"`
}

// Names lists the palettes that can be requested by name, sorted.
// Any other ColorBrewer palette name is accepted as well.
func Names() []string {
	var names []string
	for n := range builtin {
		names = append(names, n)
	}
	for n := range plotutilSets {
		names = append(names, n)
	}
	for n := range brewerNames {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Assign gives each category a colour from the named palette, in the order
// the categories are given.
func Assign(name string, categories []string) ([]Swatch, error) {
	colors, err := Colors(name, len(categories))
	if err != nil {
		return nil, err
	}
	out := make([]Swatch, len(categories))
	for i, c := range categories {
		out[i] = Swatch{Category: c, Color: colors[i], Hex: Hex(colors[i])}
	}
	return out, nil
}

// Colors returns n colours from the named palette.
func Colors(name string, n int) ([]color.RGBA, error) {
	base, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out := make([]color.RGBA, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out, nil
}

func lookup(name string) ([]color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}

	if hexes, ok := builtin[key]; ok {
		out := make([]color.RGBA, len(hexes))
		for i, h := range hexes {
			c, err := ParseColor(h)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "palette %s", key)
			}
			out[i] = c
		}
		return out, nil
	}

	if set, ok := plotutilSets[key]; ok {
		return toRGBA(set), nil
	}

	brewerName := name
	if canon, ok := brewerNames[key]; ok {
		brewerName = canon
	}
	if colors, ok := brewerColors(brewerName); ok {
		return colors, nil
	}
	return nil, errors.Invalid("unknown palette %q (known: %s)", name, strings.Join(Names(), ", "))
}

// brewerColors returns the largest variant of a ColorBrewer palette.
func brewerColors(name string) ([]color.RGBA, bool) {
	for size := 12; size >= 3; size-- {
		p, err := brewer.GetPalette(brewer.TypeAny, name, size)
		if err == nil {
			return toRGBA(p.Colors()), true
		}
	}
	return nil, false
}

func toRGBA(colors []color.Color) []color.RGBA {
	out := make([]color.RGBA, len(colors))
	for i, c := range colors {
		out[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return out
}

var named = map[string]string{
	"white":      "#ffffff",
	"black":      "#000000",
	"gray":       "#808080",
	"grey":       "#808080",
	"lightgray":  "#d3d3d3",
	"lightgrey":  "#d3d3d3",
	"whitesmoke": "#f5f5f5",
	"ivory":      "#fffff0",
	"red":        "#ff0000",
	"green":      "#008000",
	"blue":       "#0000ff",
	"navy":       "#000080",
}

// ParseColor parses a "#rrggbb" hex colour or one of a few common colour names.
// "none" and "transparent" yield a fully transparent colour.
func ParseColor(s string) (color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "none", "transparent":
		return color.RGBA{}, nil
	}
	if hex, ok := named[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return color.RGBA{}, errors.Invalid("invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
