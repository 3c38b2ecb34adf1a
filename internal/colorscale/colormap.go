package colorscale

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aclements/go-moremath/vec"
	"github.com/lucasb-eyer/go-colorful"
)

// reversedSuffix marks the reversed variant of any named colour map.
const reversedSuffix = "_r"

// gradient is a colour map defined by evenly spaced control points.
type gradient []colorful.Color

// at returns the colour at position t in [0, 1], blending neighbouring
// control points in RGB.
func (g gradient) at(t float64) colorful.Color {
	switch {
	case t <= 0:
		return g[0]
	case t >= 1:
		return g[len(g)-1]
	}
	x := t * float64(len(g)-1)
	i := int(x)
	if i >= len(g)-1 {
		return g[len(g)-1]
	}
	return g[i].BlendRgb(g[i+1], x-float64(i)).Clamped()
}

func (g gradient) reversed() gradient {
	r := slices.Clone(g)
	slices.Reverse(r)
	return r
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("colorscale: bad control point %q: %v", s, err))
	}
	return c
}

func newGradient(hex ...string) gradient {
	g := make(gradient, len(hex))
	for i, h := range hex {
		g[i] = mustParseHex(h)
	}
	return g
}

// Matplotlib perceptual maps and ColorBrewer sequential/diverging schemes.
var colourMaps = map[string]gradient{
	"viridis": newGradient("#440154", "#482374", "#404387", "#345e8d", "#29788e", "#20908c", "#22a784", "#44be70", "#79d151", "#bdde26", "#fde725"),
	"plasma":  newGradient("#0d0887", "#4b03a1", "#7d03a8", "#a82296", "#cb4679", "#e56b5d", "#f89441", "#fdc328", "#f0f921"),
	"inferno": newGradient("#000004", "#280b54", "#65156e", "#9f2a63", "#d44842", "#f57d15", "#fac127", "#fcffa4"),
	"magma":   newGradient("#000004", "#1c1044", "#4f127b", "#812581", "#b5367a", "#e55064", "#fb8761", "#fec287", "#fcfdbf"),
	"cividis": newGradient("#00204d", "#00336f", "#39486b", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#ffea46"),

	"Blues":  newGradient("#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"),
	"Reds":   newGradient("#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"),
	"YlGnBu": newGradient("#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494", "#081d58"),

	"RdBu":     newGradient("#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061"),
	"BrBG":     newGradient("#543005", "#8c510a", "#bf812d", "#dfc27d", "#f6e8c3", "#f5f5f5", "#c7eae5", "#80cdc1", "#35978f", "#01665e", "#003c30"),
	"PiYG":     newGradient("#8e0152", "#c51b7d", "#de77ae", "#f1b6da", "#fde0ef", "#f7f7f7", "#e6f5d0", "#b8e186", "#7fbc41", "#4d9221", "#276419"),
	"Spectral": newGradient("#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2"),
}

// ColourMapNames returns the base names of all colour maps, sorted. Each
// also exists in reversed form with the "_r" suffix.
func ColourMapNames() []string {
	names := make([]string, 0, len(colourMaps))
	for name := range colourMaps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasColourMap reports whether name, optionally suffixed with "_r", is defined.
func HasColourMap(name string) bool {
	_, err := lookupColourMap(name)
	return err == nil
}

func lookupColourMap(name string) (gradient, error) {
	if g, ok := colourMaps[name]; ok {
		return g, nil
	}
	if base, ok := strings.CutSuffix(name, reversedSuffix); ok {
		if g, ok := colourMaps[base]; ok {
			return g.reversed(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColourMap, name)
}

// Colors samples n evenly spaced colours, first to last inclusive, from the
// named colour map and returns them as "#rrggbb" strings.
func Colors(name string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: colour count must be positive, got %d", ErrConfiguration, n)
	}
	g, err := lookupColourMap(name)
	if err != nil {
		return nil, err
	}
	colours := make([]string, n)
	for i, t := range vec.Linspace(0, 1, n) {
		colours[i] = g.at(t).Hex()
	}
	return colours, nil
}
