package template

import (
	"maps"
	"slices"
)

// DefaultPreset is the preset used when no name, or an unknown name, is given.
const DefaultPreset = "metro"

const defaultFont = "normal 14pt Arial"

var presets = map[string]func() Template{
	"metro":      metro,
	"blackarrow": blackArrow,
}

func metro() Template {
	return Template{
		Name:   "metro",
		Colors: []string{"#979797", "#008fb5", "#f1c109"},
		Branch: BranchStyle{
			LineWidth:  10,
			Spacing:    50,
			MergeStyle: Bezier,
			LabelFont:  "normal 12pt Arial",
		},
		Commit: CommitStyle{
			SpacingY: 80,
			Dot:      DotStyle{Size: 14},
			Message: MessageStyle{
				Font:          defaultFont,
				Display:       true,
				DisplayHash:   true,
				DisplayAuthor: true,
			},
		},
		Tag:         TagStyle{Color: "#ffffff", BgColor: "#3a3a3a", Font: "normal 12pt Arial"},
		Orientation: Vertical,
		Mode:        Normal,
	}
}

func blackArrow() Template {
	return Template{
		Name:   "blackarrow",
		Colors: []string{"#6963FF", "#47E8D4", "#6BDB52", "#E84BA5", "#FFA657"},
		Branch: BranchStyle{
			LineWidth:  4,
			Spacing:    50,
			MergeStyle: Straight,
			LabelFont:  "normal 12pt Arial",
		},
		Commit: CommitStyle{
			SpacingY: 60,
			Dot:      DotStyle{Size: 12, StrokeColor: "#000000", StrokeWidth: 7},
			Message: MessageStyle{
				Font:          defaultFont,
				Display:       true,
				DisplayHash:   true,
				DisplayAuthor: true,
			},
		},
		Arrow:       ArrowStyle{Height: 16, Width: 16},
		Tag:         TagStyle{Color: "#000000", BgColor: "#ffffff", Font: "normal 12pt Arial"},
		Orientation: Vertical,
		Mode:        Normal,
	}
}

// Lookup returns a copy of the named preset.
func Lookup(name string) (Template, bool) {
	build, ok := presets[name]
	if !ok {
		return Template{}, false
	}
	return build(), true
}

// Names returns the preset names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Default returns a copy of the default preset.
func Default() Template {
	return presets[DefaultPreset]()
}

// Resolve returns the named preset merged with o. An unknown or empty name
// resolves to the default preset. A nil o leaves the preset unchanged apart
// from the compact-mode message rule.
func Resolve(name string, o *Options) Template {
	t, ok := Lookup(name)
	if !ok {
		t = Default()
	}
	return t.Merge(o)
}
