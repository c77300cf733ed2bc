package template

import "slices"

// Options is a partial Template. Nil fields keep the base value.
//
// Keys follow the camelCase names users write in override files:
//
//	colors: ["#ff0000", "#00ff00"]
//	branch: {lineWidth: 6, spacing: 40, mergeStyle: straight}
//	commit:
//	  spacingY: 50
//	  dot: {size: 8, strokeColor: "#000", strokeWidth: 2}
//	  message: {display: false}
//	arrow: {height: 10, width: 10}
//	orientation: horizontal
//	mode: compact
type Options struct {
	Colors      []string       `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
	Branch      *BranchOptions `json:"branch,omitempty" yaml:"branch,omitempty" toml:"branch,omitempty"`
	Commit      *CommitOptions `json:"commit,omitempty" yaml:"commit,omitempty" toml:"commit,omitempty"`
	Arrow       *ArrowOptions  `json:"arrow,omitempty" yaml:"arrow,omitempty" toml:"arrow,omitempty"`
	Tag         *TagOptions    `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`
	Orientation *Orientation   `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	Mode        *Mode          `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
}

type BranchOptions struct {
	Color      *string     `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	LineWidth  *float64    `json:"lineWidth,omitempty" yaml:"lineWidth,omitempty" toml:"lineWidth,omitempty"`
	Spacing    *float64    `json:"spacing,omitempty" yaml:"spacing,omitempty" toml:"spacing,omitempty"`
	MergeStyle *MergeStyle `json:"mergeStyle,omitempty" yaml:"mergeStyle,omitempty" toml:"mergeStyle,omitempty"`
	LabelFont  *string     `json:"labelFont,omitempty" yaml:"labelFont,omitempty" toml:"labelFont,omitempty"`
}

type CommitOptions struct {
	SpacingY *float64        `json:"spacingY,omitempty" yaml:"spacingY,omitempty" toml:"spacingY,omitempty"`
	Color    *string         `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Dot      *DotOptions     `json:"dot,omitempty" yaml:"dot,omitempty" toml:"dot,omitempty"`
	Message  *MessageOptions `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

type DotOptions struct {
	Size        *float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	StrokeColor *string  `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty" toml:"strokeColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty" toml:"strokeWidth,omitempty"`
}

type MessageOptions struct {
	Color         *string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Font          *string `json:"font,omitempty" yaml:"font,omitempty" toml:"font,omitempty"`
	Display       *bool   `json:"display,omitempty" yaml:"display,omitempty" toml:"display,omitempty"`
	DisplayHash   *bool   `json:"displayHash,omitempty" yaml:"displayHash,omitempty" toml:"displayHash,omitempty"`
	DisplayAuthor *bool   `json:"displayAuthor,omitempty" yaml:"displayAuthor,omitempty" toml:"displayAuthor,omitempty"`
}

type ArrowOptions struct {
	Height *float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
}

type TagOptions struct {
	Color   *string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	BgColor *string `json:"bgColor,omitempty" yaml:"bgColor,omitempty" toml:"bgColor,omitempty"`
	Font    *string `json:"font,omitempty" yaml:"font,omitempty" toml:"font,omitempty"`
}

// Merge returns a copy of t with every non-nil field of o applied.
func (t Template) Merge(o *Options) Template {
	t = t.Clone()
	if o != nil {
		if o.Colors != nil {
			t.Colors = slices.Clone(o.Colors)
		}
		if b := o.Branch; b != nil {
			set(&t.Branch.Color, b.Color)
			set(&t.Branch.LineWidth, b.LineWidth)
			set(&t.Branch.Spacing, b.Spacing)
			set(&t.Branch.MergeStyle, b.MergeStyle)
			set(&t.Branch.LabelFont, b.LabelFont)
		}
		if c := o.Commit; c != nil {
			set(&t.Commit.SpacingY, c.SpacingY)
			set(&t.Commit.Color, c.Color)
			if d := c.Dot; d != nil {
				set(&t.Commit.Dot.Size, d.Size)
				set(&t.Commit.Dot.StrokeColor, d.StrokeColor)
				set(&t.Commit.Dot.StrokeWidth, d.StrokeWidth)
			}
			if m := c.Message; m != nil {
				set(&t.Commit.Message.Color, m.Color)
				set(&t.Commit.Message.Font, m.Font)
				set(&t.Commit.Message.Display, m.Display)
				set(&t.Commit.Message.DisplayHash, m.DisplayHash)
				set(&t.Commit.Message.DisplayAuthor, m.DisplayAuthor)
			}
		}
		if a := o.Arrow; a != nil {
			set(&t.Arrow.Height, a.Height)
			set(&t.Arrow.Width, a.Width)
		}
		if tg := o.Tag; tg != nil {
			set(&t.Tag.Color, tg.Color)
			set(&t.Tag.BgColor, tg.BgColor)
			set(&t.Tag.Font, tg.Font)
		}
		set(&t.Orientation, o.Orientation)
		set(&t.Mode, o.Mode)
	}
	if t.Mode == Compact {
		t.Commit.Message.Display = false
	}
	return t
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Ptr returns a pointer to v. It keeps override literals short.
func Ptr[T any](v T) *T {
	return &v
}
