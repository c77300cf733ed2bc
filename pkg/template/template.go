package template

import (
	"slices"

	"github.com/matzehuels/commitgraph/pkg/errors"
)

// Orientation selects which screen axis carries the commit sequence.
type Orientation string

const (
	// Vertical lays commits out top to bottom and branches left to right.
	Vertical Orientation = "vertical"
	// Horizontal lays commits out left to right and branches top to bottom.
	Horizontal Orientation = "horizontal"
)

// Mode selects the row density.
type Mode string

const (
	// Normal gives every commit its own row.
	Normal Mode = "normal"
	// Compact lets a commit share the row of a concurrent commit on
	// another branch and hides commit messages.
	Compact Mode = "compact"
)

// MergeStyle selects how links between lanes are drawn.
type MergeStyle string

const (
	Bezier   MergeStyle = "bezier"
	Straight MergeStyle = "straight"
)

// Template is a fully resolved style configuration.
//
// Templates are values: [Resolve], [Lookup] and [Template.Merge] return
// independent copies, so mutating one never affects a preset.
type Template struct {
	Name        string      `json:"name"`
	Colors      []string    `json:"colors"`
	Branch      BranchStyle `json:"branch"`
	Commit      CommitStyle `json:"commit"`
	Arrow       ArrowStyle  `json:"arrow"`
	Tag         TagStyle    `json:"tag"`
	Orientation Orientation `json:"orientation"`
	Mode        Mode        `json:"mode"`
}

// BranchStyle configures lanes.
type BranchStyle struct {
	Color      string     `json:"color,omitempty"` // pins every lane to one color when set
	LineWidth  float64    `json:"lineWidth"`
	Spacing    float64    `json:"spacing"` // distance between lane columns
	MergeStyle MergeStyle `json:"mergeStyle"`
	LabelFont  string     `json:"labelFont"`
}

// CommitStyle configures commit dots and messages.
type CommitStyle struct {
	SpacingY float64      `json:"spacingY"` // distance between commit rows
	Color    string       `json:"color,omitempty"`
	Dot      DotStyle     `json:"dot"`
	Message  MessageStyle `json:"message"`
}

// DotStyle configures the commit marker. Size is the dot radius.
type DotStyle struct {
	Size        float64 `json:"size"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// MessageStyle configures the commit message text.
type MessageStyle struct {
	Color         string `json:"color,omitempty"`
	Font          string `json:"font"`
	Display       bool   `json:"display"`
	DisplayHash   bool   `json:"displayHash"`
	DisplayAuthor bool   `json:"displayAuthor"`
}

// ArrowStyle configures the arrow drawn at the parent end of a link.
// A zero Height disables arrows.
type ArrowStyle struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// TagStyle holds the default tag label colors and font.
type TagStyle struct {
	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
	Font    string `json:"font"`
}

// BranchColor returns the lane color for a column.
func (t Template) BranchColor(column int) string {
	if t.Branch.Color != "" || len(t.Colors) == 0 {
		return t.Branch.Color
	}
	if column < 0 {
		column = -column
	}
	return t.Colors[column%len(t.Colors)]
}

// DotRadius returns the distance from a commit's center to its dot boundary.
func (t Template) DotRadius() float64 {
	return t.Commit.Dot.Size
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	t.Colors = slices.Clone(t.Colors)
	return t
}

// Validate reports whether t can be laid out. It rejects unknown enumerated
// values, non-positive spacing and an empty color cycle.
func (t Template) Validate() error {
	switch t.Orientation {
	case Vertical, Horizontal:
	default:
		return errors.New(errors.ErrCodeInvalidTemplate, "unknown orientation %q", t.Orientation)
	}
	switch t.Mode {
	case Normal, Compact:
	default:
		return errors.New(errors.ErrCodeInvalidTemplate, "unknown mode %q", t.Mode)
	}
	switch t.Branch.MergeStyle {
	case Bezier, Straight:
	default:
		return errors.New(errors.ErrCodeInvalidTemplate, "unknown merge style %q", t.Branch.MergeStyle)
	}
	if t.Branch.Spacing <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "branch spacing must be positive, got %g", t.Branch.Spacing)
	}
	if t.Commit.SpacingY <= 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "commit spacing must be positive, got %g", t.Commit.SpacingY)
	}
	if t.Branch.LineWidth < 0 || t.Commit.Dot.Size < 0 || t.Commit.Dot.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "line width and dot geometry must not be negative")
	}
	if t.Arrow.Height < 0 || t.Arrow.Width < 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "arrow geometry must not be negative")
	}
	if len(t.Colors) == 0 && t.Branch.Color == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "color cycle is empty")
	}
	return nil
}
