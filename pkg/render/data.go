package render

import (
	"github.com/matzehuels/commitgraph/pkg/layout"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// Data is the fully resolved drawing of a commit graph. Coordinates are in
// layout space: the first commit's dot center is at the origin.
type Data struct {
	Template        template.Template    `json:"template"`
	Orientation     template.Orientation `json:"orientation"`
	Mode            template.Mode        `json:"mode"`
	Width           float64              `json:"width"`
	Height          float64              `json:"height"`
	Rows            int                  `json:"rows"`
	Columns         int                  `json:"columns"`
	CommitMessagesX float64              `json:"commitMessagesX"`
	Commits         []Commit             `json:"commits"` // render order
	Branches        []BranchPath         `json:"branches"`
	Links           []Link               `json:"links"`
	Tags            []Tag                `json:"tags"`
}

// Commit is a positioned, styled commit.
type Commit struct {
	Hash       string   `json:"hash"`
	HashAbbrev string   `json:"hashAbbrev"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body,omitempty"`
	Author     string   `json:"author,omitempty"`
	Branch     string   `json:"branch"`
	Branches   []string `json:"branches"`
	Parents    []string `json:"parents"`
	Refs       []string `json:"refs"`
	Merge      bool     `json:"merge"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
	Color  string  `json:"color"`
	Dot    Dot     `json:"dot"`

	// Message is the label drawn next to the commit: the subject, prefixed
	// with the abbreviated hash and suffixed with the author when the
	// template asks for them. Display is false when no label is drawn.
	Message      string  `json:"message"`
	MessageX     float64 `json:"messageX"`
	MessageY     float64 `json:"messageY"`
	MessageColor string  `json:"messageColor"`
	MessageFont  string  `json:"messageFont"`
	Display      bool    `json:"display"`
}

// Dot is a resolved commit marker.
type Dot struct {
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// BranchPath is a lane line.
type BranchPath struct {
	Name      string         `json:"name"`
	State     string         `json:"state"`
	Column    int            `json:"column"`
	Offset    float64        `json:"offset"`
	Color     string         `json:"color"`
	LineWidth float64        `json:"lineWidth"`
	Points    []layout.Point `json:"points"`
	Fork      bool           `json:"fork"`
	Start     float64        `json:"start"`
	End       float64        `json:"end"`
	StartRow  int            `json:"startRow"`
	EndRow    int            `json:"endRow"`
	// Label is where the branch name is drawn: beside its first commit.
	Label     layout.Point `json:"label"`
	LabelFont string       `json:"labelFont"`
}

// Link is a styled connection from a commit to one of its parents.
type Link struct {
	Kind      layout.LinkKind `json:"kind"`
	Child     string          `json:"child"`
	Parent    string          `json:"parent"`
	Color     string          `json:"color"`
	LineWidth float64         `json:"lineWidth"`
	Start     layout.Point    `json:"start"`
	End       layout.Point    `json:"end"`
	Curved    bool            `json:"curved"`
	Control1  layout.Point    `json:"control1"`
	Control2  layout.Point    `json:"control2"`
	Arrow     *layout.Arrow   `json:"arrow,omitempty"`
}

// Tag is a positioned tag label. X and Y are the tagged commit's
// coordinates; the label box starts at the anchor.
type Tag struct {
	Name    string  `json:"name"`
	Commit  string  `json:"commit"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	AnchorX float64 `json:"anchorX"`
	AnchorY float64 `json:"anchorY"`
	Width   float64 `json:"width"`
	Color   string  `json:"color"`
	BgColor string  `json:"bgColor"`
	Font    string  `json:"font"`
}

// Commit returns the commit entry with the given hash.
func (d *Data) Commit(hash string) (Commit, bool) {
	for _, c := range d.Commits {
		if c.Hash == hash {
			return c, true
		}
	}
	return Commit{}, false
}

// Consumer turns render data into some output.
type Consumer interface {
	Consume(d *Data) error
}

// ConsumerFunc adapts a function to [Consumer].
type ConsumerFunc func(d *Data) error

// Consume calls f(d).
func (f ConsumerFunc) Consume(d *Data) error { return f(d) }
