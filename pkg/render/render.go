package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/layout"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// Tag label metrics used to place labels without measuring text.
const (
	tagCharWidth = 7
	tagPadding   = 12
	tagHeight    = 18
	tagGap       = 4
)

// Build lays out g with t and resolves the result into render data.
func Build(g *history.Graph, t template.Template) *Data {
	return FromLayout(g, t, layout.Build(g, t))
}

// FromLayout resolves a layout previously built from g with t.
func FromLayout(g *history.Graph, t template.Template, l *layout.Layout) *Data {
	d := &Data{
		Template:        t.Clone(),
		Orientation:     l.Orientation,
		Mode:            l.Mode,
		Width:           l.Width,
		Height:          l.Height,
		Rows:            l.Rows,
		Columns:         l.Columns,
		CommitMessagesX: l.CommitMessagesX,
		Commits:         make([]Commit, 0, len(l.Nodes)),
		Branches:        make([]BranchPath, 0, len(l.Lanes)),
		Links:           make([]Link, 0, len(l.Links)),
		Tags:            make([]Tag, 0),
	}

	laneColor := func(name string) string {
		b := g.BranchByName(name)
		if b == nil {
			return t.BranchColor(0)
		}
		if b.Color != "" {
			return b.Color
		}
		return t.BranchColor(b.Column)
	}

	d.Tags = buildTags(g, t, l)
	tagWidth := make(map[string]float64)
	for _, tag := range d.Tags {
		tagWidth[tag.Commit] += tag.Width + tagGap
	}

	for _, n := range l.Nodes {
		c := g.CommitByHash(n.Hash)
		d.Commits = append(d.Commits, buildCommit(g, t, l, n, c, laneColor(c.Branch), tagWidth[c.Hash]))
	}

	for _, lane := range l.Lanes {
		b := g.BranchByName(lane.Branch)
		first := lane.Points[0]
		if lane.Fork && len(lane.Points) > 1 {
			first = lane.Points[1]
		}
		d.Branches = append(d.Branches, BranchPath{
			Name:      lane.Branch,
			State:     b.State.String(),
			Column:    lane.Column,
			Offset:    lane.Offset,
			Color:     laneColor(lane.Branch),
			LineWidth: t.Branch.LineWidth,
			Points:    lane.Points,
			Fork:      lane.Fork,
			Start:     lane.Start,
			End:       lane.End,
			StartRow:  lane.StartRow,
			EndRow:    lane.EndRow,
			Label:     labelPoint(t, first),
			LabelFont: t.Branch.LabelFont,
		})
	}

	for _, link := range l.Links {
		color := laneColor(link.Branch)
		if c := g.CommitByHash(link.Child); link.Kind != layout.LinkMerge && c.Color != "" {
			color = c.Color
		}
		d.Links = append(d.Links, Link{
			Kind:      link.Kind,
			Child:     link.Child,
			Parent:    link.Parent,
			Color:     color,
			LineWidth: t.Branch.LineWidth,
			Start:     link.Start,
			End:       link.End,
			Curved:    link.Curved,
			Control1:  link.Control1,
			Control2:  link.Control2,
			Arrow:     link.Arrow,
		})
	}
	return d
}

func buildCommit(g *history.Graph, t template.Template, l *layout.Layout, n layout.Node, c *history.Commit, lane string, tagsWidth float64) Commit {
	color := lane
	if t.Commit.Color != "" {
		color = t.Commit.Color
	}
	if c.Color != "" {
		color = c.Color
	}
	dot := color
	if c.DotColor != "" {
		dot = c.DotColor
	}
	msgColor := color
	if t.Commit.Message.Color != "" {
		msgColor = t.Commit.Message.Color
	}

	out := Commit{
		Hash:       c.Hash,
		HashAbbrev: c.HashAbbrev,
		Subject:    c.Subject,
		Body:       c.Body,
		Author:     c.Author.String(),
		Branch:     c.Branch,
		Branches:   nonNil(c.Branches()),
		Parents:    nonNil(slices.Clone(c.Parents)),
		Refs:       nonNil(g.Refs(c.Hash)),
		Merge:      c.IsMerge(),
		X:          n.X,
		Y:          n.Y,
		Row:        n.Row,
		Column:     n.Column,
		Color:      color,
		Dot: Dot{
			Radius:      t.DotRadius(),
			Color:       dot,
			StrokeColor: t.Commit.Dot.StrokeColor,
			StrokeWidth: t.Commit.Dot.StrokeWidth,
		},
		Message:      message(t, c),
		MessageColor: msgColor,
		MessageFont:  t.Commit.Message.Font,
		Display:      t.Commit.Message.Display && t.Mode != template.Compact,
	}
	if t.Orientation == template.Horizontal {
		out.MessageX = n.X
		out.MessageY = n.Y + t.DotRadius() + tagHeight
	} else {
		out.MessageX = l.CommitMessagesX + tagsWidth
		out.MessageY = n.Y
	}
	return out
}

// message formats the commit label per the template's display flags.
func message(t template.Template, c *history.Commit) string {
	var b strings.Builder
	if t.Commit.Message.DisplayHash && c.HashAbbrev != "" {
		b.WriteString(c.HashAbbrev)
		b.WriteByte(' ')
	}
	b.WriteString(c.Subject)
	if author := c.Author.String(); t.Commit.Message.DisplayAuthor && author != "" {
		b.WriteString(" - ")
		b.WriteString(author)
	}
	return strings.TrimSpace(b.String())
}

// buildTags resolves tags in creation order. Several tags on one commit are
// laid side by side in vertical mode and stacked in horizontal mode.
func buildTags(g *history.Graph, t template.Template, l *layout.Layout) []Tag {
	var out []Tag
	offset := make(map[string]float64)
	stack := make(map[string]int)
	for _, tag := range g.Tags() {
		n, ok := l.Node(tag.Commit)
		if !ok {
			continue
		}
		width := float64(len(tag.Name)*tagCharWidth + tagPadding)
		entry := Tag{
			Name:    tag.Name,
			Commit:  tag.Commit,
			X:       n.X,
			Y:       n.Y,
			Width:   width,
			Color:   pick(tag.Color, t.Tag.Color),
			BgColor: pick(tag.BgColor, t.Tag.BgColor),
			Font:    pick(tag.Font, t.Tag.Font),
		}
		if t.Orientation == template.Horizontal {
			stack[tag.Commit]++
			entry.AnchorX = n.X - width/2
			entry.AnchorY = n.Y - t.DotRadius() - float64(stack[tag.Commit])*(tagHeight+tagGap)
		} else {
			entry.AnchorX = l.CommitMessagesX + offset[tag.Commit]
			entry.AnchorY = n.Y
			offset[tag.Commit] += width + tagGap
		}
		out = append(out, entry)
	}
	if out == nil {
		out = []Tag{}
	}
	return out
}

// labelPoint places a branch label beside a lane's first commit.
func labelPoint(t template.Template, first layout.Point) layout.Point {
	r := t.DotRadius()
	if t.Orientation == template.Horizontal {
		return layout.Point{X: first.X, Y: first.Y - r - tagHeight}
	}
	return layout.Point{X: first.X + r + tagGap, Y: first.Y - r}
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
