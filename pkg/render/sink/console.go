package sink

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/commitgraph/pkg/render"
)

const (
	laneGlyph   = "|"
	commitGlyph = "*"
	forkGlyph   = `\`
)

// ConsoleOption configures a [Console].
type ConsoleOption func(*Console)

// WithPlain disables colors.
func WithPlain() ConsoleOption { return func(c *Console) { c.plain = true } }

// WithRenderer styles output with r instead of a renderer detected from the
// writer. Use it when the writer is a buffer headed for a terminal.
func WithRenderer(r *lipgloss.Renderer) ConsoleOption {
	return func(c *Console) { c.renderer = r }
}

// Console draws a commit graph as text, one line per commit:
//
//	* | 1f3a9c0 init
//	|\
//	| * 9f8e7d6 (develop) feature
//	* | a1b2c3d (HEAD -> master) Merge branch 'develop' into master
//
// It implements [render.LineWriter], so anything able to count lanes can
// drive it, and [render.Consumer] for render data.
type Console struct {
	w        io.Writer
	plain    bool
	renderer *lipgloss.Renderer
	colors   []string // lane color per column
	pending  bool     // a fork line is due before the next commit
	err      error
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{w: w, renderer: lipgloss.NewRenderer(w)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Consume draws d.
func (c *Console) Consume(d *render.Data) error {
	c.colors = make([]string, d.Columns)
	for i := range c.colors {
		c.colors[i] = d.Template.BranchColor(i)
	}
	for _, b := range d.Branches {
		if b.Column < len(c.colors) {
			c.colors[b.Column] = b.Color
		}
	}
	return render.Walk(d, c)
}

// Commit draws one commit line.
func (c *Console) Commit(hash string, refs []string, subject string, left, right, messageOffset int) error {
	if c.pending {
		c.pending = false
		lanes := strings.TrimSuffix(c.lanes(0, left), " ")
		c.println(lanes + c.paint(left, forkGlyph))
	}

	var b strings.Builder
	b.WriteString(c.lanes(0, left))
	b.WriteString(c.paint(left, commitGlyph) + " ")
	b.WriteString(c.lanes(left+1, right))
	if pad := messageOffset - (left + 1 + right); pad > 0 {
		b.WriteString(strings.Repeat("  ", pad))
	}
	b.WriteString(c.style(lipgloss.NewStyle().Foreground(lipgloss.Color("3")), hash))
	if len(refs) > 0 {
		b.WriteString(" (" + strings.Join(refs, ", ") + ")")
	}
	if subject != "" {
		b.WriteString(" " + subject)
	}
	c.println(strings.TrimRight(b.String(), " "))
	return c.err
}

// OpenBranch draws a fork line before the next commit.
func (c *Console) OpenBranch() error {
	c.pending = true
	return c.err
}

// lanes draws n lane glyphs starting at column from.
func (c *Console) lanes(from, n int) string {
	var b strings.Builder
	for i := range n {
		b.WriteString(c.paint(from+i, laneGlyph) + " ")
	}
	return b.String()
}

func (c *Console) paint(column int, glyph string) string {
	if column < 0 || column >= len(c.colors) || c.colors[column] == "" {
		return glyph
	}
	return c.style(lipgloss.NewStyle().Foreground(lipgloss.Color(c.colors[column])), glyph)
}

func (c *Console) style(s lipgloss.Style, text string) string {
	if c.plain {
		return text
	}
	return s.Renderer(c.renderer).Render(text)
}

func (c *Console) println(line string) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintln(c.w, line)
}

// RenderText draws d as uncolored text.
func RenderText(d *render.Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewConsole(&buf, WithPlain()).Consume(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
