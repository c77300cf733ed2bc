package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
	"github.com/matzehuels/commitgraph/pkg/render/sink"
	"github.com/matzehuels/commitgraph/pkg/script"
)

// viewCommand steps through a script one operation at a time.
func (c *CLI) viewCommand() *cobra.Command {
	var tpl string

	cmd := &cobra.Command{
		Use:   "view [script]",
		Short: "Step through a script in the terminal",
		Long: `View replays a script step by step and shows the commit graph after each
operation. Use ←/→ to move between steps and ↑/↓ to scroll.

When stdout is not a terminal, every step is printed in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], c.templateName(tpl), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&tpl, "template", "t", "", "template preset overriding the script's")
	return cmd
}

func (c *CLI) runView(ctx context.Context, input, tpl string, stdout io.Writer) error {
	s, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	if len(s.Steps) == 0 {
		printWarning("%s has no steps", input)
		return nil
	}

	interactive := isTerminal(stdout)
	renderer := lipgloss.NewRenderer(stdout)
	frames, err := buildFrames(ctx, s, pipeline.Options{Template: tpl, BaseDir: filepath.Dir(input)}, renderer, !interactive)
	if err != nil {
		return err
	}

	if !interactive {
		for _, f := range frames {
			fmt.Fprintf(stdout, "# %s\n%s\n", f.label, f.body())
		}
		return nil
	}

	m := newViewModel(input, frames)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(stdout)).Run()
	return err
}

// =============================================================================
// Frames
// =============================================================================

// viewFrame is the graph after one step.
type viewFrame struct {
	label string
	text  string
	err   error
}

func (f viewFrame) body() string {
	if f.err != nil {
		return styleIconError.Render(iconError) + " " + f.err.Error()
	}
	return f.text
}

// buildFrames replays s and draws the graph after each step. A failing
// step ends the sequence with an error frame.
func buildFrames(ctx context.Context, s *script.Script, opts pipeline.Options, r *lipgloss.Renderer, plain bool) ([]viewFrame, error) {
	t, err := pipeline.ResolveTemplate(s, opts)
	if err != nil {
		return nil, err
	}

	var gopts []history.Option
	if s.Author != nil {
		gopts = append(gopts, history.WithAuthor(*s.Author))
	}
	g := history.New(gopts...)

	frames := make([]viewFrame, 0, len(s.Steps))
	var drawErr error
	hook := func(i int, step script.Step, g *history.Graph) {
		if drawErr != nil {
			return
		}
		var buf bytes.Buffer
		copts := []sink.ConsoleOption{sink.WithRenderer(r)}
		if plain {
			copts = append(copts, sink.WithPlain())
		}
		drawErr = sink.NewConsole(&buf, copts...).Consume(pipeline.GenerateLayout(ctx, g, t))
		frames = append(frames, viewFrame{
			label: fmt.Sprintf("%d/%d %s", i+1, len(s.Steps), stepLabel(step)),
			text:  strings.TrimRight(buf.String(), "\n"),
		})
	}

	err = script.Replay(s, g, script.WithBaseDir(opts.BaseDir), script.WithStepHook(hook))
	if drawErr != nil {
		return nil, drawErr
	}
	if err != nil {
		n := len(frames)
		frames = append(frames, viewFrame{
			label: fmt.Sprintf("%d/%d %s", n+1, len(s.Steps), stepLabel(s.Steps[n])),
			err:   err,
		})
	}
	return frames, nil
}

// stepLabel describes a step in one line, e.g. "merge develop".
func stepLabel(step script.Step) string {
	kind := step.Kind()
	var arg string
	switch {
	case step.Branch != nil:
		arg = step.Branch.Name
	case step.Commit != nil:
		arg = step.Commit.Subject
	case step.Merge != nil:
		arg = step.Merge.Source
		if step.Merge.Target != "" {
			arg += " into " + step.Merge.Target
		}
	case step.Tag != nil:
		arg = step.Tag.Name
	case step.Checkout != nil:
		arg = *step.Checkout
	case step.Delete != nil:
		arg = *step.Delete
	case step.Import != nil:
		arg = step.Import.File
		if arg == "" {
			arg = fmt.Sprintf("%d records", len(step.Import.Records))
		}
	}
	if arg == "" {
		return kind
	}
	return kind + " " + arg
}

// =============================================================================
// viewModel - Interactive step-through
// =============================================================================

var (
	viewLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// viewModel is the bubbletea model for stepping through frames.
type viewModel struct {
	title  string
	frames []viewFrame
	index  int
	height int // lines available for the graph
	offset int // first graph line shown
}

func newViewModel(title string, frames []viewFrame) viewModel {
	m := viewModel{title: title, frames: frames, index: len(frames) - 1, height: 20}
	m.offset = m.maxOffset()
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "p":
			m = m.goTo(m.index - 1)
		case "right", "l", "n", " ":
			m = m.goTo(m.index + 1)
		case "home", "g":
			m = m.goTo(0)
		case "end", "G":
			m = m.goTo(len(m.frames) - 1)
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-5, 3)
		m.offset = min(m.offset, m.maxOffset())
	}
	return m, nil
}

func (m viewModel) goTo(i int) viewModel {
	if i < 0 || i >= len(m.frames) {
		return m
	}
	m.index = i
	m.offset = m.maxOffset()
	return m
}

func (m viewModel) lines() []string {
	if len(m.frames) == 0 {
		return nil
	}
	return strings.Split(m.frames[m.index].body(), "\n")
}

// maxOffset keeps the newest commits in view.
func (m viewModel) maxOffset() int {
	return max(len(m.lines())-m.height, 0)
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	if len(m.frames) > 0 {
		b.WriteString("  " + viewLabelStyle.Render(m.frames[m.index].label))
	}
	b.WriteString("\n\n")

	lines := m.lines()
	end := min(m.offset+m.height, len(lines))
	for _, line := range lines[min(m.offset, end):end] {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←/→ step  ↑/↓ scroll  g/G first/last  q quit"))
	return b.String()
}
