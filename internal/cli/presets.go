package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// presetsCommand lists template presets, or prints one as JSON.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List template presets or print one as JSON",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return template.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return printPreset(cmd.OutOrStdout(), args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), presetTable(lipgloss.DefaultRenderer()))
			return nil
		},
	}
}

func printPreset(w io.Writer, name string) error {
	t, ok := template.Lookup(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"unknown template %q (available: %s)", name, strings.Join(template.Names(), ", "))
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// presetTable renders one row per preset with a swatch of its lane colors.
func presetTable(r *lipgloss.Renderer) string {
	rows := [][]string{}
	for _, name := range template.Names() {
		t, _ := template.Lookup(name)
		label := name
		if name == template.DefaultPreset {
			label += " (default)"
		}
		arrows := "no"
		if t.Arrow.Height > 0 {
			arrows = "yes"
		}
		rows = append(rows, []string{
			label,
			string(t.Orientation),
			string(t.Mode),
			string(t.Branch.MergeStyle),
			arrows,
			swatch(r, t.Colors),
		})
	}

	headerStyle := r.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := r.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Orientation", "Mode", "Merges", "Arrows", "Colors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}

func swatch(r *lipgloss.Renderer, colors []string) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(r.NewStyle().Foreground(lipgloss.Color(c)).Render("●"))
	}
	return b.String()
}
