package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/commitgraph/internal/watch"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/render/sink"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// stdoutPath is the --output value that writes to standard output.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // output formats
	template    string   // preset overriding the script's
	optionsFile string   // YAML/TOML/JSON template overrides
	background  string   // background fill for svg, pdf and png
	scale       float64  // png resolution multiplier
	noCache     bool     // bypass the artifact cache
	refresh     bool     // re-render and overwrite cached artifacts
	watch       bool     // re-render whenever the script changes
}

// renderCommand creates the render command.
//
// Without --output, text goes to stdout (colored on a terminal) and other
// formats are written next to the script.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [script]",
		Short: "Render a commit graph script",
		Long: `Render replays a YAML or JSON script and writes the resulting commit graph.

Formats: ` + strings.Join(pipeline.Formats(), ", ") + `. PDF and PNG need rsvg-convert.`,
		Example: `  commitgraph render flow.yaml
  commitgraph render flow.yaml -f txt
  commitgraph render flow.yaml -f svg,png -o out/flow --template blackarrow
  commitgraph render flow.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Formats)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			opts.template = c.templateName(opts.template)
			if opts.watch {
				return c.watchRender(cmd.Context(), args[0], opts)
			}
			return c.runRender(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated (default from config, else svg)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template preset: "+strings.Join(template.Names(), ", "))
	cmd.Flags().StringVar(&opts.optionsFile, "options", "", "template override file (.yaml, .toml or .json)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color for svg, pdf and png")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the script changes")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return template.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender renders input once and writes every requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	s, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	popts, err := c.pipelineOptions(input, opts)
	if err != nil {
		return err
	}

	toStdout := writesStdout(opts)
	colored := toStdout && slices.Contains(opts.formats, pipeline.FormatText) && isTerminal(stdout)
	if colored && !slices.Contains(popts.Formats, pipeline.FormatJSON) {
		popts.Formats = append(popts.Formats, pipeline.FormatJSON)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if !toStdout && isTerminal(os.Stderr) {
		spinner = newSpinner(ctx, os.Stderr, "Rendering "+input)
		spinner.Start()
	}
	res, err := runner.Execute(ctx, s, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if toStdout {
		return writeStdout(stdout, res, opts.formats[0], colored)
	}

	paths := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := writeArtifact(path, res.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	p.done("Rendered " + input)

	printSuccess("Rendered %s", input)
	printStats(res.Stats.Commits, res.Stats.Branches, res.CacheInfo.RenderHit)
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// watchRender re-renders input whenever it changes until ctx is done.
// Render failures are reported and the watch continues.
func (c *CLI) watchRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	printInfo("Watching %s %s", input, StyleDim.Render("(ctrl+c to stop)"))

	err := watch.File(ctx, input, watch.DefaultDebounce,
		func() {
			if err := c.runRender(ctx, input, opts, os.Stdout); err != nil {
				printError("%v", err)
			}
		},
		func(err error) { logger.Warn("watcher error", "err", err) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pipelineOptions translates flags into pipeline options.
func (c *CLI) pipelineOptions(input string, opts renderOpts) (pipeline.Options, error) {
	popts := pipeline.Options{
		Formats:    slices.Clone(opts.formats),
		Template:   opts.template,
		Scale:      opts.scale,
		Background: opts.background,
		Refresh:    opts.refresh,
		BaseDir:    filepath.Dir(input),
		Logger:     c.Logger,
		TTL:        c.Config.Cache.TTL,
	}
	if opts.optionsFile != "" {
		o, err := template.LoadOptionsFile(opts.optionsFile)
		if err != nil {
			return pipeline.Options{}, err
		}
		popts.Overrides = o
	}
	return popts, nil
}

// writesStdout reports whether the single requested artifact goes to
// stdout: explicitly via "-", or text without an output path.
func writesStdout(opts renderOpts) bool {
	if len(opts.formats) != 1 {
		return false
	}
	if opts.output == stdoutPath {
		return true
	}
	return opts.output == "" && opts.formats[0] == pipeline.FormatText
}

func writeStdout(w io.Writer, res *pipeline.Result, format string, colored bool) error {
	if !colored {
		_, err := w.Write(res.Artifacts[format])
		return err
	}
	var d render.Data
	if err := json.Unmarshal(res.Artifacts[pipeline.FormatJSON], &d); err != nil {
		return fmt.Errorf("decode render data: %w", err)
	}
	return sink.NewConsole(w).Consume(&d)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// extension returns the file extension for a format.
func extension(format string) string {
	if format == pipeline.FormatDOTSVG {
		return "dot.svg"
	}
	return format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath picks the file for one format. A single format writes to
// output as given; several formats share output as a base path. A derived
// path never overwrites the script itself.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := basePath(output, input)
	path := base + "." + extension(format)
	if filepath.Clean(path) == filepath.Clean(input) {
		path = base + ".render." + extension(format)
	}
	return path
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
