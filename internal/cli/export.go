package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitgraph/pkg/io"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
	"github.com/matzehuels/commitgraph/pkg/script"
)

// exportCommand replays a script and writes its commit records.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [script]",
		Short: "Replay a script and write its commit records as JSON",
		Long: `Export replays a script and writes the resulting commits, oldest first, in
the record format accepted by import steps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output string) error {
	s, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	res, err := script.Run(s, script.WithBaseDir(filepath.Dir(input)))
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("replayed", "script", input, "commits", res.Graph.Len())

	if output == "" || output == stdoutPath {
		return io.WriteJSON(res.Graph, os.Stdout)
	}
	if err := io.ExportJSON(res.Graph, output); err != nil {
		return err
	}
	printSuccess("Exported %d commits", res.Graph.Len())
	printFile(output)
	return nil
}
