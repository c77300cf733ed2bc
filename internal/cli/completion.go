package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionShell generates a completion script and says where to install it.
type completionShell struct {
	name    string
	install string // %[1]s is the binary name
	gen     func(root *cobra.Command, w io.Writer) error
}

var completionShells = []completionShell{
	{
		name:    "bash",
		install: "%[1]s completion bash > /etc/bash_completion.d/%[1]s",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	{
		name:    "zsh",
		install: `%[1]s completion zsh > "${fpath[1]}/_%[1]s"`,
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name:    "fish",
		install: "%[1]s completion fish > ~/.config/fish/completions/%[1]s.fish",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name:    "powershell",
		install: "%[1]s completion powershell >> $PROFILE",
		gen:     func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// completionCommand prints shell completion scripts. Script names, preset
// names and formats complete through the commands' own completion funcs.
func (c *CLI) completionCommand() *cobra.Command {
	names := make([]string, len(completionShells))
	var help strings.Builder
	help.WriteString("Print a completion script for " + appName + ". To install it:\n\n")
	for i, sh := range completionShells {
		names[i] = sh.name
		fmt.Fprintf(&help, "  %-11s $ %s\n", sh.name+":", fmt.Sprintf(sh.install, appName))
	}

	return &cobra.Command{
		Use:                   "completion [" + strings.Join(names, "|") + "]",
		Short:                 "Generate shell completion scripts",
		Long:                  help.String(),
		DisableFlagsInUseLine: true,
		ValidArgs:             names,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			i := slices.IndexFunc(completionShells, func(sh completionShell) bool { return sh.name == args[0] })
			return completionShells[i].gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
