package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(r *cobra.Command, w io.Writer) error { return r.GenBashCompletionV2(w, true) },
	"zsh":        func(r *cobra.Command, w io.Writer) error { return r.GenZshCompletion(w) },
	"fish":       func(r *cobra.Command, w io.Writer) error { return r.GenFishCompletion(w, true) },
	"powershell": func(r *cobra.Command, w io.Writer) error { return r.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for nafig. Examples:

  source <(nafig completion bash)
  nafig completion zsh > "${fpath[1]}/_nafig"
  nafig completion fish > ~/.config/fish/completions/nafig.fish
  nafig completion powershell | Out-String | Invoke-Expression

Completing input files also offers the .csv, .tsv and .xlsx extensions.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeTableFiles restricts positional completion to supported inputs.
func completeTableFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"csv", "tsv", "xlsx"}, cobra.ShellCompDirectiveFilterFileExt
}

type flagCompletion = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

func fixedCompletion(values ...string) flagCompletion {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

func fileExtCompletion(exts ...string) flagCompletion {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// mustRegisterCompletions attaches completions to cmd's flags. Registration
// fails only for an unknown or already registered flag, so an error panics.
func mustRegisterCompletions(cmd *cobra.Command, completions map[string]flagCompletion) {
	for flag, fn := range completions {
		if err := cmd.RegisterFlagCompletionFunc(flag, fn); err != nil {
			panic(fmt.Sprintf("register completion for --%s: %v", flag, err))
		}
	}
}
