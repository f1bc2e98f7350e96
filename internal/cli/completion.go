package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for barnframe and write it to stdout.

Load it for the current session:

  bash        source <(barnframe completion bash)
  zsh         source <(barnframe completion zsh)
  fish        barnframe completion fish | source
  powershell  barnframe completion powershell | Out-String | Invoke-Expression

To load completions in every session, write the script to your shell's
completion directory, for example:

  barnframe completion bash > /etc/bash_completion.d/barnframe
  barnframe completion zsh > "${fpath[1]}/_barnframe"
  barnframe completion fish > ~/.config/fish/completions/barnframe.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletionV2(out, true)
			}
		},
	}
}
