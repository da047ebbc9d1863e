package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for seqdiag.

  Bash:        source <(seqdiag completion bash)
  Zsh:         seqdiag completion zsh > "${fpath[1]}/_seqdiag"
  Fish:        seqdiag completion fish > ~/.config/fish/completions/seqdiag.fish
  PowerShell:  seqdiag completion powershell | Out-String | Invoke-Expression

Completion for render, parse and check offers *.seq files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeDiagrams restricts file completion to diagram sources.
func completeDiagrams(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{diagramExt[1:]}, cobra.ShellCompDirectiveFilterFileExt
}
