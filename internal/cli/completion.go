package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for pagecraft.

The script is written to stdout. Source it directly to try it out:

  bash:       source <(pagecraft completion bash)
  zsh:        source <(pagecraft completion zsh)
  fish:       pagecraft completion fish | source
  powershell: pagecraft completion powershell | Out-String | Invoke-Expression

To keep completions across sessions, write the script where your shell
picks it up, for example:

  pagecraft completion bash > /etc/bash_completion.d/pagecraft
  pagecraft completion zsh  > "${fpath[1]}/_pagecraft"
  pagecraft completion fish > ~/.config/fish/completions/pagecraft.fish

zsh needs compinit enabled (autoload -U compinit; compinit in ~/.zshrc).
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
