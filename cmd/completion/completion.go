// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for SheetMind.

Install instructions:
  Bash:       sheetmind completion bash > /etc/bash_completion.d/sheetmind
              echo 'source <(sheetmind completion bash)' >> ~/.bashrc
  Zsh:        sheetmind completion zsh > ~/.zsh/completions/_sheetmind
  Fish:       sheetmind completion fish > ~/.config/fish/completions/sheetmind.fish
  PowerShell: sheetmind completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# SheetMind bash completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetmind completion bash > /etc/bash_completion.d/sheetmind")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(sheetmind completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# SheetMind zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetmind completion zsh > ~/.zsh/completions/_sheetmind")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# SheetMind fish completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetmind completion fish > ~/.config/fish/completions/sheetmind.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# SheetMind PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetmind completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
