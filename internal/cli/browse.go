package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// browseCommand creates the browse command for the interactive tree viewer.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [page.json]",
		Short: "Browse a page tree interactively",
		Long: `Browse a page tree interactively.

Opens a terminal viewer over the layer tree. Branches fold and unfold
the same way the editor's layer panel collapses them, which is useful
for getting a feel of deep pages before scripting edits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.ImportJSON(args[0])
			if err != nil {
				return err
			}

			model := NewPageTreeModel(doc.Name, doc.Layers)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	return cmd
}
