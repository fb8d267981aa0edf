package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/layer"
)

// inspectCommand creates the inspect command for printing a page tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "inspect [page.json]",
		Short: "Print the layer tree of a page document",
		Long: `Print the layer tree of a page document.

Each line shows the layer kind and name, indented by depth. Layers bound
to a component or style are marked, as are locked layers. Use --ids to
include layer IDs for scripting against the HTTP API.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.ImportJSON(args[0])
			if err != nil {
				return err
			}
			printDocument(doc, showIDs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "show layer IDs")

	return cmd
}

// printDocument renders the document tree and its master component trees.
func printDocument(doc *document.Document, showIDs bool) {
	fmt.Println(StyleTitle.Render(doc.Name))
	printTree(doc.Layers, showIDs)

	for _, comp := range doc.Components {
		fmt.Println()
		fmt.Println(StyleTitle.Render("component: " + comp.Name))
		printTree(comp.Layers, showIDs)
	}

	fmt.Println()
	printStats(layer.Count(doc.Layers), len(doc.Components), len(doc.Styles))
}

func printTree(tree []*layer.Layer, showIDs bool) {
	for _, item := range layer.Flatten(tree, nil) {
		fmt.Println(formatLayerLine(item, showIDs))
	}
}

func formatLayerLine(item layer.FlattenedItem, showIDs bool) string {
	l := item.Layer

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", item.Depth))
	b.WriteString(StyleHighlight.Render(string(l.Kind)))
	if l.Name != "" {
		b.WriteString(" " + StyleValue.Render(l.Name))
	}

	var marks []string
	if l.ComponentID != "" {
		marks = append(marks, "component")
	}
	if l.StyleID != "" {
		mark := "style"
		if l.StyleOverrides != nil && !l.StyleOverrides.IsEmpty() {
			mark = "style*"
		}
		marks = append(marks, mark)
	}
	if l.Locked {
		marks = append(marks, "locked")
	}
	if len(marks) > 0 {
		b.WriteString(" " + StyleDim.Render("["+strings.Join(marks, ", ")+"]"))
	}

	if showIDs {
		b.WriteString(" " + StyleDim.Render(l.ID))
	}
	return b.String()
}
