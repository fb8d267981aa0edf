package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/component"
	"github.com/pagecraft/pagecraft/pkg/document"
)

// componentsCommand creates the components command for listing component
// usage and rendering the component dependency graph.
func (c *CLI) componentsCommand() *cobra.Command {
	var (
		graphOut string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "components [page.json]",
		Short: "List components and their dependencies",
		Long: `List components and their dependencies.

Without flags, prints each component with its usage count on the page
and the other components it references. With --graph, writes the
component dependency graph as a Graphviz rendering instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if graphOut != "" {
				return c.writeComponentGraph(cmd.Context(), doc, graphOut, format)
			}
			printComponentList(doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphOut, "graph", "g", "", "write the dependency graph to this file")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "graph format: svg, dot")

	return cmd
}

func printComponentList(doc *document.Document) {
	if len(doc.Components) == 0 {
		printInfo("No components defined")
		return
	}

	for _, comp := range doc.Components {
		usages := component.CountUsages(doc.Layers, comp.ID)
		for _, other := range doc.Components {
			if other.ID != comp.ID {
				usages += component.CountUsages(other.Layers, comp.ID)
			}
		}

		fmt.Printf("%s %s\n", StyleHighlight.Render(comp.Name), StyleDim.Render(fmt.Sprintf("(%d usages)", usages)))
		for _, depID := range component.CollectComponentIDs(comp.Layers) {
			name := depID
			if dep := doc.Component(depID); dep != nil {
				name = dep.Name
			}
			printDetail("%s %s", iconArrow, name)
		}
	}
}

// writeComponentGraph renders the component dependency graph to a file.
func (c *CLI) writeComponentGraph(ctx context.Context, doc *document.Document, output, format string) error {
	dot := componentsToDOT(doc)

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		svg, err := renderSVG(ctx, dot)
		if err != nil {
			return err
		}
		data = svg
	default:
		return fmt.Errorf("unsupported format %q (want svg or dot)", format)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered component graph")
	printFile(output)
	return nil
}

// componentsToDOT converts the document's component dependency graph to
// Graphviz DOT format. An edge A -> B means component A instantiates B
// somewhere in its master tree.
func componentsToDOT(doc *document.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph components {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	names := make(map[string]string, len(doc.Components))
	for _, comp := range doc.Components {
		names[comp.ID] = comp.Name
		fmt.Fprintf(&buf, "  %q [label=%q];\n", comp.ID, comp.Name)
	}

	buf.WriteString("\n")
	for _, comp := range doc.Components {
		for _, depID := range component.CollectComponentIDs(comp.Layers) {
			if _, ok := names[depID]; !ok {
				// Dangling reference, drawn dashed so it stands out.
				fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", depID, depID)
				names[depID] = depID
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", comp.ID, depID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// renderSVG renders a DOT graph to SVG using Graphviz.
func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
