package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/errors"
)

// newCommand creates the new command for scaffolding a page document.
func (c *CLI) newCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new page document",
		Long: `Create a new page document.

The document starts with a single body layer as the root of the page
tree. Build from there with the HTTP API or by editing the JSON file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := errors.ValidateName(name); err != nil {
				return err
			}

			path := output
			if path == "" {
				path = slugify(name) + ".json"
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			doc := document.New(name)
			if err := document.ExportJSON(doc, path); err != nil {
				return fmt.Errorf("write document: %w", err)
			}

			printSuccess("Created %q", name)
			printFile(path)
			printNextStep("Inspect the page", "pagecraft inspect "+path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.json)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// slugify lowercases a name and replaces runs of non-alphanumerics with
// a single dash.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
