package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
)

// validateCommand creates the validate command for checking document integrity.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [page.json]",
		Short: "Check a page document for structural problems",
		Long: `Check a page document for structural problems.

Detects duplicate layer IDs, references to components or styles that no
longer exist, and circular component references. Exits non-zero when the
document is invalid, so it can gate CI pipelines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}

	return cmd
}

func (c *CLI) runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	// Decode without validation so a broken document still loads and
	// the problem gets reported instead of a bare decode failure.
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	p := newProgress(c.Logger)
	if err := doc.Validate(); err != nil {
		printError("%s is invalid", path)
		printDetail("%s", errors.UserMessage(err))
		return err
	}
	p.done(fmt.Sprintf("Validated %d layers", layer.Count(doc.Layers)))

	printSuccess("%s is valid", path)
	return nil
}
