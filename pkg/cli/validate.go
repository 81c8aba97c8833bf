package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/blockcanvas/pkg/diagram"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate <diagram-file>",
		Short: "Validate a diagram file",
		Long: `Validate a diagram document for correctness.

This checks:
- Document structure and syntax
- Block and port definitions
- Edge endpoint references
- Graph invariants (no self loops, port type compatibility,
  single edge per input port, no duplicate edges)

Examples:
  blockcanvas validate my-diagram.yaml
  blockcanvas validate my-diagram.yaml --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read diagram: %w", err)
			}

			var d diagram.Diagram
			if err := yaml.Unmarshal(data, &d); err != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStderr(), "%s Failed to parse diagram YAML\n", failMark)
				if verbose {
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Diagram YAML parsed successfully\n", okMark)

			if err := d.Validate(); err != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStderr(), "%s Diagram validation failed\n", failMark)
				if verbose {
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Graph invariants hold\n", okMark)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Diagram %q is valid (%d blocks, %d edges)\n",
				okMark, d.Name, len(d.Graph.Blocks), len(d.Graph.Edges))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed error output")

	return cmd
}
