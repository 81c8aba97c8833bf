package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/blockcanvas/pkg/diagram"
	"github.com/dshills/blockcanvas/pkg/graph"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <diagram-file>",
		Short: "Export a diagram as simulation wire JSON",
		Long: `Export a diagram to the JSON payload the simulation engine consumes.

Layout data (positions, sizes, edge midpoints) is stripped; only the
logical graph of blocks, ports, and connections is emitted.

Examples:
  blockcanvas export my-diagram.yaml
  blockcanvas export my-diagram.yaml -o payload.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read diagram: %w", err)
			}

			var d diagram.Diagram
			if err := yaml.Unmarshal(data, &d); err != nil {
				return fmt.Errorf("failed to parse diagram: %w", err)
			}
			if err := d.Validate(); err != nil {
				return fmt.Errorf("diagram failed validation: %w", err)
			}

			payload, err := graph.MarshalWire(&d.Graph)
			if err != nil {
				return fmt.Errorf("failed to marshal wire payload: %w", err)
			}

			if output == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			}
			if err := os.WriteFile(output, append(payload, '\n'), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %q to %s\n", okMark, d.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
