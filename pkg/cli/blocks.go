package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/blockcanvas/pkg/graph"
	"github.com/dshills/blockcanvas/pkg/template"
)

// NewBlocksCommand creates the blocks command group
func NewBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Browse the block template library",
	}

	cmd.AddCommand(newBlocksListCommand())
	cmd.AddCommand(newBlocksSearchCommand())

	return cmd
}

func newBlocksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available block templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := template.NewLibrary(GetTemplatesDir())
			if err != nil {
				return err
			}

			blocks := lib.GetAvailableBlocks()
			if len(blocks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No block templates installed. Use 'blockcanvas pack install <url>' to add some.")
				return nil
			}

			printTemplates(cmd, blocks)
			return nil
		},
	}
}

func newBlocksSearchCommand() *cobra.Command {
	var tags []string
	var category string

	cmd := &cobra.Command{
		Use:   "search [name]",
		Short: "Search block templates by name, tags, or category",
		Long: `Search the template library. The name argument matches as a
case-insensitive substring; every --tag given must be present on a
template for it to match.

Examples:
  blockcanvas blocks search gain
  blockcanvas blocks search --tag math --tag linear
  blockcanvas blocks search --category sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := template.NewLibrary(GetTemplatesDir())
			if err != nil {
				return err
			}

			query := template.SearchQuery{Tags: tags, Category: category}
			if len(args) == 1 {
				query.Name = args[0]
			}

			blocks := lib.SearchBlocks(query)
			if len(blocks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No templates match.")
				return nil
			}

			printTemplates(cmd, blocks)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Require a tag (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "Require an exact category")

	return cmd
}

func printTemplates(cmd *cobra.Command, blocks []graph.BlockTemplate) {
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Name < blocks[j].Name })

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, b := range blocks {
		line := bold(b.Name)
		if b.Category != "" {
			line += "  " + dim("["+b.Category+"]")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
		if b.Description != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", b.Description)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "    inputs: %d  outputs: %d", len(b.InputPorts), len(b.OutputPorts))
		if len(b.Tags) > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  tags: %s", strings.Join(b.Tags, ", "))
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d template(s)\n", len(blocks))
}
