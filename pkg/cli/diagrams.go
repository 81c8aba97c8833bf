package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/blockcanvas/pkg/diagram"
	"github.com/dshills/blockcanvas/pkg/storage"
)

// NewDiagramsCommand creates the diagrams command group
func NewDiagramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagrams",
		Short: "Browse stored diagrams",
	}

	cmd.AddCommand(newDiagramsListCommand())
	cmd.AddCommand(newDiagramsInfoCommand())

	return cmd
}

// openRepository picks the diagram store the settings select
func openRepository() (diagram.Repository, error) {
	switch GlobalConfig.Settings.Storage.Backend {
	case "sqlite":
		return storage.NewSQLiteDiagramRepository()
	default:
		return storage.NewFilesystemDiagramRepositoryWithPath(GlobalConfig.ConfigDir)
	}
}

func newDiagramsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}

			diagrams, err := repo.List()
			if err != nil {
				return fmt.Errorf("failed to list diagrams: %w", err)
			}
			if len(diagrams) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No diagrams stored.")
				return nil
			}

			sort.Slice(diagrams, func(i, j int) bool { return diagrams[i].Name < diagrams[j].Name })

			bold := color.New(color.Bold).SprintFunc()
			dim := color.New(color.Faint).SprintFunc()
			for _, d := range diagrams {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", bold(d.Name), dim(d.ID))
			}
			return nil
		},
	}
}

func newDiagramsInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <diagram-id>",
		Short: "Show details for a stored diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepository()
			if err != nil {
				return err
			}

			d, err := repo.Load(diagram.DiagramID(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Name:        %s\n", d.Name)
			_, _ = fmt.Fprintf(out, "ID:          %s\n", d.ID)
			if d.Description != "" {
				_, _ = fmt.Fprintf(out, "Description: %s\n", d.Description)
			}
			if d.Metadata.Author != "" {
				_, _ = fmt.Fprintf(out, "Author:      %s\n", d.Metadata.Author)
			}
			if !d.Metadata.Created.IsZero() {
				_, _ = fmt.Fprintf(out, "Created:     %s\n", d.Metadata.Created.Format("2006-01-02 15:04:05"))
			}
			if !d.Metadata.LastModified.IsZero() {
				_, _ = fmt.Fprintf(out, "Modified:    %s\n", d.Metadata.LastModified.Format("2006-01-02 15:04:05"))
			}
			_, _ = fmt.Fprintf(out, "Blocks:      %d\n", len(d.Graph.Blocks))
			_, _ = fmt.Fprintf(out, "Edges:       %d\n", len(d.Graph.Edges))
			return nil
		},
	}
}
