package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dshills/blockcanvas/pkg/template"
)

// NewPackCommand creates the pack command group
func NewPackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Manage installed block packs",
	}

	cmd.AddCommand(newPackListCommand())
	cmd.AddCommand(newPackInstallCommand())
	cmd.AddCommand(newPackUninstallCommand())
	cmd.AddCommand(newPackTokenCommand())

	return cmd
}

func newPackListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed block packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := template.NewLibrary(GetTemplatesDir())
			if err != nil {
				return err
			}

			names := lib.InstalledPacks()
			if len(names) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No packs installed.")
				return nil
			}
			sort.Strings(names)
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newPackInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install <url>",
		Short: "Download and install a block pack from a registry URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := template.NewLibrary(GetTemplatesDir())
			if err != nil {
				return err
			}
			if err := lib.InstallBlockPack(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Pack installed\n", okMark)
			return nil
		},
	}
}

func newPackUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <name>",
		Short: "Remove an installed block pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := template.NewLibrary(GetTemplatesDir())
			if err != nil {
				return err
			}
			if err := lib.UninstallBlockPack(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Pack %s uninstalled\n", okMark, args[0])
			return nil
		},
	}
}

func newPackTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the pack registry access token",
		Long: `Manage the bearer token sent when fetching packs from a private
registry. The token is stored in the system keyring, never on disk.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store the registry token in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := template.SetRegistryToken(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Registry token stored\n", okMark)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the registry token from the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := template.ClearRegistryToken(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Registry token cleared\n", okMark)
			return nil
		},
	})

	return cmd
}
