// Package cli implements the blockcanvas command line interface.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/blockcanvas/pkg/config"
)

const (
	// Version is the current version of blockcanvas
	Version = "1.0.0"
)

// GlobalConfig holds shared CLI state resolved before any command runs
var GlobalConfig = struct {
	ConfigDir string
	Debug     bool
	Settings  *config.Config
}{}

// NewRootCommand creates the root cobra command for blockcanvas
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockcanvas",
		Short: "blockcanvas - Block diagram editor core",
		Long: `blockcanvas manages block diagram documents: directed graphs of typed
blocks connected by orthogonally routed edges. Diagrams are edited
interactively and handed to an external engine for simulation; this CLI
covers the headless operations: validating and exporting diagrams and
managing the block template library.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.blockcanvas)")

	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewBlocksCommand())
	cmd.AddCommand(NewPackCommand())
	cmd.AddCommand(NewDiagramsCommand())

	return cmd
}

// initConfig resolves the configuration directory and loads settings
func initConfig() error {
	// Environment variable always takes priority (for testing)
	if envDir := os.Getenv("BLOCKCANVAS_CONFIG_DIR"); envDir != "" {
		GlobalConfig.ConfigDir = envDir
	} else if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		GlobalConfig.ConfigDir = filepath.Join(homeDir, ".blockcanvas")
	}

	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settings, err := config.LoadFrom(filepath.Join(GlobalConfig.ConfigDir, "config.toml"))
	if err != nil {
		return err
	}
	GlobalConfig.Settings = settings
	return nil
}

// GetTemplatesDir returns the block template library directory
func GetTemplatesDir() string {
	return filepath.Join(GlobalConfig.ConfigDir, "templates")
}
