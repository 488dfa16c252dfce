// Package main is the entry point for the metaqs-cli application.
// It initializes the root command and registers the portal and cache
// sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/openeduhub/metaqs/cmd/metaqs-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "metaqs-cli",
		Short: "Metadata quality inspection CLI tool",
		Long: `metaqs-cli is a command-line tool for inspecting the editorial portals
of an edu-sharing repository. It lists portals, walks their collection
trees and manages the portal snapshot cache.

Configuration is read from the file named by CONFIG_PATH
(default configs/rest-app.yaml), with METAQS_* environment overrides.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register portal commands
	if err := commands.InitPortalCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize portal commands: %w", err)
	}

	// Register cache commands
	if err := commands.InitCacheCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize cache commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
