package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/datalex/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change paging, selection, fragmentation and engine settings.

Settings are stored in ~/.datalex/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by key.

Keys:
  pagination.page_size     records per page
  selection.policy         clear_on_page_change or persist_across_pages
  fragmentation.mode       size or row
  fragmentation.target     default target word count
  fragmentation.tolerance  default tolerance
  engine.workers           texts split concurrently
  engine.inbox             glob the file picker expands

Engine settings apply on the next start. Values are taken literally, so
negative numbers need no quoting.`,
	// Values such as -1 must reach validation instead of the flag parser.
	DisableFlagParsing: true,
	Args:               settingsSetArgs,
	RunE:               runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Pagination]")
	cmd.Printf("  Page size: %d\n", settings.Pagination.PageSize)
	cmd.Println()

	cmd.Println("[Selection]")
	cmd.Printf("  Policy: %s (%s)\n", settings.Selection.Policy.Description(), settings.Selection.Policy)
	cmd.Println()

	cmd.Println("[Fragmentation]")
	cmd.Printf("  Mode: %s (%s)\n", settings.Fragmentation.Mode.Description(), settings.Fragmentation.Mode)
	cmd.Printf("  Target: %d words\n", settings.Fragmentation.Target)
	cmd.Printf("  Tolerance: %d words\n", settings.Fragmentation.Tolerance)
	cmd.Println()

	cmd.Println("[Engine]")
	cmd.Printf("  Workers: %d\n", settings.Engine.Workers)
	inbox := settings.Engine.Inbox
	if inbox == "" {
		inbox = "(not set)"
	}
	cmd.Printf("  Inbox: %s\n", inbox)
	return nil
}

// settingsSetArgs accepts a lone help flag so help still works without flag parsing.
func settingsSetArgs(cmd *cobra.Command, args []string) error {
	if isHelpArg(args) {
		return nil
	}
	return cobra.ExactArgs(2)(cmd, args)
}

func isHelpArg(args []string) bool {
	return len(args) == 1 && (args[0] == "-h" || args[0] == "--help")
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if isHelpArg(args) {
		return cmd.Help()
	}
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}

	key, value := args[0], args[1]
	if !isKnownKey(key) {
		return fmt.Errorf("%w: unknown setting %q (keys: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingsService.Keys(), ", "))
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range settingsService.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
