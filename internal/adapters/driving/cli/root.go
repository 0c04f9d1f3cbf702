// Package cli provides the cobra command tree for datalex.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/core/ports/driving"
	"github.com/custodia-labs/datalex/internal/logger"
)

// version is set at build time.
var version = "dev"

// skipServices marks commands that run without the fragment workspace.
const skipServices = "datalex.skip-services"

// errNotConfigured is returned when a command runs before services are wired.
var errNotConfigured = errors.New("not configured")

// Services bundles the ports the commands drive.
type Services struct {
	Store    driving.FragmentStore
	Pages    driving.Paginator
	Jobs     driving.FragmentationJob
	Settings driving.SettingsService
	Changes  driven.ChangeNotifier

	// Close releases storage. Optional.
	Close func() error
}

// Options carries the persistent flag values.
type Options struct {
	DataDir string
	Storage string
	Verbose bool
}

// BootstrapFunc builds services once flags are parsed.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	fragmentStore   driving.FragmentStore
	paginator       driving.Paginator
	jobController   driving.FragmentationJob
	settingsService driving.SettingsService
	changeNotifier  driven.ChangeNotifier
	closeFn         func() error

	bootstrap BootstrapFunc
	rootOpts  Options
)

var rootCmd = &cobra.Command{
	Use:   "datalex",
	Short: "Split, browse and manage text fragments",
	Long: `datalex loads plain-text documents into a paged workspace of fragments,
splits selected fragments by word count or by line, and lets you read,
select and delete them.

Run without a subcommand on a terminal to open the interactive UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepareServices,
	RunE:              runRoot,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&rootOpts.DataDir, "data-dir", "", "directory holding the fragment database")
	flags.StringVar(&rootOpts.Storage, "storage", "", "fragment storage backend (sqlite or memory)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetDefaults seeds the persistent flags. Explicit flags still win.
func SetDefaults(opts Options) {
	rootOpts = opts
}

// SetBootstrap registers the function that wires services after flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices wires already-built services. Nil clears them.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	fragmentStore = s.Store
	paginator = s.Pages
	jobController = s.Jobs
	settingsService = s.Settings
	changeNotifier = s.Changes
	closeFn = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Shutdown releases services opened by the bootstrap.
func Shutdown() error {
	if closeFn == nil {
		return nil
	}
	fn := closeFn
	closeFn = nil
	return fn()
}

func prepareServices(cmd *cobra.Command, _ []string) error {
	if rootOpts.Verbose {
		logger.SetVerbose(true)
	}
	if cmd.Annotations[skipServices] == "true" || bootstrap == nil || fragmentStore != nil {
		return nil
	}

	logger.Debug("bootstrapping services (storage=%q, data dir=%q)", rootOpts.Storage, rootOpts.DataDir)
	services, err := bootstrap(cmd.Context(), rootOpts)
	if err != nil {
		return fmt.Errorf("starting datalex: %w", err)
	}
	SetServices(services)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if isTerminal() {
		return runTUI(cmd, args)
	}
	return cmd.Help()
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func requireStore() error {
	if fragmentStore == nil || paginator == nil {
		return fmt.Errorf("fragment store %w", errNotConfigured)
	}
	return nil
}
