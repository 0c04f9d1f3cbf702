package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/datalex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/datalex/internal/adapters/driven/engine/local"
	"github.com/custodia-labs/datalex/internal/adapters/driven/engine/null"
	"github.com/custodia-labs/datalex/internal/adapters/driven/picker/glob"
	"github.com/custodia-labs/datalex/internal/adapters/driven/reader/filesystem"
	"github.com/custodia-labs/datalex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/datalex/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/datalex/internal/adapters/driven/watch"
	"github.com/custodia-labs/datalex/internal/adapters/driving/cli"
	"github.com/custodia-labs/datalex/internal/config"
	"github.com/custodia-labs/datalex/internal/core/domain"
	"github.com/custodia-labs/datalex/internal/core/ports/driven"
	"github.com/custodia-labs/datalex/internal/core/services"
	"github.com/custodia-labs/datalex/internal/logger"
	"github.com/custodia-labs/datalex/internal/normalisers"
	"github.com/custodia-labs/datalex/internal/splitters"
)

// newBootstrap returns the function that wires services once flags are parsed.
// Settings live in configDir regardless of the storage backend.
func newBootstrap(configDir string) cli.BootstrapFunc {
	return func(_ context.Context, opts cli.Options) (*cli.Services, error) {
		return wire(configDir, opts)
	}
}

func wire(configDir string, opts cli.Options) (*cli.Services, error) {
	logger.Section("Startup")

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config file unavailable, settings will not persist: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("using default settings: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	out := &cli.Services{Settings: settingsService}
	engine, err := newEngine(opts, settings, out)
	if err != nil {
		// The workspace still opens and reports the engine as unavailable.
		logger.Warn("engine unavailable: %v", err)
		engine = null.New()
	}

	queue := services.NewActionQueue()
	selection := services.NewSelectionSet(settings.Selection.Policy)
	store := services.NewFragmentStore(engine, queue, selection)

	out.Store = store
	out.Pages = services.NewPaginator(store)
	out.Jobs = services.NewFragmentationJobController(store)
	return out, nil
}

// newEngine builds the local engine over the configured storage. For sqlite it
// also sets out.Changes and out.Close.
func newEngine(opts cli.Options, settings *domain.AppSettings, out *cli.Services) (driven.EngineClient, error) {
	var repo driven.FragmentRepository
	switch opts.Storage {
	case config.StorageMemory:
		repo = memory.NewFragmentStore()
	case config.StorageSQLite, "":
		db, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return nil, err
		}
		repo = db.FragmentStore()
		out.Close = db.Close
		out.Changes = watch.New(opts.DataDir, watch.WithPrefix(sqlite.DBFileName))
	default:
		return nil, fmt.Errorf("%w: unknown storage %q", domain.ErrInvalidConfiguration, opts.Storage)
	}

	inboxDir, err := os.Getwd()
	if err != nil {
		inboxDir = "."
	}
	logger.Debug("engine: page size %d, %d workers, storage %s",
		settings.Pagination.PageSize, settings.Engine.Workers, opts.Storage)

	return local.New(repo, filesystem.New(filesystem.WithNormalisers(normalisers.Default())),
		local.WithPageSize(settings.Pagination.PageSize),
		local.WithWorkers(settings.Engine.Workers),
		local.WithPicker(glob.ForInbox(inboxDir, settings.Engine.Inbox)),
		local.WithSplitters(splitters.Default()),
	), nil
}
