// Command datalex loads plain-text documents into a paged workspace and
// splits them into fragments.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/datalex/internal/adapters/driving/cli"
	"github.com/custodia-labs/datalex/internal/config"
	"github.com/custodia-labs/datalex/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	defer logger.Sync()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.ResolveDirs()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "datalex: %v\n", err)
		return 1
	}
	logger.SetVerbose(cfg.Verbose)

	cli.SetVersion(version)
	cli.SetDefaults(cli.Options{
		DataDir: cfg.DataDir,
		Storage: cfg.Storage,
		Verbose: cfg.Verbose,
	})
	cli.SetBootstrap(newBootstrap(cfg.ConfigDir))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() {
		if err := cli.Shutdown(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
	}()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
