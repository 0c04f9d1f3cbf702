package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/adapters/driven/engine/local"
	"github.com/custodia-labs/datalex/internal/adapters/driven/reader/filesystem"
	"github.com/custodia-labs/datalex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/datalex/internal/core/services"
)

// setupTestServices wires the in-memory stack and clears it after the test.
func setupTestServices(t *testing.T, opts ...local.Option) *services.SettingsService {
	t.Helper()

	engine := local.New(memory.NewFragmentStore(), filesystem.New(), opts...)
	store := services.NewFragmentStore(engine, nil, nil)
	settings := services.NewSettingsService(memory.NewConfigStore())
	SetServices(&Services{
		Store:    store,
		Pages:    services.NewPaginator(store),
		Jobs:     services.NewFragmentationJobController(store),
		Settings: settings,
	})
	t.Cleanup(func() { SetServices(nil) })
	return settings
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
