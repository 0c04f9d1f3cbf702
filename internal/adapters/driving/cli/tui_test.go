package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datalex/internal/adapters/driving/tui"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "Fragment the selected texts")
}

func TestNewTUIApp(t *testing.T) {
	setupTestServices(t)

	app, err := newTUIApp()

	require.NoError(t, err)
	assert.NotNil(t, app)
}

func TestNewTUIApp_MissingServices(t *testing.T) {
	SetServices(nil)

	app, err := newTUIApp()

	assert.ErrorIs(t, err, tui.ErrMissingFragmentStore)
	assert.Nil(t, app)
}
