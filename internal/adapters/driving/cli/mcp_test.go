package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/datalex/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	if assert.NotNil(t, flag) {
		assert.Equal(t, "0", flag.DefValue)
		assert.Equal(t, "p", flag.Shorthand)
	}
}

func TestMCPServe_MissingServices(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingFragmentStore)
}
