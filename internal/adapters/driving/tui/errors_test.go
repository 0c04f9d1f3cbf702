package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingFragmentStore,
		ErrMissingPaginator,
		ErrMissingJobController,
	}

	for i := range errs {
		for j := range errs {
			if i != j {
				assert.NotEqual(t, errs[i], errs[j])
			}
		}
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "tui: fragment store is required", ErrMissingFragmentStore.Error())
	assert.Equal(t, "tui: paginator is required", ErrMissingPaginator.Error())
	assert.Equal(t, "tui: fragmentation job controller is required", ErrMissingJobController.Error())
}
