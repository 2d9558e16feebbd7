package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"categoryassign/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrNotFound, "store", "get article", "article 7 missing", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, err, base)
	for _, fragment := range []string{"store", "get article", "article 7 missing"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	assert.ErrorIs(t, err, services.ErrTransient)
	assert.Contains(t, err.Error(), "service failure")
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrNotFound, "store", "", "", nil), "not_found"},
		{fmt.Errorf("outer: %w", services.Wrap(services.ErrValidation, "cli", "", "", nil)), "validation"},
		{services.Wrap(services.ErrConfiguration, "config", "", "", nil), "configuration"},
		{services.Wrap(services.ErrConflict, "workflow", "", "", nil), "conflict"},
		{errors.New("plain"), "failure"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.Kind(tt.err))
	}
}
