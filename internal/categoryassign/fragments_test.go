package categoryassign

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"categoryassign/internal/form"
	"categoryassign/internal/services"
)

func TestFragmentDeclaresCategoryPicker(t *testing.T) {
	f, err := form.Parse(form.TransitionContext, Fragment())
	require.NoError(t, err)

	field := f.Field("category_id", "options")
	require.NotNil(t, field)
	assert.Equal(t, "category", field.Type)
	require.NotEmpty(t, field.Options)
	assert.Equal(t, "", field.Options[0].Value)
}

func TestInstallForms(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "forms")

	path, err := InstallForms(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FragmentFile), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Fragment(), data)

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	_, err = InstallForms(dir, false)
	assert.ErrorIs(t, err, services.ErrConflict)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))

	_, err = InstallForms(dir, true)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Fragment(), data)
}

func TestInstallFormsRequiresDirectory(t *testing.T) {
	_, err := InstallForms("", false)
	assert.ErrorIs(t, err, services.ErrConfiguration)
}
