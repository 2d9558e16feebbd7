package categoryassign

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"categoryassign/internal/services"
)

// FragmentFile is the transition editor fragment looked up in the forms
// directory.
const FragmentFile = "transition.xml"

//go:embed forms/*.xml
var fragments embed.FS

// Fragment returns the bundled transition editor fragment.
func Fragment() []byte {
	data, err := fragments.ReadFile("forms/" + FragmentFile)
	if err != nil {
		panic(fmt.Sprintf("categoryassign: missing embedded fragment: %v", err))
	}
	return data
}

// InstallForms writes the bundled fragment into dir and returns its path. An
// existing fragment is only replaced when force is set.
func InstallForms(dir string, force bool) (string, error) {
	if dir == "" {
		return "", services.Wrap(services.ErrConfiguration, "categoryassign", "install forms", "forms directory not configured", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create forms directory: %w", err)
	}
	path := filepath.Join(dir, FragmentFile)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, services.Wrap(services.ErrConflict, "categoryassign", "install forms", path+" already exists", nil)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat fragment: %w", err)
		}
	}
	if err := os.WriteFile(path, Fragment(), 0o644); err != nil {
		return "", fmt.Errorf("write fragment: %w", err)
	}
	return path, nil
}
