//go:build !windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine-wide configuration directory.
func SystemConfigDir() string {
	return filepath.Join(string(os.PathSeparator), "etc", appDir)
}
