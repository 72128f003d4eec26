//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine-wide configuration directory, or ""
// when ProgramData is not set.
func SystemConfigDir() string {
	pd := os.Getenv("ProgramData")
	if pd == "" {
		return ""
	}
	return filepath.Join(pd, appDir)
}
