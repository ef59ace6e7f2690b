package storage

import (
	"path/filepath"

	"github.com/xolan/mood/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "mood"
	// StoreDir is the directory under the app config dir holding key-value slots
	StoreDir = "store"
)

// GetStorageDir returns the directory the key-value medium writes into.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the directory if it doesn't exist.
func GetStorageDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, AppName, StoreDir)
	if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}

// ResolveStorageDir returns override, expanded and created, or the default directory when empty.
func ResolveStorageDir(override string) (string, error) {
	if override == "" {
		return GetStorageDir()
	}

	dir, err := osutil.Provider.Expand(override)
	if err != nil {
		return "", err
	}
	if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
