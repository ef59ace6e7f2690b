// Package osutil abstracts the OS lookups used to place config and storage files,
// so tests can redirect or fail them.
package osutil

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
)

// PathProvider resolves and creates the directories mood writes into.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	// Expand resolves a leading "~" to the user's home directory.
	Expand(path string) (string, error)
}

// DefaultPathProvider uses the real OS and home directory.
type DefaultPathProvider struct{}

func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (DefaultPathProvider) Expand(path string) (string, error) {
	return homedir.Expand(path)
}

// Provider is the package-level path provider instance.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}
