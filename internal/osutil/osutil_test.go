package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
)

// MockPathProvider is a mock implementation for testing.
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
	ExpandFn        func(path string) (string, error)
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func (m *MockPathProvider) Expand(path string) (string, error) {
	if m.ExpandFn != nil {
		return m.ExpandFn(path)
	}
	return path, nil
}

func TestDefaultPathProvider_MkdirAll(t *testing.T) {
	p := DefaultPathProvider{}
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	if err := p.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("MkdirAll returned error: %v", err)
	}

	info, err := os.Stat(testDir)
	if err != nil {
		t.Fatalf("Failed to stat created directory: %v", err)
	}
	if !info.IsDir() {
		t.Error("MkdirAll did not create a directory")
	}
}

func TestDefaultPathProvider_Expand(t *testing.T) {
	p := DefaultPathProvider{}

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}

	got, err := p.Expand("~/journal")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != filepath.Join(home, "journal") {
		t.Errorf("Expand(~/journal) = %q, expected %q", got, filepath.Join(home, "journal"))
	}

	got, err = p.Expand("/abs/path")
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != "/abs/path" {
		t.Errorf("Expand(/abs/path) = %q, expected unchanged", got)
	}
}

func TestSetAndResetProvider(t *testing.T) {
	defer ResetProvider()

	mock := &MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "/mock/config", nil
		},
	}
	SetProvider(mock)

	if Provider != mock {
		t.Error("SetProvider did not set the provider")
	}
	dir, _ := Provider.UserConfigDir()
	if dir != "/mock/config" {
		t.Errorf("Expected /mock/config, got %s", dir)
	}

	ResetProvider()
	if _, ok := Provider.(DefaultPathProvider); !ok {
		t.Error("ResetProvider did not reset to DefaultPathProvider")
	}
}

func TestMockPathProvider_Error(t *testing.T) {
	expectedErr := errors.New("mock error")
	mock := &MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "", expectedErr },
		MkdirAllFn:      func(path string, perm os.FileMode) error { return expectedErr },
	}

	if _, err := mock.UserConfigDir(); err != expectedErr {
		t.Errorf("Expected error %v, got %v", expectedErr, err)
	}
	if err := mock.MkdirAll("/test", 0755); err != expectedErr {
		t.Errorf("Expected error %v, got %v", expectedErr, err)
	}
}
