package storage

import (
	"errors"
	"fmt"

	"github.com/xolan/mood/internal/kv"
)

const (
	// BackupSuffix separates the entries key from the backup rotation number
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backups to keep
	MaxBackupCount = 3
)

// BackupInfo contains information about a backup slot
type BackupInfo struct {
	Number int    // The backup number (1 is the most recent)
	Key    string // The key-value slot holding the backup
	Bytes  int    // Size of the preserved payload
}

// backupKey returns the slot for backup n, e.g. mood_entries.bak.1
func backupKey(key string, n int) string {
	return fmt.Sprintf("%s%s.%d", key, BackupSuffix, n)
}

// rotateBackups shifts existing backups to make room for a new one.
// .bak.2 -> .bak.3, then .bak.1 -> .bak.2; the oldest is dropped.
func (s *EntryStore) rotateBackups() error {
	if err := s.kv.Delete(backupKey(s.key, MaxBackupCount)); err != nil {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		val, err := s.kv.Get(backupKey(s.key, i))
		if err != nil {
			if errors.Is(err, kv.ErrNotFound) {
				continue
			}
			return err
		}
		if err := s.kv.Set(backupKey(s.key, i+1), val); err != nil {
			return err
		}
		if err := s.kv.Delete(backupKey(s.key, i)); err != nil {
			return err
		}
	}
	return nil
}

// createBackup rotates backups and stores raw as .bak.1.
// Caller must hold s.mu.
func (s *EntryStore) createBackup(raw []byte) error {
	if raw == nil {
		return nil
	}
	if err := s.rotateBackups(); err != nil {
		return err
	}
	return s.kv.Set(backupKey(s.key, 1), raw)
}

// listBackups returns present backups, most recent first. Caller must hold s.mu.
func (s *EntryStore) listBackups() ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		val, err := s.kv.Get(backupKey(s.key, i))
		if err != nil {
			if errors.Is(err, kv.ErrNotFound) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Key: backupKey(s.key, i), Bytes: len(val)})
	}
	return backups, nil
}

// ListBackups returns the payloads preserved before a corrupted slot was overwritten.
// .bak.1 is the most recent. Returns an empty slice if no backups exist.
func (s *EntryStore) ListBackups() ([]BackupInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listBackups()
}

// RestoreBackup copies backup n back into the entries slot.
// The current payload, if any, is preserved as the newest backup first.
func (s *EntryStore) RestoreBackup(n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored, err := s.kv.Get(backupKey(s.key, n))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	current, err := s.kv.Get(s.key)
	switch {
	case err == nil:
		if err := s.createBackup(current); err != nil {
			return &WriteError{Op: "restore", Key: s.key, Err: err}
		}
	case !errors.Is(err, kv.ErrNotFound):
		return &WriteError{Op: "restore", Key: s.key, Err: err}
	}

	if err := s.kv.Set(s.key, restored); err != nil {
		return &WriteError{Op: "restore", Key: s.key, Err: err}
	}
	return nil
}
