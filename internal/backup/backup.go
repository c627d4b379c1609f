// Package backup creates, lists and restores timestamped JSON snapshots of the contact list.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/rolodex/internal/config"
	"github.com/Veraticus/rolodex/internal/model"
	"github.com/Veraticus/rolodex/internal/service"
	"github.com/Veraticus/rolodex/internal/storage"
)

const (
	filePrefix = "contacts_backup_"
	fileSuffix = ".json"
	timeLayout = "20060102_150405"
)

// Common errors.
var (
	ErrBackupNotFound = errors.New("backup not found")
	ErrBackupExists   = errors.New("backup already exists")
	ErrInvalidName    = errors.New("invalid backup name")
)

// Info describes a backup file.
type Info struct {
	CreatedAt time.Time
	Name      string
	Size      int64
	Contacts  int
}

// Manager handles backup operations for a contact store.
type Manager struct {
	store service.ContactStore
	now   func() time.Time
	dir   string
}

// NewManager creates a manager writing backups into dir.
func NewManager(dir string, store service.ContactStore) (*Manager, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty backup directory", ErrInvalidName)
	}
	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &Manager{
		dir:   dir,
		store: store,
		now:   time.Now,
	}, nil
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.dir
}

// FileName returns the backup file name for a snapshot taken at t.
func FileName(t time.Time) string {
	return filePrefix + t.Format(timeLayout) + fileSuffix
}

// ParseFileName extracts the snapshot time from a backup file name.
func ParseFileName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	t, err := time.ParseInLocation(timeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Create snapshots the current contact list.
func (m *Manager) Create(ctx context.Context) (*Info, error) {
	contacts, err := m.store.LoadContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	createdAt := m.now()
	name := FileName(createdAt)
	path := filepath.Join(m.dir, name)
	if _, statErr := os.Stat(path); statErr == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackupExists, name)
	}

	data, err := storage.EncodeContacts(contacts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contacts: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			slog.Error("failed to remove temporary backup file", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to finalize backup: %w", err)
	}

	slog.Debug("Created backup", "name", name, "contacts", len(contacts))

	return &Info{
		Name:      name,
		CreatedAt: createdAt.Truncate(time.Second),
		Size:      int64(len(data)),
		Contacts:  len(contacts),
	}, nil
}

// List returns all backups, newest first. Unreadable backups are listed with a zero count.
func (m *Manager) List(_ context.Context) ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		createdAt, ok := ParseFileName(entry.Name())
		if !ok {
			continue
		}

		info := Info{Name: entry.Name(), CreatedAt: createdAt}
		if fi, statErr := entry.Info(); statErr == nil {
			info.Size = fi.Size()
		}
		if contacts, readErr := m.read(entry.Name()); readErr == nil {
			info.Contacts = len(contacts)
		} else {
			slog.Debug("skipping contact count for unreadable backup", "name", entry.Name(), "error", readErr)
		}
		backups = append(backups, info)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore replaces the contact list with the contents of the named backup
// and returns the number of contacts restored.
func (m *Manager) Restore(ctx context.Context, name string) (int, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	contacts, err := m.read(name)
	if err != nil {
		return 0, err
	}

	if err := m.store.SaveContacts(ctx, contacts); err != nil {
		return 0, fmt.Errorf("failed to save restored contacts: %w", err)
	}

	slog.Debug("Restored backup", "name", name, "contacts", len(contacts))
	return len(contacts), nil
}

// Delete removes the named backup.
func (m *Manager) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return fmt.Errorf("failed to remove backup: %w", err)
	}
	return nil
}

func (m *Manager) read(name string) ([]model.Contact, error) {
	// #nosec G304 - name is validated to be a bare backup file name
	data, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return storage.DecodeContacts(data)
}

// validateName rejects anything that is not a bare file name inside the backup directory.
func validateName(name string) error {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if filepath.Base(name) != name || !strings.HasSuffix(name, fileSuffix) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
