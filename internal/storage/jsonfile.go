package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/config"
	"github.com/Veraticus/rolodex/internal/model"
)

// File names used by JSONStorage inside its directory.
const (
	ContactsFile   = "contacts.json"
	PopularityFile = "popularity.json"
	RecentFile     = "recent.json"
)

// ContactRecord is the JSON form of a contact, shared by the JSON store and backups.
type ContactRecord struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	DateAdded string `json:"date_added"`
	Category  string `json:"category"`
	Note      string `json:"note"`
}

// NewContactRecord converts a contact to its JSON form.
func NewContactRecord(c model.Contact) ContactRecord {
	return ContactRecord{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		DateAdded: c.DateAddedString(),
		Category:  c.Category,
		Note:      c.Note,
	}
}

// Contact converts the record back. Records without an ID get a deterministic
// one, and a date_added in another format is kept as raw text.
func (r ContactRecord) Contact() model.Contact {
	dateAdded, raw := model.DateAddedFrom(r.DateAdded)

	id := r.ID
	if id == "" {
		id = model.LegacyContactID(r.Name, r.Phone, r.Email)
	}

	return model.Contact{
		ID:           id,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		DateAdded:    dateAdded,
		RawDateAdded: raw,
		Category:     r.Category,
		Note:         r.Note,
	}
}

// DecodeContacts parses a JSON array of contact records.
func DecodeContacts(data []byte) ([]model.Contact, error) {
	var records []ContactRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedStore, err)
	}

	contacts := make([]model.Contact, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		c := r.Contact()
		if _, dup := seen[c.ID]; dup {
			if r.ID != "" {
				return nil, fmt.Errorf("%w: duplicate id %s", common.ErrMalformedStore, r.ID)
			}
			// Identical legacy records: disambiguate by position.
			c.ID = model.LegacyContactID(r.Name, r.Phone, fmt.Sprintf("%s#%d", r.Email, i))
		}
		seen[c.ID] = struct{}{}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// EncodeContacts renders contacts as an indented JSON array of records.
func EncodeContacts(contacts []model.Contact) ([]byte, error) {
	records := make([]ContactRecord, len(contacts))
	for i, c := range contacts {
		records[i] = NewContactRecord(c)
	}
	return json.MarshalIndent(records, "", "    ")
}

// JSONStorage implements service.Storage as three JSON files in one directory.
type JSONStorage struct {
	dir string
}

// NewJSONStorage creates a JSON file store rooted at dir.
func NewJSONStorage(dir string) (*JSONStorage, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	return &JSONStorage{dir: dir}, nil
}

// Dir returns the directory holding the store's files.
func (s *JSONStorage) Dir() string {
	return s.dir
}

// Migrate ensures the store directory exists.
func (s *JSONStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return config.EnsureDir(s.dir)
}

// Close is a no-op; every operation opens and closes its own file.
func (s *JSONStorage) Close() error {
	return nil
}

// LoadContacts implements service.ContactStore. A missing file is an empty list.
func (s *JSONStorage) LoadContacts(ctx context.Context) ([]model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := s.read(ContactsFile)
	if err != nil || data == nil {
		return []model.Contact{}, err
	}
	return DecodeContacts(data)
}

// SaveContacts implements service.ContactStore.
func (s *JSONStorage) SaveContacts(ctx context.Context, contacts []model.Contact) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateContacts(contacts); err != nil {
		return err
	}

	data, err := EncodeContacts(contacts)
	if err != nil {
		return fmt.Errorf("failed to encode contacts: %w", err)
	}
	return s.write(ContactsFile, data)
}

// LoadPopularity implements service.PopularityStore.
func (s *JSONStorage) LoadPopularity(ctx context.Context) (model.Popularity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	popularity := make(model.Popularity)
	if err := s.readJSON(PopularityFile, &popularity); err != nil {
		return nil, err
	}
	return popularity, nil
}

// SavePopularity implements service.PopularityStore.
func (s *JSONStorage) SavePopularity(ctx context.Context, popularity model.Popularity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePopularity(popularity); err != nil {
		return err
	}
	if popularity == nil {
		popularity = model.Popularity{}
	}
	return s.writeJSON(PopularityFile, popularity)
}

// LoadRecent implements service.RecencyStore.
func (s *JSONStorage) LoadRecent(ctx context.Context) (model.Recency, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	recent := model.Recency{}
	if err := s.readJSON(RecentFile, &recent); err != nil {
		return nil, err
	}
	return recent, nil
}

// SaveRecent implements service.RecencyStore.
func (s *JSONStorage) SaveRecent(ctx context.Context, recent model.Recency) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if recent == nil {
		recent = model.Recency{}
	}
	return s.writeJSON(RecentFile, recent)
}

// read returns the file contents, or nil data when the file does not exist.
func (s *JSONStorage) read(name string) ([]byte, error) {
	// #nosec G304 - name is one of the fixed store file names
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func (s *JSONStorage) readJSON(name string, v any) error {
	data, err := s.read(name)
	if err != nil || data == nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrMalformedStore, name, err)
	}
	return nil
}

func (s *JSONStorage) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return s.write(name, data)
}

// write replaces the file atomically via a temporary file and rename.
func (s *JSONStorage) write(name string, data []byte) error {
	if err := config.EnsureDir(s.dir); err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			slog.Error("failed to remove temporary file", "path", tmpPath, "error", rmErr)
		}
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
