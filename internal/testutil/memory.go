package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/rolodex/internal/model"
)

// MemoryStorage is an in-memory service.Storage. Load*Err fields, when set,
// are returned by the matching load; Save*Err by the matching save.
type MemoryStorage struct {
	LoadContactsErr   error
	LoadPopularityErr error
	LoadRecentErr     error
	SaveContactsErr   error

	popularity model.Popularity
	contacts   []model.Contact
	recent     model.Recency

	// Save counters, for asserting how often each store was written.
	ContactSaves    int
	PopularitySaves int
	RecentSaves     int

	mu sync.Mutex
}

// NewMemoryStorage creates a memory store holding a copy of contacts.
func NewMemoryStorage(contacts ...model.Contact) *MemoryStorage {
	return &MemoryStorage{
		contacts:   append([]model.Contact{}, contacts...),
		popularity: model.Popularity{},
		recent:     model.Recency{},
	}
}

// LoadContacts implements service.ContactStore.
func (m *MemoryStorage) LoadContacts(_ context.Context) ([]model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadContactsErr != nil {
		return nil, m.LoadContactsErr
	}
	return append([]model.Contact{}, m.contacts...), nil
}

// SaveContacts implements service.ContactStore.
func (m *MemoryStorage) SaveContacts(_ context.Context, contacts []model.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveContactsErr != nil {
		return m.SaveContactsErr
	}
	m.contacts = append([]model.Contact{}, contacts...)
	m.LoadContactsErr = nil
	m.ContactSaves++
	return nil
}

// LoadPopularity implements service.PopularityStore.
func (m *MemoryStorage) LoadPopularity(_ context.Context) (model.Popularity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadPopularityErr != nil {
		return nil, m.LoadPopularityErr
	}
	out := make(model.Popularity, len(m.popularity))
	for id, n := range m.popularity {
		out[id] = n
	}
	return out, nil
}

// SavePopularity implements service.PopularityStore.
func (m *MemoryStorage) SavePopularity(_ context.Context, popularity model.Popularity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.popularity = make(model.Popularity, len(popularity))
	for id, n := range popularity {
		m.popularity[id] = n
	}
	m.LoadPopularityErr = nil
	m.PopularitySaves++
	return nil
}

// LoadRecent implements service.RecencyStore.
func (m *MemoryStorage) LoadRecent(_ context.Context) (model.Recency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadRecentErr != nil {
		return nil, m.LoadRecentErr
	}
	return append(model.Recency{}, m.recent...), nil
}

// SaveRecent implements service.RecencyStore.
func (m *MemoryStorage) SaveRecent(_ context.Context, recent model.Recency) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = append(model.Recency{}, recent...)
	m.LoadRecentErr = nil
	m.RecentSaves++
	return nil
}

// Migrate implements service.Storage.
func (m *MemoryStorage) Migrate(_ context.Context) error { return nil }

// Close implements service.Storage.
func (m *MemoryStorage) Close() error { return nil }
