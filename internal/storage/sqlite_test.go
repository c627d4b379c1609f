package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rolodex/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func createTestContacts() []model.Contact {
	added := time.Date(2024, 3, 9, 14, 30, 0, 0, time.Local)
	return []model.Contact{
		{ID: "c1", Name: "John Smith", Phone: "555-1234", Email: "john@company.com", DateAdded: added, Category: "Work", Note: "desk 4"},
		{ID: "c2", Name: "Mom", Phone: "555-0000", Email: "mom@family.com", DateAdded: added.Add(time.Hour), Category: "Family"},
		{ID: "c3", Name: "Legacy", Phone: "555-9999", Email: "old@example.com"},
	}
}

func assertSameContacts(t *testing.T, want, got []model.Contact) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Fields(), got[i].Fields())
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.Equal(t, want[i].FormatDateAdded(), got[i].FormatDateAdded())
	}
}

func TestSQLiteStorage_ContactsRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	contacts := createTestContacts()
	require.NoError(t, store.SaveContacts(ctx, contacts))

	loaded, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assertSameContacts(t, contacts, loaded)
	assert.True(t, loaded[2].DateAdded.IsZero())
}

func TestSQLiteStorage_SaveReplacesAndKeepsOrder(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	contacts := createTestContacts()
	require.NoError(t, store.SaveContacts(ctx, contacts))

	reordered := []model.Contact{contacts[2], contacts[0]}
	require.NoError(t, store.SaveContacts(ctx, reordered))

	loaded, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assertSameContacts(t, reordered, loaded)
}

func TestSQLiteStorage_EmptyStore(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	contacts, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)

	popularity, err := store.LoadPopularity(ctx)
	require.NoError(t, err)
	assert.Empty(t, popularity)

	recent, err := store.LoadRecent(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSQLiteStorage_SaveContactsValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		wantErr  error
		name     string
		contacts []model.Contact
	}{
		{
			name:     "missing id",
			contacts: []model.Contact{{Name: "No ID"}},
			wantErr:  ErrInvalidContact,
		},
		{
			name:     "duplicate id",
			contacts: []model.Contact{{ID: "x", Name: "A"}, {ID: "x", Name: "B"}},
			wantErr:  ErrDuplicateContact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveContacts(ctx, tt.contacts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, store.SaveContacts(nil, nil), ErrNilContext)
}

func TestSQLiteStorage_PopularityAndRecent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	popularity := model.Popularity{"c1": 3, "c2": 1}
	require.NoError(t, store.SavePopularity(ctx, popularity))

	loaded, err := store.LoadPopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, popularity, loaded)

	require.NoError(t, store.SavePopularity(ctx, model.Popularity{"c2": 2}))
	loaded, err = store.LoadPopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Popularity{"c2": 2}, loaded)

	assert.ErrorIs(t, store.SavePopularity(ctx, model.Popularity{"c1": -1}), ErrInvalidCounter)

	recent := model.Recency{"c3", "c1", "c2"}
	require.NoError(t, store.SaveRecent(ctx, recent))
	loadedRecent, err := store.LoadRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, recent, loadedRecent)
}

func TestSQLiteStorage_LoadAllSaveAllIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveContacts(ctx, createTestContacts()))
	require.NoError(t, store.SavePopularity(ctx, model.Popularity{"c1": 4}))
	require.NoError(t, store.SaveRecent(ctx, model.Recency{"c2", "c1"}))

	for i := 0; i < 2; i++ {
		contacts, err := store.LoadContacts(ctx)
		require.NoError(t, err)
		popularity, err := store.LoadPopularity(ctx)
		require.NoError(t, err)
		recent, err := store.LoadRecent(ctx)
		require.NoError(t, err)

		require.NoError(t, store.SaveContacts(ctx, contacts))
		require.NoError(t, store.SavePopularity(ctx, popularity))
		require.NoError(t, store.SaveRecent(ctx, recent))
	}

	contacts, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assertSameContacts(t, createTestContacts(), contacts)
	popularity, err := store.LoadPopularity(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Popularity{"c1": 4}, popularity)
	recent, err := store.LoadRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Recency{"c2", "c1"}, recent)
}

func TestSQLiteStorage_NonStandardDate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `
		INSERT INTO contacts (id, position, name, phone, email, date_added)
		VALUES ('bad', 0, 'Bad', '1', 'b@x.com', 'yesterday')
	`)
	require.NoError(t, err)

	contacts, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "yesterday", contacts[0].RawDateAdded)

	require.NoError(t, store.SaveContacts(ctx, contacts))
	var stored string
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT date_added FROM contacts WHERE id = 'bad'`).Scan(&stored))
	assert.Equal(t, "yesterday", stored)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "rolodex.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveContacts(ctx, createTestContacts()))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	contacts, err := reopened.LoadContacts(ctx)
	require.NoError(t, err)
	assertSameContacts(t, createTestContacts(), contacts)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}
