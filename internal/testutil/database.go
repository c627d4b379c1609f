// Package testutil provides test helpers shared across the rolodex packages:
// seeded in-memory SQLite databases, an in-memory storage fake and contact fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/rolodex/internal/model"
	"github.com/Veraticus/rolodex/internal/service"
	"github.com/Veraticus/rolodex/internal/storage"
)

// TestDB represents a migrated test database.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	Popularity     model.Popularity
	Contacts       []model.Contact
	Recent         model.Recency
	SkipMigrations bool
}

// SetupTestDB creates a new in-memory SQLite database seeded with contacts.
// Cleanup is registered on t.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.SampleContacts()...)
func SetupTestDB(t *testing.T, contacts ...model.Contact) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Contacts: contacts})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Contacts) > 0 {
		if err := store.SaveContacts(ctx, opts.Contacts); err != nil {
			t.Fatalf("failed to seed contacts: %v", err)
		}
	}
	if len(opts.Popularity) > 0 {
		if err := store.SavePopularity(ctx, opts.Popularity); err != nil {
			t.Fatalf("failed to seed popularity: %v", err)
		}
	}
	if len(opts.Recent) > 0 {
		if err := store.SaveRecent(ctx, opts.Recent); err != nil {
			t.Fatalf("failed to seed recent: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustContacts returns the stored contacts or fails the test.
func (db *TestDB) MustContacts() []model.Contact {
	db.t.Helper()
	contacts, err := db.Storage.LoadContacts(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load contacts: %v", err)
	}
	return contacts
}

// MustPopularity returns the stored popularity counters or fails the test.
func (db *TestDB) MustPopularity() model.Popularity {
	db.t.Helper()
	popularity, err := db.Storage.LoadPopularity(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load popularity: %v", err)
	}
	return popularity
}

// MustRecent returns the stored recently viewed list or fails the test.
func (db *TestDB) MustRecent() model.Recency {
	db.t.Helper()
	recent, err := db.Storage.LoadRecent(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load recent: %v", err)
	}
	return recent
}
