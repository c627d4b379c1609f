// Package service defines the interfaces between the directory core and its collaborators.
package service

import (
	"context"

	"github.com/Veraticus/rolodex/internal/model"
)

// ContactStore persists the full contact list. Order is significant and preserved.
type ContactStore interface {
	LoadContacts(ctx context.Context) ([]model.Contact, error)
	SaveContacts(ctx context.Context, contacts []model.Contact) error
}

// PopularityStore persists search-hit counters keyed by contact ID.
type PopularityStore interface {
	LoadPopularity(ctx context.Context) (model.Popularity, error)
	SavePopularity(ctx context.Context, popularity model.Popularity) error
}

// RecencyStore persists the recently viewed list.
type RecencyStore interface {
	LoadRecent(ctx context.Context) (model.Recency, error)
	SaveRecent(ctx context.Context, recent model.Recency) error
}

// Storage is the complete persistence layer used by the directory.
type Storage interface {
	ContactStore
	PopularityStore
	RecencyStore

	// Migrate prepares the backing store for use.
	Migrate(ctx context.Context) error
	Close() error
}
