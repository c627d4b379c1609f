// Package directory implements the contact directory operations on top of a
// storage backend, a categorizer, the duplicate checker and the search engine.
//
// Every operation reloads the state it needs from storage, mutates a transient
// copy and writes the complete copy back only after the mutation succeeded.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/rolodex/internal/classification"
	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/dedupe"
	"github.com/Veraticus/rolodex/internal/engagement"
	"github.com/Veraticus/rolodex/internal/model"
	"github.com/Veraticus/rolodex/internal/search"
	"github.com/Veraticus/rolodex/internal/service"
	"github.com/Veraticus/rolodex/internal/similarity"
)

// Directory is the explicit context threaded through every command: the
// trained categorizer plus the store handles.
type Directory struct {
	storage     service.Storage
	categorizer classification.Categorizer
	checker     *dedupe.Checker
	engine      *search.Engine
	now         func() time.Time
}

// Config holds the tunable thresholds.
type Config struct {
	Scorer          similarity.Scorer
	SearchThreshold int
	NameThreshold   int
}

// DefaultConfig returns the default thresholds and the Indel scorer.
func DefaultConfig() Config {
	return Config{
		Scorer:          similarity.Indel{},
		SearchThreshold: search.DefaultThreshold,
		NameThreshold:   dedupe.DefaultNameThreshold,
	}
}

// New creates a directory with the default configuration.
func New(storage service.Storage, categorizer classification.Categorizer) *Directory {
	return NewWithConfig(storage, categorizer, DefaultConfig())
}

// NewWithConfig creates a directory with custom thresholds.
func NewWithConfig(storage service.Storage, categorizer classification.Categorizer, config Config) *Directory {
	return &Directory{
		storage:     storage,
		categorizer: categorizer,
		checker:     dedupe.NewChecker(config.Scorer, config.NameThreshold),
		engine:      search.NewEngine(config.Scorer, config.SearchThreshold),
		now:         time.Now,
	}
}

// AddContact validates, deduplicates, categorizes and appends a new contact.
func (d *Directory) AddContact(ctx context.Context, fields model.ContactFields) (*model.Contact, error) {
	fields = fields.Trimmed()
	if err := validateRequired(fields); err != nil {
		return nil, err
	}

	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	if collision := d.checker.Check(fields, contacts); collision != nil {
		slog.Debug("Rejected contact", "name", fields.Name, "rule", collision.Rule, "existing_id", collision.Existing.ID)
		return nil, common.NewCollisionError(collision.Reason)
	}

	contact := model.Contact{
		ID:        model.NewContactID(),
		Name:      fields.Name,
		Phone:     fields.Phone,
		Email:     fields.Email,
		Note:      fields.Note,
		DateAdded: d.timestamp(),
		Category:  d.categorizer.Predict(fields.Name, fields.Email),
	}

	contacts = append(contacts, contact)
	if err := d.storage.SaveContacts(ctx, contacts); err != nil {
		return nil, fmt.Errorf("failed to save contacts: %w", err)
	}

	slog.Debug("Added contact", "id", contact.ID, "category", contact.Category)
	return &contact, nil
}

// EditContact replaces the non-empty fields of the contact with the given ID.
// The category is predicted again; ID and date_added are preserved.
func (d *Directory) EditContact(ctx context.Context, id string, update model.ContactFields) (*model.Contact, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	index := indexOf(contacts, id)
	if index < 0 {
		return nil, common.NewValidationError("selection", "no contact with id "+id)
	}

	fields := contacts[index].Fields().Merge(update.Trimmed())
	if err := validateRequired(fields); err != nil {
		return nil, err
	}

	if collision := d.checker.CheckExcluding(fields, contacts, id); collision != nil {
		return nil, common.NewCollisionError(collision.Reason)
	}

	edited := contacts[index]
	edited.Name = fields.Name
	edited.Phone = fields.Phone
	edited.Email = fields.Email
	edited.Note = fields.Note
	edited.Category = d.categorizer.Predict(fields.Name, fields.Email)
	contacts[index] = edited

	if err := d.storage.SaveContacts(ctx, contacts); err != nil {
		return nil, fmt.Errorf("failed to save contacts: %w", err)
	}

	slog.Debug("Edited contact", "id", id, "category", edited.Category)
	return &edited, nil
}

// DeleteContact removes the contact and its popularity counter. The recently
// viewed list keeps any entry for it.
func (d *Directory) DeleteContact(ctx context.Context, id string) (*model.Contact, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	index := indexOf(contacts, id)
	if index < 0 {
		return nil, common.NewValidationError("selection", "no contact with id "+id)
	}

	// Load before the first write so a load failure leaves both stores untouched.
	popularity, err := d.loadPopularity(ctx)
	if err != nil {
		return nil, err
	}

	deleted := contacts[index]
	remaining := make([]model.Contact, 0, len(contacts)-1)
	remaining = append(remaining, contacts[:index]...)
	remaining = append(remaining, contacts[index+1:]...)

	if err := d.storage.SaveContacts(ctx, remaining); err != nil {
		return nil, fmt.Errorf("failed to save contacts: %w", err)
	}

	popularity.Remove(id)
	if err := d.storage.SavePopularity(ctx, popularity.Counts()); err != nil {
		return nil, fmt.Errorf("failed to save popularity: %w", err)
	}

	slog.Debug("Deleted contact", "id", id)
	return &deleted, nil
}

// Search returns the contacts matching query in store order. Each match is
// counted as a view: its popularity goes up by one and it moves to the front
// of the recently viewed list.
func (d *Directory) Search(ctx context.Context, query string) ([]model.Contact, error) {
	if strings.TrimSpace(query) == "" {
		return nil, common.NewValidationError("query", "search query is empty")
	}

	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	matches := d.engine.Search(query, contacts)
	if len(matches) == 0 {
		return []model.Contact{}, nil
	}

	popularity, err := d.loadPopularity(ctx)
	if err != nil {
		return nil, err
	}
	recency, err := d.loadRecency(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range matches {
		popularity.Increment(m.Contact.ID)
		recency.Touch(m.Contact.ID)
		slog.Debug("Search match", "id", m.Contact.ID, "field", m.Field, "score", m.Score)
	}

	if err := d.storage.SavePopularity(ctx, popularity.Counts()); err != nil {
		return nil, fmt.Errorf("failed to save popularity: %w", err)
	}
	if err := d.storage.SaveRecent(ctx, recency.IDs()); err != nil {
		return nil, fmt.Errorf("failed to save recent: %w", err)
	}

	return search.Contacts(matches), nil
}

// RankedListing returns all contacts, most viewed first, ties by case-insensitive name.
func (d *Directory) RankedListing(ctx context.Context) ([]model.Contact, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}
	popularity, err := d.loadPopularity(ctx)
	if err != nil {
		return nil, err
	}
	return popularity.Rank(contacts), nil
}

// Views returns the search-hit count per contact ID.
func (d *Directory) Views(ctx context.Context) (model.Popularity, error) {
	popularity, err := d.loadPopularity(ctx)
	if err != nil {
		return nil, err
	}
	return popularity.Counts(), nil
}

// Contact returns the contact with the given ID.
func (d *Directory) Contact(ctx context.Context, id string) (*model.Contact, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}
	index := indexOf(contacts, id)
	if index < 0 {
		return nil, fmt.Errorf("contact %s: %w", id, common.ErrNotFound)
	}
	return &contacts[index], nil
}

// SortByName reorders the stored contact list by case-insensitive name and
// returns the new order.
func (d *Directory) SortByName(ctx context.Context) ([]model.Contact, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		return strings.ToLower(contacts[i].Name) < strings.ToLower(contacts[j].Name)
	})

	if err := d.storage.SaveContacts(ctx, contacts); err != nil {
		return nil, fmt.Errorf("failed to save contacts: %w", err)
	}
	return contacts, nil
}

// Categories returns the distinct non-empty categories in use, sorted.
func (d *Directory) Categories(ctx context.Context) ([]string, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, c := range contacts {
		if c.Category == "" {
			continue
		}
		if _, ok := seen[c.Category]; !ok {
			seen[c.Category] = struct{}{}
			categories = append(categories, c.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// FilterByCategory returns the contacts whose category equals label, ignoring case.
func (d *Directory) FilterByCategory(ctx context.Context, label string) ([]model.Contact, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, common.NewValidationError("category", "category is empty")
	}

	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := []model.Contact{}
	for _, c := range contacts {
		if strings.EqualFold(c.Category, label) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Labels returns the categorizer's label set.
func (d *Directory) Labels() []string {
	return d.categorizer.Labels()
}

func (d *Directory) timestamp() time.Time {
	return d.now().Truncate(time.Second)
}

// loadContacts reads the contact list. A malformed store is replaced by an
// empty list; the next save overwrites it.
func (d *Directory) loadContacts(ctx context.Context) ([]model.Contact, error) {
	contacts, err := d.storage.LoadContacts(ctx)
	if errors.Is(err, common.ErrMalformedStore) {
		common.LogWarn("Contact store is malformed, using an empty list", common.Fields{"error": err})
		return []model.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return contacts, nil
}

func (d *Directory) loadPopularity(ctx context.Context) (*engagement.Popularity, error) {
	counts, err := d.storage.LoadPopularity(ctx)
	if errors.Is(err, common.ErrMalformedStore) {
		common.LogWarn("Popularity store is malformed, starting from zero", common.Fields{"error": err})
		return engagement.NewPopularity(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load popularity: %w", err)
	}
	return engagement.NewPopularity(counts), nil
}

func (d *Directory) loadRecency(ctx context.Context) (*engagement.Recency, error) {
	ids, err := d.storage.LoadRecent(ctx)
	if errors.Is(err, common.ErrMalformedStore) {
		common.LogWarn("Recent store is malformed, starting empty", common.Fields{"error": err})
		return engagement.NewRecency(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recent: %w", err)
	}
	return engagement.NewRecency(ids), nil
}

func validateRequired(fields model.ContactFields) error {
	switch {
	case fields.Name == "":
		return common.NewValidationError("name", "is required")
	case fields.Phone == "":
		return common.NewValidationError("phone", "is required")
	case fields.Email == "":
		return common.NewValidationError("email", "is required")
	}
	return nil
}

func indexOf(contacts []model.Contact, id string) int {
	for i, c := range contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
