package directory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rolodex/internal/classification"
	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/model"
	"github.com/Veraticus/rolodex/internal/service"
	"github.com/Veraticus/rolodex/internal/storage"
	"github.com/Veraticus/rolodex/internal/testutil"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 500, time.Local)

func newTestDirectory(store service.Storage) *Directory {
	d := New(store, classification.New())
	d.now = func() time.Time { return testNow }
	return d
}

func contactIDs(contacts []model.Contact) []string {
	ids := make([]string, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	return ids
}

func contactNames(contacts []model.Contact) []string {
	names := make([]string, len(contacts))
	for i, c := range contacts {
		names[i] = c.Name
	}
	return names
}

func TestDirectory_AddContact(t *testing.T) {
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	d := newTestDirectory(store)
	ctx := context.Background()

	added, err := d.AddContact(ctx, model.ContactFields{
		Name:  " Jane Doe ",
		Phone: "555-7777",
		Email: "jane@work.com",
		Note:  "met at conference",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Jane Doe", added.Name)
	assert.Equal(t, "met at conference", added.Note)
	assert.Equal(t, "2024-06-01 12:00:00", added.FormatDateAdded())
	assert.Equal(t, classification.New().Predict("Jane Doe", "jane@work.com"), added.Category)
	assert.Contains(t, d.Labels(), added.Category)

	contacts, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 5)
	assert.Equal(t, added.ID, contacts[4].ID)
	assert.Equal(t, 1, store.ContactSaves)
}

func TestDirectory_AddContactCollisions(t *testing.T) {
	tests := []struct {
		name       string
		fields     model.ContactFields
		wantReason string
	}{
		{
			name:       "similar name",
			fields:     model.ContactFields{Name: "Jon Smith", Phone: "1", Email: "jon@elsewhere.com"},
			wantReason: "name collision with John Smith",
		},
		{
			name:       "email differs only in case",
			fields:     model.ContactFields{Name: "Zed", Phone: "999", Email: "MOM@GMAIL.COM"},
			wantReason: "email exists",
		},
		{
			name:       "identical phone",
			fields:     model.ContactFields{Name: "Zed", Phone: "555-0002", Email: "zed@x.com"},
			wantReason: "phone exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
			d := newTestDirectory(store)

			_, err := d.AddContact(context.Background(), tt.fields)

			var collision *common.CollisionError
			require.ErrorAs(t, err, &collision)
			assert.Equal(t, tt.wantReason, collision.Reason)
			assert.ErrorIs(t, err, common.ErrCollision)
			assert.Zero(t, store.ContactSaves)
		})
	}
}

func TestDirectory_AddContactNameSymmetry(t *testing.T) {
	// Either of two near-identical names is rejected against the other.
	for _, pair := range [][2]string{{"John Smith", "Jon Smith"}, {"Jon Smith", "John Smith"}} {
		existing := testutil.NewContact(pair[0], "1", "a@x.com", "Work")
		d := newTestDirectory(testutil.NewMemoryStorage(existing))

		_, err := d.AddContact(context.Background(), model.ContactFields{Name: pair[1], Phone: "2", Email: "b@x.com"})
		assert.ErrorIs(t, err, common.ErrCollision, pair[1])
	}
}

func TestDirectory_AddContactValidation(t *testing.T) {
	store := testutil.NewMemoryStorage()
	d := newTestDirectory(store)

	for _, fields := range []model.ContactFields{
		{Phone: "1", Email: "a@x.com"},
		{Name: "A", Email: "a@x.com"},
		{Name: "A", Phone: "1", Email: "   "},
	} {
		_, err := d.AddContact(context.Background(), fields)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
	assert.Zero(t, store.ContactSaves)
}

func TestDirectory_EditContact(t *testing.T) {
	sample := testutil.SampleContacts()
	store := testutil.NewMemoryStorage(sample...)
	d := newTestDirectory(store)
	ctx := context.Background()
	john := sample[0]

	edited, err := d.EditContact(ctx, john.ID, model.ContactFields{Phone: "555-9999"})
	require.NoError(t, err)

	assert.Equal(t, john.ID, edited.ID)
	assert.Equal(t, john.Name, edited.Name)
	assert.Equal(t, john.Email, edited.Email)
	assert.Equal(t, "555-9999", edited.Phone)
	assert.Equal(t, john.FormatDateAdded(), edited.FormatDateAdded())
	assert.Equal(t, classification.New().Predict(john.Name, john.Email), edited.Category)

	contacts, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, contactIDs(sample), contactIDs(contacts))
	assert.Equal(t, "555-9999", contacts[0].Phone)
}

func TestDirectory_EditContactKeepsOwnName(t *testing.T) {
	sample := testutil.SampleContacts()
	d := newTestDirectory(testutil.NewMemoryStorage(sample...))

	edited, err := d.EditContact(context.Background(), sample[1].ID, model.ContactFields{Name: "Mom", Note: "call sundays"})
	require.NoError(t, err)
	assert.Equal(t, "call sundays", edited.Note)
}

func TestDirectory_EditContactRejected(t *testing.T) {
	sample := testutil.SampleContacts()
	store := testutil.NewMemoryStorage(sample...)
	d := newTestDirectory(store)
	ctx := context.Background()

	_, err := d.EditContact(ctx, sample[0].ID, model.ContactFields{Name: "Mom"})
	var collision *common.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "name collision with Mom", collision.Reason)

	_, err = d.EditContact(ctx, "missing", model.ContactFields{Name: "X"})
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Zero(t, store.ContactSaves)
}

func TestDirectory_DeleteContact(t *testing.T) {
	sample := testutil.SampleContacts()
	john, mom := sample[0], sample[1]
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Contacts:   sample,
		Popularity: model.Popularity{john.ID: 3, mom.ID: 1},
		Recent:     model.Recency{john.ID, mom.ID},
	})
	d := newTestDirectory(db.Storage)

	deleted, err := d.DeleteContact(context.Background(), john.ID)
	require.NoError(t, err)
	assert.Equal(t, john.ID, deleted.ID)

	assert.Equal(t, contactIDs(sample[1:]), contactIDs(db.MustContacts()))
	assert.Equal(t, model.Popularity{mom.ID: 1}, db.MustPopularity())
	assert.Equal(t, model.Recency{john.ID, mom.ID}, db.MustRecent())
}

func TestDirectory_DeleteLeavesStoresUntouchedWhenPopularityUnreadable(t *testing.T) {
	boom := errors.New("disk on fire")
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	store.LoadPopularityErr = boom
	d := newTestDirectory(store)
	ctx := context.Background()

	_, err := d.DeleteContact(ctx, testutil.SampleContacts()[0].ID)
	require.ErrorIs(t, err, boom)

	assert.Zero(t, store.ContactSaves)
	assert.Zero(t, store.PopularitySaves)
	stored, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, contactIDs(testutil.SampleContacts()), contactIDs(stored))
}

func TestDirectory_DeleteUnknown(t *testing.T) {
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	d := newTestDirectory(store)

	_, err := d.DeleteContact(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, store.ContactSaves)
	assert.Zero(t, store.PopularitySaves)
}

func TestDirectory_Search(t *testing.T) {
	sample := testutil.SampleContacts()
	store := testutil.NewMemoryStorage(sample...)
	d := newTestDirectory(store)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		results, err := d.Search(ctx, "JOHN SMITH")
		require.NoError(t, err)
		assert.Equal(t, []string{"John Smith"}, contactNames(results))

		popularity, err := store.LoadPopularity(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, popularity[sample[0].ID])
	}

	recent, err := store.LoadRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Recency{sample[0].ID}, recent)
	assert.Equal(t, 2, store.PopularitySaves)
	assert.Equal(t, 2, store.RecentSaves)
	assert.Zero(t, store.ContactSaves)
}

func TestDirectory_SearchEveryMatchCounts(t *testing.T) {
	sample := testutil.SampleContacts()
	store := testutil.NewMemoryStorage(sample...)
	d := newTestDirectory(store)
	ctx := context.Background()

	results, err := d.Search(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, contactIDs(sample), contactIDs(results))

	popularity, err := store.LoadPopularity(ctx)
	require.NoError(t, err)
	for _, c := range sample {
		assert.Equal(t, 1, popularity[c.ID], c.Name)
	}

	recent, err := store.LoadRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Recency{sample[3].ID, sample[2].ID, sample[1].ID, sample[0].ID}, recent)
}

func TestDirectory_SearchNoMatch(t *testing.T) {
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	d := newTestDirectory(store)

	results, err := d.Search(context.Background(), "qqqqqq")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, store.PopularitySaves)
	assert.Zero(t, store.RecentSaves)

	_, err = d.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDirectory_SearchThresholdMonotonic(t *testing.T) {
	sample := testutil.SampleContacts()
	ctx := context.Background()

	previous := len(sample) + 1
	for _, threshold := range []int{0, 40, 60, 80, 100} {
		config := DefaultConfig()
		config.SearchThreshold = threshold
		d := NewWithConfig(testutil.NewMemoryStorage(sample...), classification.New(), config)

		results, err := d.Search(ctx, "mom")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), previous, "threshold %d", threshold)
		previous = len(results)
	}
}

func TestDirectory_RankedListing(t *testing.T) {
	sample := testutil.SampleContacts()
	store := testutil.NewMemoryStorage(sample...)
	require.NoError(t, store.SavePopularity(context.Background(), model.Popularity{
		sample[1].ID: 2, // Mom
		sample[2].ID: 2, // Dr. Patel
		sample[0].ID: 1, // John Smith
	}))
	d := newTestDirectory(store)

	listing, err := d.RankedListing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Patel", "Mom", "John Smith", "Client XYZ"}, contactNames(listing))

	views, err := d.Views(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, views[sample[1].ID])
}

func TestDirectory_MalformedStoresRecover(t *testing.T) {
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	store.LoadContactsErr = fmt.Errorf("%w: truncated file", common.ErrMalformedStore)
	store.LoadPopularityErr = fmt.Errorf("%w: bad json", common.ErrMalformedStore)
	store.LoadRecentErr = fmt.Errorf("%w: bad json", common.ErrMalformedStore)
	d := newTestDirectory(store)
	ctx := context.Background()

	listing, err := d.RankedListing(ctx)
	require.NoError(t, err)
	assert.Empty(t, listing)

	dash, err := d.Dashboard(ctx)
	require.NoError(t, err)
	assert.Zero(t, dash.Total)

	added, err := d.AddContact(ctx, model.ContactFields{Name: "Fresh", Phone: "1", Email: "f@x.com"})
	require.NoError(t, err)

	contacts, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{added.ID}, contactIDs(contacts))
}

func TestDirectory_AddKeepsContactsWithNonStandardDates(t *testing.T) {
	dir := t.TempDir()
	legacy := `[
		{"name": "Alice", "phone": "555-0101", "email": "alice@x.com", "date_added": "2024-01-01", "category": "Family", "note": ""},
		{"name": "Bob", "phone": "555-0102", "email": "bob@x.com", "date_added": "2024-02-03 04:05:06", "category": "Work", "note": ""}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.ContactsFile), []byte(legacy), 0600))

	store, err := storage.NewJSONStorage(dir)
	require.NoError(t, err)
	d := newTestDirectory(store)
	ctx := context.Background()

	_, err = d.AddContact(ctx, model.ContactFields{Name: "Carol", Phone: "555-0103", Email: "carol@x.com"})
	require.NoError(t, err)

	reloaded, err := storage.NewJSONStorage(dir)
	require.NoError(t, err)
	contacts, err := reloaded.LoadContacts(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, contactNames(contacts))
	assert.Equal(t, "2024-01-01", contacts[0].FormatDateAdded())
	assert.Equal(t, "2024-02-03 04:05:06", contacts[1].FormatDateAdded())
}

func TestDirectory_StoreErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	store.LoadContactsErr = boom
	d := newTestDirectory(store)

	_, err := d.RankedListing(context.Background())
	assert.ErrorIs(t, err, boom)

	store.LoadContactsErr = nil
	store.SaveContactsErr = boom
	_, err = d.AddContact(context.Background(), model.ContactFields{Name: "Fresh", Phone: "1", Email: "f@x.com"})
	assert.ErrorIs(t, err, boom)
}

func TestDirectory_SortByName(t *testing.T) {
	store := testutil.NewMemoryStorage(testutil.SampleContacts()...)
	d := newTestDirectory(store)
	ctx := context.Background()

	sorted, err := d.SortByName(ctx)
	require.NoError(t, err)
	want := []string{"Client XYZ", "Dr. Patel", "John Smith", "Mom"}
	assert.Equal(t, want, contactNames(sorted))

	stored, err := store.LoadContacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, contactNames(stored))
}

func TestDirectory_CategoriesAndFilter(t *testing.T) {
	d := newTestDirectory(testutil.NewMemoryStorage(testutil.SampleContacts()...))
	ctx := context.Background()

	categories, err := d.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Client", "Family", "Work"}, categories)

	work, err := d.FilterByCategory(ctx, " work ")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Dr. Patel"}, contactNames(work))

	none, err := d.FilterByCategory(ctx, "Friends")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = d.FilterByCategory(ctx, "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDirectory_Contact(t *testing.T) {
	sample := testutil.SampleContacts()
	d := newTestDirectory(testutil.NewMemoryStorage(sample...))

	c, err := d.Contact(context.Background(), sample[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Patel", c.Name)

	_, err = d.Contact(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
