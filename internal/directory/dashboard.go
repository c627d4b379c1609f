package directory

import (
	"context"

	"github.com/Veraticus/rolodex/internal/model"
)

// RecentEntry is one recently viewed contact. Known is false when the contact
// has since been deleted.
type RecentEntry struct {
	ID    string
	Name  string
	Known bool
}

// Dashboard summarizes the directory.
type Dashboard struct {
	LatestAdded     *model.Contact
	MostViewed      *model.Contact
	Recent          []RecentEntry
	Total           int
	MostViewedCount int
}

// Dashboard reports totals, the newest contact, the most viewed contact and
// the recently viewed list.
func (d *Directory) Dashboard(ctx context.Context) (*Dashboard, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}
	popularity, err := d.loadPopularity(ctx)
	if err != nil {
		return nil, err
	}
	recency, err := d.loadRecency(ctx)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Total: len(contacts)}

	if len(contacts) > 0 {
		latest := contacts[0]
		for _, c := range contacts[1:] {
			if c.DateAdded.After(latest.DateAdded) {
				latest = c
			}
		}
		dash.LatestAdded = &latest
	}

	if viewed, count, ok := popularity.MostViewed(contacts); ok {
		dash.MostViewed = &viewed
		dash.MostViewedCount = count
	}

	byID := make(map[string]model.Contact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}
	for _, id := range recency.IDs() {
		c, ok := byID[id]
		dash.Recent = append(dash.Recent, RecentEntry{ID: id, Name: c.Name, Known: ok})
	}

	return dash, nil
}
