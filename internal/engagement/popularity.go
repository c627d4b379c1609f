// Package engagement tracks how often and how recently contacts were viewed.
package engagement

import (
	"sort"
	"strings"

	"github.com/Veraticus/rolodex/internal/model"
)

// Popularity counts search hits per contact ID.
type Popularity struct {
	counts model.Popularity
}

// NewPopularity wraps counts loaded from a store. A nil map is treated as empty.
func NewPopularity(counts model.Popularity) *Popularity {
	if counts == nil {
		counts = make(model.Popularity)
	}
	return &Popularity{counts: counts}
}

// Increment records one hit for id.
func (p *Popularity) Increment(id string) {
	p.counts[id]++
}

// Count returns the hit count for id, or zero.
func (p *Popularity) Count(id string) int {
	return p.counts[id]
}

// Remove drops the counter for id.
func (p *Popularity) Remove(id string) {
	delete(p.counts, id)
}

// Counts returns the underlying map for persistence.
func (p *Popularity) Counts() model.Popularity {
	return p.counts
}

// Less orders contacts by descending hit count, then case-insensitive name.
func (p *Popularity) Less(a, b model.Contact) bool {
	ca, cb := p.Count(a.ID), p.Count(b.ID)
	if ca != cb {
		return ca > cb
	}
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// Rank returns a copy of contacts sorted by Less. Equal keys keep their input order.
func (p *Popularity) Rank(contacts []model.Contact) []model.Contact {
	ranked := make([]model.Contact, len(contacts))
	copy(ranked, contacts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return p.Less(ranked[i], ranked[j])
	})
	return ranked
}

// MostViewed returns the contact with the highest positive count, ties broken
// by name, or false when nobody has been viewed.
func (p *Popularity) MostViewed(contacts []model.Contact) (model.Contact, int, bool) {
	ranked := p.Rank(contacts)
	if len(ranked) == 0 || p.Count(ranked[0].ID) == 0 {
		return model.Contact{}, 0, false
	}
	return ranked[0], p.Count(ranked[0].ID), true
}
