package engagement

import "github.com/Veraticus/rolodex/internal/model"

// Recency keeps the most recently viewed contact IDs, most recent first,
// without duplicates and capped at model.MaxRecent entries.
type Recency struct {
	ids model.Recency
}

// NewRecency wraps a list loaded from a store, trimming it to the cap.
func NewRecency(ids model.Recency) *Recency {
	r := &Recency{ids: make(model.Recency, 0, model.MaxRecent+1)}
	for i := len(ids) - 1; i >= 0; i-- {
		r.Touch(ids[i])
	}
	return r
}

// Touch moves id to the front, inserting it if absent, and evicts the oldest
// entry beyond the cap.
func (r *Recency) Touch(id string) {
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}

	r.ids = append(model.Recency{id}, r.ids...)
	if len(r.ids) > model.MaxRecent {
		r.ids = r.ids[:model.MaxRecent]
	}
}

// IDs returns a copy of the list, most recent first.
func (r *Recency) IDs() model.Recency {
	out := make(model.Recency, len(r.ids))
	copy(out, r.ids)
	return out
}
