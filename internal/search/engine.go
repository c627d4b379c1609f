// Package search matches a free-text query against contacts.
package search

import (
	"github.com/Veraticus/rolodex/internal/model"
	"github.com/Veraticus/rolodex/internal/similarity"
)

// DefaultThreshold is the minimum best-field score for a contact to match.
const DefaultThreshold = 60

// Match is a contact that satisfied the query together with its best field score.
type Match struct {
	Contact model.Contact
	Field   string
	Score   int
}

// Engine scores contacts against a query.
type Engine struct {
	scorer    similarity.Scorer
	threshold int
}

// NewEngine creates a search engine. A nil scorer selects similarity.Indel.
func NewEngine(scorer similarity.Scorer, threshold int) *Engine {
	if scorer == nil {
		scorer = similarity.Indel{}
	}
	return &Engine{
		scorer:    scorer,
		threshold: threshold,
	}
}

// Search returns the contacts whose best partial score over name, email and
// phone is at least the threshold. Results keep store order; they are not
// ranked by score.
func (e *Engine) Search(query string, contacts []model.Contact) []Match {
	q := similarity.Normalize(query)

	var matches []Match
	for _, contact := range contacts {
		field, score := e.bestField(q, contact)
		if score >= e.threshold {
			matches = append(matches, Match{Contact: contact, Field: field, Score: score})
		}
	}
	return matches
}

// bestField returns the field with the highest partial score and that score.
// Ties go to the earliest of name, email, phone.
func (e *Engine) bestField(query string, contact model.Contact) (string, int) {
	candidates := []struct {
		field string
		value string
	}{
		{"name", similarity.Normalize(contact.Name)},
		{"email", similarity.Normalize(contact.Email)},
		{"phone", contact.Phone},
	}

	bestField, best := "", -1
	for _, c := range candidates {
		if score := e.scorer.PartialRatio(query, c.value); score > best {
			bestField, best = c.field, score
		}
	}
	return bestField, best
}

// Contacts extracts the contacts from a slice of matches.
func Contacts(matches []Match) []model.Contact {
	contacts := make([]model.Contact, len(matches))
	for i, m := range matches {
		contacts[i] = m.Contact
	}
	return contacts
}
