// Package dedupe rejects contacts that collide with an existing entry.
package dedupe

import (
	"strings"

	"github.com/Veraticus/rolodex/internal/model"
	"github.com/Veraticus/rolodex/internal/similarity"
)

// DefaultNameThreshold is the name similarity a candidate must exceed to collide.
const DefaultNameThreshold = 90

// Rule identifies which check produced a collision.
type Rule string

// Collision rules.
const (
	RuleName  Rule = "name"
	RuleEmail Rule = "email"
	RulePhone Rule = "phone"
)

// Collision describes the first existing contact a candidate collides with.
type Collision struct {
	Existing model.Contact
	Rule     Rule
	Reason   string
}

// Checker applies the fuzzy-name and exact email/phone rules.
type Checker struct {
	scorer        similarity.Scorer
	nameThreshold int
}

// NewChecker creates a checker. A nil scorer selects similarity.Indel.
func NewChecker(scorer similarity.Scorer, nameThreshold int) *Checker {
	if scorer == nil {
		scorer = similarity.Indel{}
	}
	return &Checker{
		scorer:        scorer,
		nameThreshold: nameThreshold,
	}
}

// Check compares the candidate against existing contacts in store order and
// returns the first collision found, or nil.
//
// For each contact the name rule is evaluated first, then email, then phone;
// the first contact that triggers any rule wins.
func (c *Checker) Check(candidate model.ContactFields, existing []model.Contact) *Collision {
	return c.CheckExcluding(candidate, existing, "")
}

// CheckExcluding behaves like Check but skips the contact with the given ID,
// so an edit is not compared against the contact being edited.
func (c *Checker) CheckExcluding(candidate model.ContactFields, existing []model.Contact, excludeID string) *Collision {
	name := similarity.Normalize(candidate.Name)

	for _, contact := range existing {
		if excludeID != "" && contact.ID == excludeID {
			continue
		}

		if c.scorer.RatioAbove(similarity.Normalize(contact.Name), name, c.nameThreshold) {
			return &Collision{
				Existing: contact,
				Rule:     RuleName,
				Reason:   "name collision with " + contact.Name,
			}
		}
		if strings.EqualFold(contact.Email, candidate.Email) {
			return &Collision{Existing: contact, Rule: RuleEmail, Reason: "email exists"}
		}
		if contact.Phone == candidate.Phone {
			return &Collision{Existing: contact, Rule: RulePhone, Reason: "phone exists"}
		}
	}

	return nil
}
