package testutil

import (
	"time"

	"github.com/Veraticus/rolodex/internal/model"
)

// FixtureTime is the date_added stamped on fixture contacts.
var FixtureTime = time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local)

// NewContact builds a contact with a deterministic ID derived from its fields.
func NewContact(name, phone, email, category string) model.Contact {
	return model.Contact{
		ID:        model.LegacyContactID(name, phone, email),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Category:  category,
		DateAdded: FixtureTime,
	}
}

// SampleContacts returns a small directory mirroring the categorizer's training data.
func SampleContacts() []model.Contact {
	return []model.Contact{
		NewContact("John Smith", "555-1234", "john@company.com", "Work"),
		NewContact("Mom", "555-0001", "mom@gmail.com", "Family"),
		NewContact("Dr. Patel", "555-0002", "patel@hospital.org", "Work"),
		NewContact("Client XYZ", "555-0003", "client@business.com", "Client"),
	}
}
