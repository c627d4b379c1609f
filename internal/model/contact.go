// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateAddedLayout is the timestamp format used for date_added in every persisted form.
const DateAddedLayout = "2006-01-02 15:04:05"

// Contact is a single entry in the directory.
type Contact struct {
	DateAdded time.Time
	ID        string // Stable synthetic identifier, assigned at creation
	Name      string
	Phone     string
	Email     string
	Category  string // Assigned by the categorizer, never user-entered
	Note      string

	// RawDateAdded holds a stored date_added that is not in DateAddedLayout.
	// It is written back unchanged.
	RawDateAdded string
}

// ContactFields carries the user-editable fields of a contact.
type ContactFields struct {
	Name  string
	Phone string
	Email string
	Note  string
}

// NewContactID returns a fresh identifier for a contact.
func NewContactID() string {
	return uuid.NewString()
}

// Fields returns the user-editable fields of the contact.
func (c Contact) Fields() ContactFields {
	return ContactFields{
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
		Note:  c.Note,
	}
}

// DateAddedString returns date_added in its persisted form, empty when unset.
func (c Contact) DateAddedString() string {
	if !c.DateAdded.IsZero() {
		return c.DateAdded.Format(DateAddedLayout)
	}
	return c.RawDateAdded
}

// FormatDateAdded renders date_added for display, or "N/A" when unset.
func (c Contact) FormatDateAdded() string {
	if s := c.DateAddedString(); s != "" {
		return s
	}
	return "N/A"
}

// ParseDateAdded parses a persisted date_added value. Empty input yields the zero time.
func ParseDateAdded(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateAddedLayout, s, time.Local)
}

// DateAddedFrom reads a stored date_added. Text that does not parse is
// returned as raw so it survives the next save.
func DateAddedFrom(s string) (t time.Time, raw string) {
	t, err := ParseDateAdded(s)
	if err != nil {
		return time.Time{}, s
	}
	return t, ""
}

// Merge overlays the non-empty fields of update onto f.
func (f ContactFields) Merge(update ContactFields) ContactFields {
	merged := f
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Email != "" {
		merged.Email = update.Email
	}
	if update.Note != "" {
		merged.Note = update.Note
	}
	return merged
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f ContactFields) Trimmed() ContactFields {
	return ContactFields{
		Name:  strings.TrimSpace(f.Name),
		Phone: strings.TrimSpace(f.Phone),
		Email: strings.TrimSpace(f.Email),
		Note:  strings.TrimSpace(f.Note),
	}
}

// LegacyContactID derives a deterministic identifier for records persisted
// without one, so repeated loads of the same record agree on its ID.
func LegacyContactID(name, phone, email string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name+"\x00"+phone+"\x00"+email)).String()
}
