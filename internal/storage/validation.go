package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/rolodex/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidContact   = errors.New("invalid contact")
	ErrInvalidCounter   = errors.New("invalid popularity counter")
	ErrDuplicateContact = errors.New("duplicate contact id")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateContacts checks every contact has an ID and that IDs are unique.
func validateContacts(contacts []model.Contact) error {
	seen := make(map[string]struct{}, len(contacts))
	for i, c := range contacts {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("%w at index %d: missing ID", ErrInvalidContact, i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateContact, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

func validatePopularity(popularity model.Popularity) error {
	for id, count := range popularity {
		if count < 0 {
			return fmt.Errorf("%w: %s has negative count %d", ErrInvalidCounter, id, count)
		}
	}
	return nil
}
