package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/model"
)

// LoadContacts returns every contact in stored order.
func (s *SQLiteStorage) LoadContacts(ctx context.Context) ([]model.Contact, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return loadContactsTx(ctx, s.db)
}

func loadContactsTx(ctx context.Context, q queryable) ([]model.Contact, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, phone, email, date_added, category, note
		FROM contacts
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := []model.Contact{}
	for rows.Next() {
		var (
			contact   model.Contact
			dateAdded string
		)
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Phone,
			&contact.Email,
			&dateAdded,
			&contact.Category,
			&contact.Note,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan contact: %v", common.ErrMalformedStore, err)
		}

		contact.DateAdded, contact.RawDateAdded = model.DateAddedFrom(dateAdded)
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

// SaveContacts replaces the stored contact list with contacts, preserving their order.
func (s *SQLiteStorage) SaveContacts(ctx context.Context, contacts []model.Contact) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateContacts(contacts); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return saveContactsTx(ctx, tx, contacts)
	})
}

func saveContactsTx(ctx context.Context, tx *sql.Tx, contacts []model.Contact) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("failed to clear contacts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contacts (id, position, name, phone, email, date_added, category, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range contacts {
		if _, err := stmt.ExecContext(ctx,
			c.ID, i, c.Name, c.Phone, c.Email, c.DateAddedString(), c.Category, c.Note,
		); err != nil {
			return fmt.Errorf("failed to save contact %s: %w", c.ID, err)
		}
	}

	return nil
}
