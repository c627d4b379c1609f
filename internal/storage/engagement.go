package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/model"
)

// LoadPopularity returns the search-hit counters keyed by contact ID.
func (s *SQLiteStorage) LoadPopularity(ctx context.Context) (model.Popularity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT contact_id, hits FROM popularity`)
	if err != nil {
		return nil, fmt.Errorf("failed to query popularity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	popularity := make(model.Popularity)
	for rows.Next() {
		var (
			id   string
			hits int
		)
		if err := rows.Scan(&id, &hits); err != nil {
			return nil, fmt.Errorf("%w: failed to scan popularity: %v", common.ErrMalformedStore, err)
		}
		popularity[id] = hits
	}

	return popularity, rows.Err()
}

// SavePopularity replaces all stored counters.
func (s *SQLiteStorage) SavePopularity(ctx context.Context, popularity model.Popularity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePopularity(popularity); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM popularity`); err != nil {
			return fmt.Errorf("failed to clear popularity: %w", err)
		}
		for id, hits := range popularity {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO popularity (contact_id, hits) VALUES (?, ?)`, id, hits,
			); err != nil {
				return fmt.Errorf("failed to save popularity for %s: %w", id, err)
			}
		}
		return nil
	})
}

// LoadRecent returns the recently viewed contact IDs, most recent first.
func (s *SQLiteStorage) LoadRecent(ctx context.Context) (model.Recency, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT contact_id FROM recent ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recent := model.Recency{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: failed to scan recent: %v", common.ErrMalformedStore, err)
		}
		recent = append(recent, id)
	}

	return recent, rows.Err()
}

// SaveRecent replaces the stored recently viewed list.
func (s *SQLiteStorage) SaveRecent(ctx context.Context, recent model.Recency) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recent`); err != nil {
			return fmt.Errorf("failed to clear recent: %w", err)
		}
		for i, id := range recent {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recent (position, contact_id) VALUES (?, ?)`, i, id,
			); err != nil {
				return fmt.Errorf("failed to save recent entry %s: %w", id, err)
			}
		}
		return nil
	})
}
