package directory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/csvio"
	"github.com/Veraticus/rolodex/internal/model"
)

// Progress receives one Add per processed import record.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

// ImportResult counts what happened to each imported record.
type ImportResult struct {
	Added      int
	Incomplete int
	Duplicates int
}

// ImportContacts appends the records that are complete and do not collide
// with an existing or previously imported contact. Categories are predicted;
// a parseable date_added is kept, otherwise the current time is used.
// The contact list is saved once, after every record was processed.
func (d *Directory) ImportContacts(ctx context.Context, records []csvio.Record, progress Progress) (*ImportResult, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.importRecord(record, i, &contacts, result)

		if progress != nil {
			if err := progress.Add(1); err != nil {
				slog.Debug("progress update failed", "error", err)
			}
		}
	}

	if result.Added > 0 {
		if err := d.storage.SaveContacts(ctx, contacts); err != nil {
			return nil, fmt.Errorf("failed to save contacts: %w", err)
		}
	}

	common.LogInfo("Imported contacts", common.Fields{
		"added":      result.Added,
		"incomplete": result.Incomplete,
		"duplicates": result.Duplicates,
	})
	return result, nil
}

func (d *Directory) importRecord(record csvio.Record, row int, contacts *[]model.Contact, result *ImportResult) {
	if !record.Complete() {
		result.Incomplete++
		return
	}

	fields := record.Fields().Trimmed()
	if collision := d.checker.Check(fields, *contacts); collision != nil {
		slog.Debug("Skipped duplicate import record", "row", row+1, "reason", collision.Reason)
		result.Duplicates++
		return
	}

	dateAdded, err := model.ParseDateAdded(record.DateAdded)
	if err != nil || dateAdded.IsZero() {
		dateAdded = d.timestamp()
	}

	*contacts = append(*contacts, model.Contact{
		ID:        model.NewContactID(),
		Name:      fields.Name,
		Phone:     fields.Phone,
		Email:     fields.Email,
		Note:      fields.Note,
		DateAdded: dateAdded,
		Category:  d.categorizer.Predict(fields.Name, fields.Email),
	})
	result.Added++
}

// ExportContacts writes every contact, in store order, as CSV and returns the count.
func (d *Directory) ExportContacts(ctx context.Context, w io.Writer) (int, error) {
	contacts, err := d.loadContacts(ctx)
	if err != nil {
		return 0, err
	}
	if err := csvio.Write(w, contacts); err != nil {
		return 0, err
	}
	return len(contacts), nil
}
