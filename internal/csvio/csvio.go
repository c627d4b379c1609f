// Package csvio maps contacts to and from CSV files.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/rolodex/internal/model"
)

// Header is the column order used for export.
var Header = []string{"name", "phone", "email", "date_added", "category", "note"}

// Record is one CSV row keyed by column name. Missing columns are empty.
type Record struct {
	Name      string
	Phone     string
	Email     string
	DateAdded string
	Category  string
	Note      string
}

// Complete reports whether the record has every required field.
func (r Record) Complete() bool {
	return r.Name != "" && r.Phone != "" && r.Email != ""
}

// Fields returns the user-editable fields of the record.
func (r Record) Fields() model.ContactFields {
	return model.ContactFields{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
		Note:  r.Note,
	}
}

// Write renders contacts as CSV with a header row.
func Write(w io.Writer, contacts []model.Contact) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, c := range contacts {
		if err := writer.Write([]string{c.Name, c.Phone, c.Email, c.DateAddedString(), c.Category, c.Note}); err != nil {
			return fmt.Errorf("csv: write %s: %w", c.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Read parses CSV with a header row. Columns are matched by name, case-insensitively.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := colIdx[col]; !dup {
			colIdx[col] = i
		}
	}

	records := []Record{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(records)+2, err)
		}

		records = append(records, Record{
			Name:      getCol(row, colIdx, "name"),
			Phone:     getCol(row, colIdx, "phone"),
			Email:     getCol(row, colIdx, "email"),
			DateAdded: getCol(row, colIdx, "date_added"),
			Category:  getCol(row, colIdx, "category"),
			Note:      getCol(row, colIdx, "note"),
		})
	}

	return records, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]Record, error) {
	// #nosec G304 - path is supplied by the user on purpose
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

func getCol(row []string, colIdx map[string]int, col string) string {
	i, ok := colIdx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
