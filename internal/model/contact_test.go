package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateAddedFrom(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRaw string
		wantSet bool
	}{
		{name: "layout", input: "2024-02-03 04:05:06", wantSet: true},
		{name: "empty", input: ""},
		{name: "date only", input: "2024-01-01", wantRaw: "2024-01-01"},
		{name: "free text", input: "last spring", wantRaw: "last spring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, raw := DateAddedFrom(tt.input)
			assert.Equal(t, tt.wantSet, !got.IsZero())
			assert.Equal(t, tt.wantRaw, raw)

			c := Contact{DateAdded: got, RawDateAdded: raw}
			assert.Equal(t, tt.input, c.DateAddedString())
		})
	}
}

func TestContact_FormatDateAdded(t *testing.T) {
	assert.Equal(t, "N/A", Contact{}.FormatDateAdded())
	assert.Equal(t, "2024-01-01", Contact{RawDateAdded: "2024-01-01"}.FormatDateAdded())

	parsed := Contact{
		DateAdded:    time.Date(2024, 2, 3, 4, 5, 6, 0, time.Local),
		RawDateAdded: "ignored",
	}
	assert.Equal(t, "2024-02-03 04:05:06", parsed.FormatDateAdded())
}
