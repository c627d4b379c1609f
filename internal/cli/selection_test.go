package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/model"
)

func TestSelectByRow(t *testing.T) {
	listing := []model.Contact{
		{ID: "id-b", Name: "Bob"},
		{ID: "id-a", Name: "Alice"},
	}

	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{name: "first row", input: "1", wantID: "id-b"},
		{name: "last row with spaces", input: " 2 \n", wantID: "id-a"},
		{name: "zero", input: "0", wantErr: true},
		{name: "past the end", input: "3", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "two", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectByRow(listing, tt.input)
			if tt.wantErr {
				var validation *common.ValidationError
				require.ErrorAs(t, err, &validation)
				assert.Equal(t, "selection", validation.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestSelectByRow_EmptyListing(t *testing.T) {
	_, err := SelectByRow(nil, "1")
	assert.ErrorIs(t, err, common.ErrValidation)
}
