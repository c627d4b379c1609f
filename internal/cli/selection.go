package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/rolodex/internal/common"
	"github.com/Veraticus/rolodex/internal/model"
)

// SelectByRow resolves a 1-based row number typed by the user against the
// listing that was just rendered. The returned contact carries the stable ID
// used for the mutation; row numbers are never stored.
func SelectByRow(listing []model.Contact, input string) (model.Contact, error) {
	input = strings.TrimSpace(input)
	row, err := strconv.Atoi(input)
	if err != nil {
		return model.Contact{}, common.NewValidationError("selection", fmt.Sprintf("%q is not a number", input))
	}
	if row < 1 || row > len(listing) {
		return model.Contact{}, common.NewValidationError("selection",
			fmt.Sprintf("row %d is out of range (1-%d)", row, len(listing)))
	}
	return listing[row-1], nil
}
