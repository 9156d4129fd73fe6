package validator

import (
	"errors"
	"strconv"

	"github.com/google/uuid"

	"files-manager-api/internal/domain/file"
)

// ValidatePage reads a zero-based page number. Anything that is not a
// non-negative integer is page 0, numbers past file.MaxPage are clamped
// to the first page known to be empty.
func ValidatePage(page string) int {
	p, err := strconv.Atoi(page)
	switch {
	case errors.Is(err, strconv.ErrRange) && p > 0:
		return file.MaxPage + 1
	case err != nil || p < 0:
		return 0
	case p > file.MaxPage:
		return file.MaxPage + 1
	}
	return p
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}
