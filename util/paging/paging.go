// Package paging implements the uniform from/size page window: from is a
// zero-based row offset, size the page length.
package paging

import (
	"strconv"

	"github.com/ilya-noize/RentHub-sub001/apperr"
)

const (
	DefaultFrom = 0
	DefaultSize = 10
)

// Parse reads the wire params, applying defaults for absent values.
func Parse(fromStr, sizeStr string) (from, size int, err error) {
	from, size = DefaultFrom, DefaultSize
	if fromStr != "" {
		from, err = strconv.Atoi(fromStr)
		if err != nil {
			return 0, 0, apperr.Newf(apperr.Validation, "invalid from value: %s", fromStr)
		}
	}
	if sizeStr != "" {
		size, err = strconv.Atoi(sizeStr)
		if err != nil {
			return 0, 0, apperr.Newf(apperr.Validation, "invalid size value: %s", sizeStr)
		}
	}
	if err := Check(from, size); err != nil {
		return 0, 0, err
	}
	return from, size, nil
}

// Check enforces from >= 0 and size > 0.
func Check(from, size int) error {
	if from < 0 {
		return apperr.Newf(apperr.Validation, "from must not be negative, got %d", from)
	}
	if size <= 0 {
		return apperr.Newf(apperr.Validation, "size must be positive, got %d", size)
	}
	return nil
}
