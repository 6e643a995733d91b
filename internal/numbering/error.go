package numbering

import "errors"

var (
	ErrMalformedNumber    = errors.New("malformed invoice number")
	ErrSerialExhausted    = errors.New("invoice serial exhausted for period")
	ErrDuplicateNumber    = errors.New("invoice number already issued")
	ErrAllocationConflict = errors.New("could not allocate a unique invoice number")
)
