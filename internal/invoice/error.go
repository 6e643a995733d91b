package invoice

import (
	"errors"
	"fmt"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidInvoice  = errors.New("invalid invoice")

	ErrNoItems          = fmt.Errorf("%w: at least one item is required", ErrInvalidInvoice)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be positive", ErrInvalidInvoice)
	ErrInvalidRate      = fmt.Errorf("%w: rate must not be negative", ErrInvalidInvoice)
	ErrInvalidDiscount  = fmt.Errorf("%w: discount must be between 0 and 100 percent", ErrInvalidInvoice)
	ErrDiscountScale    = fmt.Errorf("%w: discount allows at most two decimal places", ErrInvalidInvoice)
	ErrTotalTooLarge    = fmt.Errorf("%w: total exceeds 99,99,99,999", ErrInvalidInvoice)
	ErrBillToRequired   = fmt.Errorf("%w: bill-to name is required", ErrInvalidInvoice)
	ErrDescriptionEmpty = fmt.Errorf("%w: item description is required", ErrInvalidInvoice)

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
