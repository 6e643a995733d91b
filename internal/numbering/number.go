package numbering

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// PrefixWidth is the length of the MMYYYY period prefix.
	PrefixWidth = 6
	// SerialWidth is the zero-padded width of the per-period serial.
	SerialWidth = 4
	// MaxSerial is the largest serial that fits in SerialWidth digits.
	MaxSerial = 9999
)

// Number is an invoice number split into its period prefix and serial.
type Number struct {
	Prefix string
	Serial int
}

func (n Number) String() string {
	return fmt.Sprintf("%s%0*d", n.Prefix, SerialWidth, n.Serial)
}

// Prefix returns the MMYYYY period prefix for t.
func Prefix(t time.Time) string {
	return t.Format("012006")
}

// Parse splits an issued invoice number such as "0620240007".
func Parse(s string) (Number, error) {
	if len(s) != PrefixWidth+SerialWidth {
		return Number{}, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}

	prefix := s[:PrefixWidth]
	if _, err := time.Parse("012006", prefix); err != nil {
		return Number{}, fmt.Errorf("%w: bad period %q", ErrMalformedNumber, prefix)
	}

	serial, err := strconv.Atoi(s[PrefixWidth:])
	if err != nil || serial < 1 {
		return Number{}, fmt.Errorf("%w: bad serial in %q", ErrMalformedNumber, s)
	}

	return Number{Prefix: prefix, Serial: serial}, nil
}

// Allocate computes the next invoice number for the period containing now.
// prior is the greatest number already issued for that period, or nil.
// A prior number from a different period is ignored, so a new month starts at 1.
func Allocate(now time.Time, prior *Number) (Number, error) {
	prefix := Prefix(now)

	serial := 1
	if prior != nil && prior.Prefix == prefix {
		serial = prior.Serial + 1
	}

	if serial > MaxSerial {
		return Number{}, fmt.Errorf("%w: period %s", ErrSerialExhausted, prefix)
	}

	return Number{Prefix: prefix, Serial: serial}, nil
}
