package words

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegative             = errors.New("amount must not be negative")
	ErrUnsupportedMagnitude = errors.New("unsupported magnitude")
)

// MaxAmount is the largest value that the scale table can name.
const MaxAmount int64 = 999_999_999

var ones = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// scale describes one digit group in Indian grouping, least significant first.
// The units group holds three digits, every group after it holds two.
type scale struct {
	divisor int64
	word    string
}

var scales = []scale{
	{divisor: 1000, word: ""},
	{divisor: 100, word: "Thousand"},
	{divisor: 100, word: "Lakh"},
	{divisor: 100, word: "Crore"},
}

// ToWords spells n in English using the Indian numbering scale,
// e.g. 150000 -> "One Lakh Fifty Thousand".
func ToWords(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}
	if n > MaxAmount {
		return "", ErrUnsupportedMagnitude
	}
	if n == 0 {
		return ones[0], nil
	}

	var parts []string
	rest := n
	for _, s := range scales {
		if rest == 0 {
			break
		}
		group := rest % s.divisor
		rest /= s.divisor
		if group == 0 {
			continue
		}

		part := underThousand(group)
		if s.word != "" {
			part += " " + s.word
		}
		// most significant first
		parts = append([]string{part}, parts...)
	}

	return strings.Join(parts, " "), nil
}

func underThousand(n int64) string {
	switch {
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + "-" + ones[n%10]
	default:
		head := ones[n/100] + " Hundred"
		if n%100 == 0 {
			return head
		}
		return head + " and " + underThousand(n%100)
	}
}

// Amount spells the whole part of d. The fraction is truncated, not rounded.
func Amount(d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", ErrNegative
	}
	whole := d.Truncate(0)
	if whole.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return "", ErrUnsupportedMagnitude
	}
	return ToWords(whole.IntPart())
}

// Rupees formats d the way it is printed on an invoice.
func Rupees(d decimal.Decimal) (string, error) {
	w, err := Amount(d)
	if err != nil {
		return "", err
	}
	return "Rupees " + w + " Only", nil
}
