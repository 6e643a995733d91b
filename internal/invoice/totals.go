package invoice

import (
	"strings"

	"invoice-desk/internal/words"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxTotal = decimal.NewFromInt(words.MaxAmount)
)

type Totals struct {
	Items          []Item
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals prices every line and applies the discount percentage.
// The discount is rounded to two places; the total is subtotal minus discount
// and must stay within what the amount-in-words line can print.
func ComputeTotals(items []ItemInput, discountPercent decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, ErrNoItems
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return Totals{}, ErrInvalidDiscount
	}
	// discount_percent is NUMERIC(5, 2)
	if !discountPercent.Equal(discountPercent.Round(2)) {
		return Totals{}, ErrDiscountScale
	}

	t := Totals{Items: make([]Item, 0, len(items))}
	for _, in := range items {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			return Totals{}, ErrDescriptionEmpty
		}
		if in.Quantity <= 0 {
			return Totals{}, ErrInvalidQuantity
		}
		if in.Rate.IsNegative() {
			return Totals{}, ErrInvalidRate
		}

		amount := in.Rate.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)
		t.Items = append(t.Items, Item{
			Description: desc,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      amount,
		})
		t.Subtotal = t.Subtotal.Add(amount)
	}

	t.DiscountAmount = t.Subtotal.Mul(discountPercent).Div(hundred).Round(2)
	t.Total = t.Subtotal.Sub(t.DiscountAmount)

	if t.Total.Truncate(0).GreaterThan(maxTotal) {
		return Totals{}, ErrTotalTooLarge
	}

	return t, nil
}
