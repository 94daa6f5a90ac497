// Package pricing holds the line and order arithmetic shared by the checkout
// preview and order placement. Discounts are whole percentages in [0, 100];
// callers validate that range before values reach this package.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

type Line struct {
	UnitPrice decimal.Decimal
	Discount  int
	Quantity  int
}

type Summary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// FinalPrice is the unit price after the percentage discount.
func FinalPrice(unitPrice decimal.Decimal, discount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(100 - discount))).Div(hundred)
}

// LinePrice = quantity × unitPrice × (100 − discount) / 100.
func LinePrice(unitPrice decimal.Decimal, discount, quantity int) decimal.Decimal {
	return FinalPrice(unitPrice, discount).Mul(decimal.NewFromInt(int64(quantity)))
}

func (l Line) Price() decimal.Decimal {
	return LinePrice(l.UnitPrice, l.Discount, l.Quantity)
}

// Summarize totals the lines. Total is the sum of line prices and Discount is
// the amount taken off the undiscounted subtotal.
func Summarize(lines []Line) Summary {
	subtotal := decimal.Zero
	total := decimal.Zero

	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		total = total.Add(l.Price())
	}

	return Summary{
		Subtotal: subtotal,
		Discount: subtotal.Sub(total),
		Total:    total,
	}
}
