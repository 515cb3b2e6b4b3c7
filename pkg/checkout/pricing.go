package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is a priced quantity, as held by a cart row or an order snapshot.
type Line struct {
	Price    string
	Quantity int
}

// ParsePrice reads a display price such as "$75.00", "75" or " $1,200.5 ".
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("price is empty")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("price %q is negative", raw)
	}
	return amount, nil
}

// FormatPrice renders the catalog form "$NN.NN".
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// NormalizePrice parses raw and re-renders it in catalog form.
func NormalizePrice(raw string) (string, error) {
	amount, err := ParsePrice(raw)
	if err != nil {
		return "", err
	}
	return FormatPrice(amount), nil
}

// Total sums price x quantity across lines.
func Total(lines []Line) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		price, err := ParsePrice(line.Price)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// FormatTotal renders an order total with two decimals and no currency sign.
func FormatTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}

// MinorUnits converts a major-unit amount to cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
