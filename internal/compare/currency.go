package compare

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees renders an amount with Indian digit grouping, e.g. ₹12,34,567.89
func FormatRupees(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "₹" + groupIndian(intPart) + "." + frac
}

// FormatRupeesShort renders an amount in lakh or crore, e.g. ₹12.50L or ₹1.20Cr
func FormatRupeesShort(d decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)
	switch {
	case d.Abs().GreaterThanOrEqual(crore):
		return "₹" + d.Div(crore).StringFixed(2) + "Cr"
	case d.Abs().GreaterThanOrEqual(lakh):
		return "₹" + d.Div(lakh).StringFixed(2) + "L"
	}
	return "₹" + d.StringFixed(0)
}

// FormatRate renders a fraction as a percentage with two decimals
func FormatRate(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(2) + "%"
}

// groupIndian inserts a comma after the last three digits and then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var sb strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		sb.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(head[i : i+2])
	}
	sb.WriteByte(',')
	sb.WriteString(tail)
	return sb.String()
}
