package util

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is prefixed to every formatted amount
const CurrencySymbol = "₹"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount as whole rupees with locale digit grouping, e.g. ₹4,500
func FormatINR(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-" + CurrencySymbol + inrPrinter.Sprintf("%d", -whole)
	}
	return CurrencySymbol + inrPrinter.Sprintf("%d", whole)
}
