package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.Uzbek)

// FormatPrice renders an amount the way the storefront displays it:
// truncated to whole currency units (floor, never round-half-up) with
// locale thousands grouping.
func FormatPrice(amount decimal.Decimal) string {
	return pricePrinter.Sprintf("%d", amount.Floor().IntPart())
}
