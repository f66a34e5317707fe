package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// inr groups digits the Indian way (lakh, crore)
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount in rupees with Indian digit grouping, e.g. ₹12,34,567.50
func FormatINR(amount decimal.Decimal) string {
	abs := amount.Round(2).Abs().InexactFloat64()
	out := "₹" + inr.Sprintf("%v", number.Decimal(abs, number.Scale(2)))
	if amount.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// FormatDate renders a date like "Mar 15, 2024"
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
